package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrmohammed249/daftari/internal/apperrors"
	"github.com/amrmohammed249/daftari/internal/core/domain"
	"github.com/amrmohammed249/daftari/internal/dto"
)

func TestCreatePriceQuoteDoesNotPost(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "20")
	customer := seedCustomer(t, e, "Alice")

	q, err := e.CreatePriceQuote(context.Background(), testActor, dto.CreateQuoteRequest{
		Date:        time.Now(),
		PartyID:     customer.ID,
		PaymentType: domain.PaymentCredit,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "5", "10", "0")},
	})
	require.NoError(t, err)

	assert.Equal(t, "QUO-000001", q.ID)
	assert.Equal(t, domain.QuoteNew, q.Status)
	assert.True(t, q.GrandTotal.Equal(num("50")))

	st := e.Snapshot()
	assert.True(t, st.ItemByID(item.ID).Stock.Equal(num("20")))
	assert.True(t, st.CustomerByID(customer.ID).Balance.IsZero())
	assert.Empty(t, st.Journal)
	assert.Empty(t, st.Sales)
}

func TestQuoteAllowedBeyondStock(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "2")

	// quoting more than on hand is fine; stock is checked at conversion
	_, err := e.CreatePriceQuote(context.Background(), testActor, dto.CreateQuoteRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCash,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "50", "10", "0")},
	})
	require.NoError(t, err)
}

func TestConvertPriceQuoteRunsFullSaleFlow(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "20")
	customer := seedCustomer(t, e, "Alice")

	q, err := e.CreatePriceQuote(context.Background(), testActor, dto.CreateQuoteRequest{
		Date:        time.Now(),
		PartyID:     customer.ID,
		PaymentType: domain.PaymentCredit,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "5", "10", "0")},
	})
	require.NoError(t, err)

	sale, err := e.ConvertPriceQuote(context.Background(), testActor, q.ID)
	require.NoError(t, err)

	assert.Equal(t, "INV-000001", sale.ID)
	assert.True(t, sale.GrandTotal.Equal(num("50")))
	assert.True(t, sale.CostOfGoods.Equal(num("30")))

	st := e.Snapshot()
	got := st.PriceQuoteByID(q.ID)
	assert.Equal(t, domain.QuoteConverted, got.Status)
	assert.Equal(t, sale.ID, got.ResultSaleID)
	assert.True(t, st.ItemByID(item.ID).Stock.Equal(num("15")))
	assert.True(t, st.CustomerByID(customer.ID).Balance.Equal(num("50")))

	// terminal: no second conversion
	_, err = e.ConvertPriceQuote(context.Background(), testActor, q.ID)
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestConvertPriceQuoteFailureLeavesQuoteNew(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "3")

	q, err := e.CreatePriceQuote(context.Background(), testActor, dto.CreateQuoteRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCash,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "5", "10", "0")},
	})
	require.NoError(t, err)

	_, err = e.ConvertPriceQuote(context.Background(), testActor, q.ID)
	require.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	st := e.Snapshot()
	assert.Equal(t, domain.QuoteNew, st.PriceQuoteByID(q.ID).Status)
	assert.Empty(t, st.Sales)
	assert.True(t, st.ItemByID(item.ID).Stock.Equal(num("3")))
}

func TestCancelPriceQuoteIsTerminal(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "20")

	q, err := e.CreatePriceQuote(context.Background(), testActor, dto.CreateQuoteRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCash,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "5", "10", "0")},
	})
	require.NoError(t, err)

	require.NoError(t, e.CancelPriceQuote(context.Background(), testActor, q.ID))
	assert.Equal(t, domain.QuoteCancelled, e.Snapshot().PriceQuoteByID(q.ID).Status)

	_, err = e.ConvertPriceQuote(context.Background(), testActor, q.ID)
	require.ErrorIs(t, err, apperrors.ErrConflict)
	err = e.CancelPriceQuote(context.Background(), testActor, q.ID)
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestConvertPurchaseQuote(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "0")
	supplier := seedSupplier(t, e, "Bob Inc")

	q, err := e.CreatePurchaseQuote(context.Background(), testActor, dto.CreateQuoteRequest{
		Date:        time.Now(),
		PartyID:     supplier.ID,
		PaymentType: domain.PaymentCredit,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "10", "6", "0")},
	})
	require.NoError(t, err)
	assert.Equal(t, "PQU-000001", q.ID)

	p, err := e.ConvertPurchaseQuote(context.Background(), testActor, q.ID)
	require.NoError(t, err)

	assert.Equal(t, "PUR-000001", p.ID)
	st := e.Snapshot()
	got := st.PurchaseQuoteByID(q.ID)
	assert.Equal(t, domain.QuoteConverted, got.Status)
	assert.Equal(t, p.ID, got.ResultPurchaseID)
	assert.True(t, st.ItemByID(item.ID).Stock.Equal(num("10")))
	assert.True(t, st.SupplierByID(supplier.ID).Balance.Equal(num("60")))
}

func TestCreditQuoteRequiresParty(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "20")

	_, err := e.CreatePriceQuote(context.Background(), testActor, dto.CreateQuoteRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCredit,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "1", "10", "0")},
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = e.CreatePurchaseQuote(context.Background(), testActor, dto.CreateQuoteRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCredit,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "1", "6", "0")},
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}
