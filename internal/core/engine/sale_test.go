package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrmohammed249/daftari/internal/apperrors"
	"github.com/amrmohammed249/daftari/internal/core/domain"
	"github.com/amrmohammed249/daftari/internal/dto"
)

func TestCreateCashSale(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "20")

	sale, err := e.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCash,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "5", "10", "0")},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-000001", sale.ID)
	assert.Equal(t, CashCustomerName, sale.CustomerName)
	assert.True(t, sale.Subtotal.Equal(num("50")))
	assert.True(t, sale.GrandTotal.Equal(num("50")))
	assert.True(t, sale.CostOfGoods.Equal(num("30")))

	st := e.Snapshot()
	assert.True(t, st.ItemByID(item.ID).Stock.Equal(num("15")))
	assert.True(t, accountBalance(t, e, domain.CodeCash).Equal(num("50")))
	assert.True(t, accountBalance(t, e, domain.CodeSalesRevenue).Equal(num("-50")))
	assert.True(t, accountBalance(t, e, domain.CodeCOGS).Equal(num("30")))
	assert.True(t, accountBalance(t, e, domain.CodeInventory).Equal(num("-30")))

	entry := st.JournalByID(sale.JournalEntryID)
	require.NotNil(t, entry)
	assert.Equal(t, domain.SourceSale, entry.Source)
	assert.Equal(t, sale.ID, entry.SourceID)
	assert.True(t, entry.TotalDebit().Equal(entry.TotalCredit()))
}

func TestCreateCreditSaleMovesCustomerBalance(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "20")
	customer := seedCustomer(t, e, "Alice")

	sale, err := e.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Date:        time.Now(),
		CustomerID:  customer.ID,
		PaymentType: domain.PaymentCredit,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "3", "10", "0")},
	})
	require.NoError(t, err)

	st := e.Snapshot()
	assert.True(t, st.CustomerByID(customer.ID).Balance.Equal(num("30")))
	assert.True(t, accountBalance(t, e, domain.CodeReceivables).Equal(num("30")))
	assert.True(t, accountBalance(t, e, domain.CodeCash).IsZero())
	assert.Equal(t, "Alice", sale.CustomerName)
}

func TestCreditSaleRequiresCustomer(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "20")

	_, err := e.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCredit,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "1", "10", "0")},
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSaleDiscountPostsDiscountLine(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "20")

	sale, err := e.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCash,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "5", "10", "8")},
	})
	require.NoError(t, err)

	assert.True(t, sale.Subtotal.Equal(num("50")))
	assert.True(t, sale.TotalDiscount.Equal(num("8")))
	assert.True(t, sale.GrandTotal.Equal(num("42")))

	assert.True(t, accountBalance(t, e, domain.CodeCash).Equal(num("42")))
	assert.True(t, accountBalance(t, e, domain.CodeSalesDiscount).Equal(num("8")))
	assert.True(t, accountBalance(t, e, domain.CodeSalesRevenue).Equal(num("-50")))
}

func TestSaleDiscountCannotExceedLineTotal(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "20")

	_, err := e.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCash,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "1", "10", "11")},
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSalePackingUnitConvertsToBaseQuantity(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Soda Can", "2", "3", "100",
		dto.PackingUnitRequest{Name: "Box", Factor: num("12"), SalePrice: num("30")})
	boxID := item.Units[0].ID

	sale, err := e.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCash,
		Lines: []dto.LineItemRequest{{
			ItemID: item.ID, UnitID: boxID, Quantity: num("2"), UnitPrice: num("30"),
		}},
	})
	require.NoError(t, err)

	require.Len(t, sale.Lines, 1)
	assert.Equal(t, "Box", sale.Lines[0].UnitName)
	assert.True(t, sale.Lines[0].BaseQuantity.Equal(num("24")))
	assert.True(t, sale.Subtotal.Equal(num("60")))
	// cost = 24 base units at purchase price 2
	assert.True(t, sale.CostOfGoods.Equal(num("48")))

	st := e.Snapshot()
	assert.True(t, st.ItemByID(item.ID).Stock.Equal(num("76")))
}

func TestSaleInsufficientStockNamesTheItem(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "4")

	_, err := e.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCash,
		Lines: []dto.LineItemRequest{
			saleLine(item.ID, "3", "10", "0"),
			saleLine(item.ID, "3", "10", "0"),
		},
	})
	require.Error(t, err)

	var stockErr *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, item.ID, stockErr.ItemID)
	assert.True(t, stockErr.Requested.Equal(num("6")))
	assert.True(t, stockErr.Available.Equal(num("4")))
}

func TestSaleAllowNegativeStockOverride(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "2")
	allow := true
	_, err := e.UpdateSettings(context.Background(), testActor, dto.UpdateSettingsRequest{AllowNegativeStock: &allow})
	require.NoError(t, err)

	_, err = e.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCash,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "5", "10", "0")},
	})
	require.NoError(t, err)

	assert.True(t, e.Snapshot().ItemByID(item.ID).Stock.Equal(num("-3")))
}

func TestArchiveSaleRestoresEverything(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "20")
	customer := seedCustomer(t, e, "Alice")

	sale, err := e.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Date:        time.Now(),
		CustomerID:  customer.ID,
		PaymentType: domain.PaymentCredit,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "5", "10", "0")},
	})
	require.NoError(t, err)

	require.NoError(t, e.ArchiveSale(context.Background(), testActor, sale.ID))

	st := e.Snapshot()
	assert.True(t, st.ItemByID(item.ID).Stock.Equal(num("20")))
	assert.True(t, st.CustomerByID(customer.ID).Balance.IsZero())
	assert.True(t, accountBalance(t, e, domain.CodeReceivables).IsZero())
	assert.True(t, accountBalance(t, e, domain.CodeSalesRevenue).IsZero())

	got := st.SaleByID(sale.ID)
	require.NotNil(t, got)
	assert.True(t, got.IsArchived)

	entry := st.JournalByID(sale.JournalEntryID)
	require.NotNil(t, entry)
	assert.True(t, entry.IsArchived)
	assert.True(t, strings.HasPrefix(entry.Description, domain.CancelledPrefix))

	err = e.ArchiveSale(context.Background(), testActor, sale.ID)
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUpdateSaleArchivesOldEntryAndPostsNew(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "20")

	sale, err := e.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCash,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "5", "10", "0")},
	})
	require.NoError(t, err)
	oldEntryID := sale.JournalEntryID

	updated, err := e.UpdateSale(context.Background(), testActor, sale.ID, dto.CreateSaleRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCash,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "2", "10", "0")},
	})
	require.NoError(t, err)

	assert.Equal(t, sale.ID, updated.ID)
	assert.NotEqual(t, oldEntryID, updated.JournalEntryID)
	assert.Equal(t, sale.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.GrandTotal.Equal(num("20")))

	st := e.Snapshot()
	assert.True(t, st.ItemByID(item.ID).Stock.Equal(num("18")))
	assert.True(t, accountBalance(t, e, domain.CodeCash).Equal(num("20")))
	assert.True(t, st.JournalByID(oldEntryID).IsArchived)
	assert.False(t, st.JournalByID(updated.JournalEntryID).IsArchived)
	assert.Len(t, st.Journal, 2)
	assert.Len(t, st.Sales, 1)
}

func TestUpdateSaleFailureRollsBackReversal(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "5")

	sale, err := e.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCash,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "3", "10", "0")},
	})
	require.NoError(t, err)

	// requesting more than stock-after-reversal (5) must fail whole edit
	_, err = e.UpdateSale(context.Background(), testActor, sale.ID, dto.CreateSaleRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCash,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "6", "10", "0")},
	})
	require.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	st := e.Snapshot()
	assert.True(t, st.ItemByID(item.ID).Stock.Equal(num("2")))
	assert.False(t, st.JournalByID(sale.JournalEntryID).IsArchived)
	assert.True(t, accountBalance(t, e, domain.CodeCash).Equal(num("30")))
}

func TestSaleLowStockNotification(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "12")

	_, err := e.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCash,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "5", "10", "0")},
	})
	require.NoError(t, err)

	notes := e.Notifications(0)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Message, "Widget")
	assert.Equal(t, domain.SeverityWarning, notes[0].Severity)

	// already below threshold, no repeat notification
	_, err = e.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCash,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "1", "10", "0")},
	})
	require.NoError(t, err)
	assert.Len(t, e.Notifications(0), 1)
}
