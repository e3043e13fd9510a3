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

func TestReceiptFromCustomerSettlesBalance(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "20")
	customer := seedCustomer(t, e, "Alice")

	_, err := e.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Date:        time.Now(),
		CustomerID:  customer.ID,
		PaymentType: domain.PaymentCredit,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "5", "10", "0")},
	})
	require.NoError(t, err)

	v, err := e.CreateTreasury(context.Background(), testActor, dto.CreateTreasuryRequest{
		Date:      time.Now(),
		Kind:      domain.TreasuryReceipt,
		Method:    domain.MethodCash,
		PartyType: domain.PartyCustomer,
		PartyID:   customer.ID,
		Amount:    num("30"),
	})
	require.NoError(t, err)

	assert.Equal(t, "TRV-000001", v.ID)
	assert.Equal(t, "Receipt from Alice", v.Description)

	st := e.Snapshot()
	assert.True(t, st.CustomerByID(customer.ID).Balance.Equal(num("20")))
	assert.True(t, accountBalance(t, e, domain.CodeCash).Equal(num("30")))
	assert.True(t, accountBalance(t, e, domain.CodeReceivables).Equal(num("20")))
}

func TestPaymentToSupplierViaBank(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "0")
	supplier := seedSupplier(t, e, "Bob Inc")

	_, err := e.CreatePurchase(context.Background(), testActor, dto.CreatePurchaseRequest{
		Date:        time.Now(),
		SupplierID:  supplier.ID,
		PaymentType: domain.PaymentCredit,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "10", "6", "0")},
	})
	require.NoError(t, err)

	_, err = e.CreateTreasury(context.Background(), testActor, dto.CreateTreasuryRequest{
		Date:      time.Now(),
		Kind:      domain.TreasuryPayment,
		Method:    domain.MethodBank,
		PartyType: domain.PartySupplier,
		PartyID:   supplier.ID,
		Amount:    num("60"),
	})
	require.NoError(t, err)

	st := e.Snapshot()
	assert.True(t, st.SupplierByID(supplier.ID).Balance.IsZero())
	assert.True(t, accountBalance(t, e, domain.CodeBank).Equal(num("-60")))
	assert.True(t, accountBalance(t, e, domain.CodePayables).IsZero())
	assert.True(t, accountBalance(t, e, domain.CodeCash).IsZero())
}

func TestRefundDirectionsMirror(t *testing.T) {
	e := testEngine(t)
	customer := seedCustomer(t, e, "Alice")

	// paying a customer back raises what they owe us again
	_, err := e.CreateTreasury(context.Background(), testActor, dto.CreateTreasuryRequest{
		Date:      time.Now(),
		Kind:      domain.TreasuryPayment,
		Method:    domain.MethodCash,
		PartyType: domain.PartyCustomer,
		PartyID:   customer.ID,
		Amount:    num("15"),
	})
	require.NoError(t, err)

	st := e.Snapshot()
	assert.True(t, st.CustomerByID(customer.ID).Balance.Equal(num("15")))
	assert.True(t, accountBalance(t, e, domain.CodeCash).Equal(num("-15")))
	assert.True(t, accountBalance(t, e, domain.CodeReceivables).Equal(num("15")))
}

func TestDirectAccountVoucher(t *testing.T) {
	e := testEngine(t)

	v, err := e.CreateTreasury(context.Background(), testActor, dto.CreateTreasuryRequest{
		Date:        time.Now(),
		Kind:        domain.TreasuryPayment,
		Method:      domain.MethodCash,
		PartyType:   domain.PartyAccount,
		AccountCode: domain.CodeInventoryAdjust,
		Amount:      num("25"),
		Description: "Stock write-off settlement",
	})
	require.NoError(t, err)
	assert.Equal(t, "Stock write-off settlement", v.Description)

	assert.True(t, accountBalance(t, e, domain.CodeCash).Equal(num("-25")))
	assert.True(t, accountBalance(t, e, domain.CodeInventoryAdjust).Equal(num("25")))
}

func TestDirectAccountVoucherValidation(t *testing.T) {
	e := testEngine(t)

	_, err := e.CreateTreasury(context.Background(), testActor, dto.CreateTreasuryRequest{
		Date:      time.Now(),
		Kind:      domain.TreasuryReceipt,
		Method:    domain.MethodCash,
		PartyType: domain.PartyAccount,
		Amount:    num("10"),
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	// counterparty must differ from the money account
	_, err = e.CreateTreasury(context.Background(), testActor, dto.CreateTreasuryRequest{
		Date:        time.Now(),
		Kind:        domain.TreasuryReceipt,
		Method:      domain.MethodCash,
		PartyType:   domain.PartyAccount,
		AccountCode: domain.CodeCash,
		Amount:      num("10"),
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = e.CreateTreasury(context.Background(), testActor, dto.CreateTreasuryRequest{
		Date:      time.Now(),
		Kind:      domain.TreasuryReceipt,
		Method:    domain.MethodCash,
		PartyType: domain.PartyCustomer,
		PartyID:   "missing",
		Amount:    num("-1"),
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestArchiveTreasuryReversesMovement(t *testing.T) {
	e := testEngine(t)
	customer := seedCustomer(t, e, "Alice")

	v, err := e.CreateTreasury(context.Background(), testActor, dto.CreateTreasuryRequest{
		Date:      time.Now(),
		Kind:      domain.TreasuryReceipt,
		Method:    domain.MethodCash,
		PartyType: domain.PartyCustomer,
		PartyID:   customer.ID,
		Amount:    num("40"),
	})
	require.NoError(t, err)

	require.NoError(t, e.ArchiveTreasury(context.Background(), testActor, v.ID))

	st := e.Snapshot()
	assert.True(t, st.CustomerByID(customer.ID).Balance.IsZero())
	assert.True(t, accountBalance(t, e, domain.CodeCash).IsZero())
	assert.True(t, st.TreasuryByID(v.ID).IsArchived)
	assert.True(t, st.JournalByID(v.JournalEntryID).IsArchived)

	err = e.ArchiveTreasury(context.Background(), testActor, v.ID)
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUpdateTreasuryRepostsUnderSameID(t *testing.T) {
	e := testEngine(t)
	supplier := seedSupplier(t, e, "Bob Inc")

	v, err := e.CreateTreasury(context.Background(), testActor, dto.CreateTreasuryRequest{
		Date:      time.Now(),
		Kind:      domain.TreasuryPayment,
		Method:    domain.MethodCash,
		PartyType: domain.PartySupplier,
		PartyID:   supplier.ID,
		Amount:    num("50"),
	})
	require.NoError(t, err)

	updated, err := e.UpdateTreasury(context.Background(), testActor, v.ID, dto.CreateTreasuryRequest{
		Date:      time.Now(),
		Kind:      domain.TreasuryPayment,
		Method:    domain.MethodBank,
		PartyType: domain.PartySupplier,
		PartyID:   supplier.ID,
		Amount:    num("35"),
	})
	require.NoError(t, err)

	assert.Equal(t, v.ID, updated.ID)
	assert.NotEqual(t, v.JournalEntryID, updated.JournalEntryID)

	st := e.Snapshot()
	assert.True(t, st.SupplierByID(supplier.ID).Balance.Equal(num("-35")))
	assert.True(t, accountBalance(t, e, domain.CodeCash).IsZero())
	assert.True(t, accountBalance(t, e, domain.CodeBank).Equal(num("-35")))
	assert.Len(t, st.Treasury, 1)
}
