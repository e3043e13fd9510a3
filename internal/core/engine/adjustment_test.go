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

func adjLine(itemID, qty string) dto.AdjustmentLineRequest {
	return dto.AdjustmentLineRequest{ItemID: itemID, Quantity: num(qty)}
}

func TestCreateAdjustmentMixedDirections(t *testing.T) {
	e := testEngine(t)
	found := seedItem(t, e, "Found Item", "4", "7", "10")
	lost := seedItem(t, e, "Lost Item", "5", "9", "10")

	adj, err := e.CreateAdjustment(context.Background(), testActor, dto.CreateAdjustmentRequest{
		Date:   time.Now(),
		Reason: "stocktake",
		Lines: []dto.AdjustmentLineRequest{
			adjLine(found.ID, "3"),
			adjLine(lost.ID, "-2"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "ADJ-000001", adj.ID)
	assert.True(t, adj.TotalIncrease.Equal(num("12"))) // 3 * 4
	assert.True(t, adj.TotalDecrease.Equal(num("10"))) // 2 * 5

	st := e.Snapshot()
	assert.True(t, st.ItemByID(found.ID).Stock.Equal(num("13")))
	assert.True(t, st.ItemByID(lost.ID).Stock.Equal(num("8")))
	// net inventory effect is +12 -10
	assert.True(t, accountBalance(t, e, domain.CodeInventory).Equal(num("2")))

	entry := st.JournalByID(adj.JournalEntryID)
	require.NotNil(t, entry)
	assert.Equal(t, domain.SourceAdjustment, entry.Source)
	require.Len(t, entry.Lines, 4)
	assert.True(t, entry.TotalDebit().Equal(entry.TotalCredit()))
}

func TestAdjustmentValidation(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "10")

	_, err := e.CreateAdjustment(context.Background(), testActor, dto.CreateAdjustmentRequest{
		Date: time.Now(), Reason: "x", Lines: nil,
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = e.CreateAdjustment(context.Background(), testActor, dto.CreateAdjustmentRequest{
		Date: time.Now(), Reason: "", Lines: []dto.AdjustmentLineRequest{adjLine(item.ID, "1")},
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = e.CreateAdjustment(context.Background(), testActor, dto.CreateAdjustmentRequest{
		Date: time.Now(), Reason: "x", Lines: []dto.AdjustmentLineRequest{adjLine(item.ID, "0")},
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAdjustmentCannotDriveStockNegative(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "5")

	_, err := e.CreateAdjustment(context.Background(), testActor, dto.CreateAdjustmentRequest{
		Date:   time.Now(),
		Reason: "shrinkage",
		Lines:  []dto.AdjustmentLineRequest{adjLine(item.ID, "-8")},
	})
	require.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	assert.True(t, e.Snapshot().ItemByID(item.ID).Stock.Equal(num("5")))
}

func TestAdjustmentZeroValueRejected(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Free Sample", "0", "0", "10")

	_, err := e.CreateAdjustment(context.Background(), testActor, dto.CreateAdjustmentRequest{
		Date:   time.Now(),
		Reason: "stocktake",
		Lines:  []dto.AdjustmentLineRequest{adjLine(item.ID, "2")},
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestArchiveAdjustmentRestoresStock(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "10")

	adj, err := e.CreateAdjustment(context.Background(), testActor, dto.CreateAdjustmentRequest{
		Date:   time.Now(),
		Reason: "stocktake",
		Lines:  []dto.AdjustmentLineRequest{adjLine(item.ID, "-4")},
	})
	require.NoError(t, err)
	require.True(t, e.Snapshot().ItemByID(item.ID).Stock.Equal(num("6")))

	require.NoError(t, e.ArchiveAdjustment(context.Background(), testActor, adj.ID))

	st := e.Snapshot()
	assert.True(t, st.ItemByID(item.ID).Stock.Equal(num("10")))
	assert.True(t, accountBalance(t, e, domain.CodeInventory).IsZero())
	assert.True(t, st.AdjustmentByID(adj.ID).IsArchived)
	assert.True(t, st.JournalByID(adj.JournalEntryID).IsArchived)
}

func TestArchiveAdjustmentBlockedWhenAddedStockGone(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "0")

	adj, err := e.CreateAdjustment(context.Background(), testActor, dto.CreateAdjustmentRequest{
		Date:   time.Now(),
		Reason: "found stock",
		Lines:  []dto.AdjustmentLineRequest{adjLine(item.ID, "5")},
	})
	require.NoError(t, err)

	// sell what the adjustment added
	_, err = e.CreateSale(context.Background(), testActor, dto.CreateSaleRequest{
		Date:        time.Now(),
		PaymentType: domain.PaymentCash,
		Lines:       []dto.LineItemRequest{saleLine(item.ID, "4", "10", "0")},
	})
	require.NoError(t, err)

	err = e.ArchiveAdjustment(context.Background(), testActor, adj.ID)
	require.ErrorIs(t, err, apperrors.ErrInsufficientStock)
}

func TestUpdateAdjustmentRepostsUnderSameID(t *testing.T) {
	e := testEngine(t)
	item := seedItem(t, e, "Widget", "6", "10", "20")

	adj, err := e.CreateAdjustment(context.Background(), testActor, dto.CreateAdjustmentRequest{
		Date:   time.Now(),
		Reason: "stocktake",
		Lines:  []dto.AdjustmentLineRequest{adjLine(item.ID, "-4")},
	})
	require.NoError(t, err)

	updated, err := e.UpdateAdjustment(context.Background(), testActor, adj.ID, dto.CreateAdjustmentRequest{
		Date:   time.Now(),
		Reason: "stocktake recount",
		Lines:  []dto.AdjustmentLineRequest{adjLine(item.ID, "-1")},
	})
	require.NoError(t, err)

	assert.Equal(t, adj.ID, updated.ID)
	assert.Equal(t, "stocktake recount", updated.Reason)

	st := e.Snapshot()
	assert.True(t, st.ItemByID(item.ID).Stock.Equal(num("19")))
	assert.True(t, st.JournalByID(adj.JournalEntryID).IsArchived)
	assert.Len(t, st.Adjustments, 1)
}
