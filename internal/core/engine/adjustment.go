package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amrmohammed249/daftari/internal/apperrors"
	"github.com/amrmohammed249/daftari/internal/core/domain"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// createAdjustmentOnState posts an inventory adjustment. Each line moves one
// item by a signed quantity; movements are valued at the item's current
// purchase price. Increases debit inventory against the adjustment account,
// decreases do the opposite, and both sides can appear in one document.
func createAdjustmentOnState(st *domain.State, id string, req dto.CreateAdjustmentRequest,
	actor domain.Actor, now time.Time, before map[string]decimal.Decimal) (*domain.InventoryAdjustment, error) {

	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: adjustment must have at least one line", apperrors.ErrValidation)
	}
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: adjustment reason is required", apperrors.ErrValidation)
	}

	lines := make([]domain.AdjustmentLine, 0, len(req.Lines))
	totalIncrease, totalDecrease := decimal.Zero, decimal.Zero
	net := make(map[string]decimal.Decimal)
	order := make([]string, 0, len(req.Lines))

	for _, l := range req.Lines {
		item := st.ItemByID(l.ItemID)
		if item == nil {
			return nil, fmt.Errorf("%w: item %s", apperrors.ErrNotFound, l.ItemID)
		}
		if item.IsArchived {
			return nil, fmt.Errorf("%w: item %s is archived", apperrors.ErrValidation, item.Name)
		}
		if l.Quantity.IsZero() {
			return nil, fmt.Errorf("%w: adjustment quantity must not be zero for item %s", apperrors.ErrValidation, item.Name)
		}
		factor, unitName, ok := item.UnitFactor(l.UnitID)
		if !ok {
			return nil, fmt.Errorf("%w: item %s has no packing unit %s", apperrors.ErrValidation, item.Name, l.UnitID)
		}
		baseQty := l.Quantity.Mul(factor)
		value := baseQty.Abs().Mul(item.PurchasePrice)

		if baseQty.IsPositive() {
			totalIncrease = totalIncrease.Add(value)
		} else {
			totalDecrease = totalDecrease.Add(value)
		}
		if _, seen := net[item.ID]; !seen {
			order = append(order, item.ID)
		}
		net[item.ID] = net[item.ID].Add(baseQty)

		lines = append(lines, domain.AdjustmentLine{
			ItemID:       item.ID,
			ItemName:     item.Name,
			UnitID:       l.UnitID,
			UnitName:     unitName,
			Quantity:     l.Quantity,
			BaseQuantity: baseQty,
			Value:        value,
		})
	}

	if !st.Settings.AllowNegativeStock {
		for _, itemID := range order {
			delta := net[itemID]
			if !delta.IsNegative() {
				continue
			}
			item := st.ItemByID(itemID)
			if delta.Neg().GreaterThan(item.Stock) {
				return nil, &apperrors.InsufficientStockError{
					ItemID:    item.ID,
					ItemName:  item.Name,
					Requested: delta.Neg(),
					Available: item.Stock,
				}
			}
		}
	}

	inventoryAcc, err := requireAccount(st, domain.CodeInventory)
	if err != nil {
		return nil, err
	}
	adjustAcc, err := requireAccount(st, domain.CodeInventoryAdjust)
	if err != nil {
		return nil, err
	}

	var jl []domain.JournalLine
	if totalIncrease.IsPositive() {
		jl = append(jl, debitLine(inventoryAcc, totalIncrease), creditLine(adjustAcc, totalIncrease))
	}
	if totalDecrease.IsPositive() {
		jl = append(jl, debitLine(adjustAcc, totalDecrease), creditLine(inventoryAcc, totalDecrease))
	}
	if len(jl) == 0 {
		return nil, fmt.Errorf("%w: adjustment has no financial effect, check item purchase prices", apperrors.ErrValidation)
	}

	for _, itemID := range order {
		item := st.ItemByID(itemID)
		if _, seen := before[item.ID]; !seen {
			before[item.ID] = item.Stock
		}
		item.Stock = item.Stock.Add(net[itemID])
	}

	entry, err := postEntry(st, req.Date, fmt.Sprintf("Inventory adjustment %s - %s", id, req.Reason),
		domain.SourceAdjustment, id, jl, actor, now)
	if err != nil {
		return nil, err
	}

	return &domain.InventoryAdjustment{
		ID:             id,
		Date:           req.Date,
		Reason:         req.Reason,
		Lines:          lines,
		TotalIncrease:  totalIncrease,
		TotalDecrease:  totalDecrease,
		JournalEntryID: entry.ID,
		AuditFields:    domain.NewAuditFields(actor, now),
	}, nil
}

// reverseAdjustmentEffects moves every line's recorded base quantity back and
// archives the journal entry.
func reverseAdjustmentEffects(st *domain.State, adj *domain.InventoryAdjustment,
	actor domain.Actor, now time.Time, before map[string]decimal.Decimal) {

	for _, l := range adj.Lines {
		item := st.ItemByID(l.ItemID)
		if item == nil {
			continue
		}
		if before != nil {
			if _, seen := before[item.ID]; !seen {
				before[item.ID] = item.Stock
			}
		}
		item.Stock = item.Stock.Sub(l.BaseQuantity)
	}
	if entry := st.JournalByID(adj.JournalEntryID); entry != nil {
		archiveEntry(st, entry, actor, now)
	}
}

// checkAdjustmentReversal verifies that undoing the adjustment's recorded
// movements would not drive any item negative.
func checkAdjustmentReversal(st *domain.State, adj *domain.InventoryAdjustment) error {
	if st.Settings.AllowNegativeStock {
		return nil
	}
	net := make(map[string]decimal.Decimal)
	order := make([]string, 0, len(adj.Lines))
	for _, l := range adj.Lines {
		if _, seen := net[l.ItemID]; !seen {
			order = append(order, l.ItemID)
		}
		net[l.ItemID] = net[l.ItemID].Add(l.BaseQuantity)
	}
	for _, itemID := range order {
		delta := net[itemID]
		if !delta.IsPositive() {
			continue
		}
		item := st.ItemByID(itemID)
		if item == nil {
			continue
		}
		if delta.GreaterThan(item.Stock) {
			return &apperrors.InsufficientStockError{
				ItemID:    item.ID,
				ItemName:  item.Name,
				Requested: delta,
				Available: item.Stock,
			}
		}
	}
	return nil
}

// CreateAdjustment posts an inventory adjustment.
func (e *Engine) CreateAdjustment(ctx context.Context, actor domain.Actor, req dto.CreateAdjustmentRequest) (*domain.InventoryAdjustment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var created domain.InventoryAdjustment
	var notes []domain.Notification
	err := e.mutate(func(st *domain.State) error {
		before := make(map[string]decimal.Decimal)
		id := st.Sequences.NextID(domain.SeqAdjustment)
		adj, err := createAdjustmentOnState(st, id, req, actor, e.now(), before)
		if err != nil {
			return err
		}
		st.Adjustments = append(st.Adjustments, *adj)
		created = *adj
		created.Lines = append([]domain.AdjustmentLine(nil), adj.Lines...)
		notes = e.lowStockNotes(st, before)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "adjustment.create", "created inventory adjustment %s (%s)",
		created.ID, created.Reason)
	e.notify(notes)
	logger.Info("Inventory adjustment created", slog.String("adjustment_id", created.ID))
	return &created, nil
}

// UpdateAdjustment replaces an adjustment's content via reversal plus
// re-creation under the same id.
func (e *Engine) UpdateAdjustment(ctx context.Context, actor domain.Actor, adjustmentID string, req dto.CreateAdjustmentRequest) (*domain.InventoryAdjustment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var updated domain.InventoryAdjustment
	var notes []domain.Notification
	err := e.mutate(func(st *domain.State) error {
		existing := st.AdjustmentByID(adjustmentID)
		if existing == nil {
			return fmt.Errorf("%w: inventory adjustment %s", apperrors.ErrNotFound, adjustmentID)
		}
		if existing.IsArchived {
			return fmt.Errorf("%w: inventory adjustment %s is archived", apperrors.ErrConflict, adjustmentID)
		}
		if err := checkAdjustmentReversal(st, existing); err != nil {
			return err
		}

		before := make(map[string]decimal.Decimal)
		reverseAdjustmentEffects(st, existing, actor, e.now(), before)

		adj, err := createAdjustmentOnState(st, adjustmentID, req, actor, e.now(), before)
		if err != nil {
			return err
		}
		adj.CreatedAt = existing.CreatedAt
		adj.CreatedBy = existing.CreatedBy
		adj.Touch(actor, e.now())
		*existing = *adj
		updated = *adj
		updated.Lines = append([]domain.AdjustmentLine(nil), adj.Lines...)
		notes = e.lowStockNotes(st, before)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "adjustment.update", "updated inventory adjustment %s", updated.ID)
	e.notify(notes)
	logger.Info("Inventory adjustment updated", slog.String("adjustment_id", updated.ID))
	return &updated, nil
}

// ArchiveAdjustment cancels an adjustment, restoring the prior stock levels.
func (e *Engine) ArchiveAdjustment(ctx context.Context, actor domain.Actor, adjustmentID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	var notes []domain.Notification
	err := e.mutate(func(st *domain.State) error {
		adj := st.AdjustmentByID(adjustmentID)
		if adj == nil {
			return fmt.Errorf("%w: inventory adjustment %s", apperrors.ErrNotFound, adjustmentID)
		}
		if adj.IsArchived {
			return fmt.Errorf("%w: inventory adjustment %s is already archived", apperrors.ErrConflict, adjustmentID)
		}
		if err := checkAdjustmentReversal(st, adj); err != nil {
			return err
		}
		before := make(map[string]decimal.Decimal)
		reverseAdjustmentEffects(st, adj, actor, e.now(), before)
		adj.IsArchived = true
		adj.Touch(actor, e.now())
		notes = e.lowStockNotes(st, before)
		return nil
	})
	if err != nil {
		return err
	}

	e.recordAudit(actor, "adjustment.archive", "archived inventory adjustment %s", adjustmentID)
	e.notify(notes)
	logger.Info("Inventory adjustment archived", slog.String("adjustment_id", adjustmentID))
	return nil
}
