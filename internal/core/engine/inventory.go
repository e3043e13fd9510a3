package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/amrmohammed249/daftari/internal/apperrors"
	"github.com/amrmohammed249/daftari/internal/core/domain"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

func buildPackingUnits(units []dto.PackingUnitRequest) ([]domain.PackingUnit, error) {
	out := make([]domain.PackingUnit, 0, len(units))
	seen := make(map[string]bool, len(units))
	for _, u := range units {
		if !u.Factor.IsPositive() {
			return nil, fmt.Errorf("%w: packing unit %s must have a positive factor", apperrors.ErrValidation, u.Name)
		}
		key := strings.ToLower(strings.TrimSpace(u.Name))
		if seen[key] {
			return nil, fmt.Errorf("%w: packing unit %s", apperrors.ErrDuplicate, u.Name)
		}
		seen[key] = true
		out = append(out, domain.PackingUnit{
			ID:            uuid.NewString(),
			Name:          u.Name,
			Factor:        u.Factor,
			PurchasePrice: u.PurchasePrice,
			SalePrice:     u.SalePrice,
		})
	}
	return out, nil
}

// CreateItem creates an inventory item. An opening stock, when given, is set
// directly in base units; it predates the books and posts nothing.
func (e *Engine) CreateItem(ctx context.Context, actor domain.Actor, req dto.CreateItemRequest) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var created domain.InventoryItem
	err := e.mutate(func(st *domain.State) error {
		if req.PurchasePrice.IsNegative() || req.SalePrice.IsNegative() {
			return fmt.Errorf("%w: prices must not be negative", apperrors.ErrValidation)
		}
		if req.OpeningStock.IsNegative() {
			return fmt.Errorf("%w: opening stock must not be negative", apperrors.ErrValidation)
		}
		for i := range st.Items {
			if !st.Items[i].IsArchived && strings.EqualFold(st.Items[i].Name, req.Name) {
				return fmt.Errorf("%w: item named %s", apperrors.ErrDuplicate, req.Name)
			}
		}
		units, err := buildPackingUnits(req.Units)
		if err != nil {
			return err
		}

		item := domain.InventoryItem{
			ID:            st.Sequences.NextID(domain.SeqItem),
			Name:          req.Name,
			BaseUnit:      req.BaseUnit,
			PurchasePrice: req.PurchasePrice,
			SalePrice:     req.SalePrice,
			Stock:         req.OpeningStock,
			Units:         units,
			AuditFields:   domain.NewAuditFields(actor, e.now()),
		}
		st.Items = append(st.Items, item)
		created = item.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "item.create", "created item %s (%s)", created.Name, created.ID)
	logger.Info("Item created", slog.String("item_id", created.ID), slog.String("name", created.Name))
	return &created, nil
}

// UpdateItem changes item master data. Stock never moves here; prices affect
// only future postings because documents record their own values.
func (e *Engine) UpdateItem(ctx context.Context, actor domain.Actor, itemID string, req dto.UpdateItemRequest) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var updated domain.InventoryItem
	err := e.mutate(func(st *domain.State) error {
		item := st.ItemByID(itemID)
		if item == nil {
			return fmt.Errorf("%w: item %s", apperrors.ErrNotFound, itemID)
		}
		if item.IsArchived {
			return fmt.Errorf("%w: item %s is archived", apperrors.ErrConflict, itemID)
		}

		if req.Name != nil && *req.Name != item.Name {
			for i := range st.Items {
				if st.Items[i].ID != item.ID && !st.Items[i].IsArchived && strings.EqualFold(st.Items[i].Name, *req.Name) {
					return fmt.Errorf("%w: item named %s", apperrors.ErrDuplicate, *req.Name)
				}
			}
			item.Name = *req.Name
		}
		if req.PurchasePrice != nil {
			if req.PurchasePrice.IsNegative() {
				return fmt.Errorf("%w: purchase price must not be negative", apperrors.ErrValidation)
			}
			item.PurchasePrice = *req.PurchasePrice
		}
		if req.SalePrice != nil {
			if req.SalePrice.IsNegative() {
				return fmt.Errorf("%w: sale price must not be negative", apperrors.ErrValidation)
			}
			item.SalePrice = *req.SalePrice
		}
		if req.Units != nil {
			units, err := buildPackingUnits(req.Units)
			if err != nil {
				return err
			}
			item.Units = units
		}
		item.Touch(actor, e.now())
		updated = item.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "item.update", "updated item %s (%s)", updated.Name, updated.ID)
	logger.Info("Item updated", slog.String("item_id", updated.ID))
	return &updated, nil
}

// ArchiveItem hides an item from new documents. Only items with zero stock
// can be archived, so inventory value never hides with them.
func (e *Engine) ArchiveItem(ctx context.Context, actor domain.Actor, itemID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := e.mutate(func(st *domain.State) error {
		item := st.ItemByID(itemID)
		if item == nil {
			return fmt.Errorf("%w: item %s", apperrors.ErrNotFound, itemID)
		}
		if item.IsArchived {
			return fmt.Errorf("%w: item %s is already archived", apperrors.ErrConflict, itemID)
		}
		if !item.Stock.IsZero() {
			return fmt.Errorf("%w: item %s still has %s %s in stock",
				apperrors.ErrConflict, item.Name, item.Stock.String(), item.BaseUnit)
		}
		item.IsArchived = true
		item.Touch(actor, e.now())
		return nil
	})
	if err != nil {
		return err
	}

	e.recordAudit(actor, "item.archive", "archived item %s", itemID)
	logger.Info("Item archived", slog.String("item_id", itemID))
	return nil
}

// UnarchiveItem makes an archived item available again.
func (e *Engine) UnarchiveItem(ctx context.Context, actor domain.Actor, itemID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := e.mutate(func(st *domain.State) error {
		item := st.ItemByID(itemID)
		if item == nil {
			return fmt.Errorf("%w: item %s", apperrors.ErrNotFound, itemID)
		}
		if !item.IsArchived {
			return fmt.Errorf("%w: item %s is not archived", apperrors.ErrConflict, itemID)
		}
		for i := range st.Items {
			if st.Items[i].ID != item.ID && !st.Items[i].IsArchived && strings.EqualFold(st.Items[i].Name, item.Name) {
				return fmt.Errorf("%w: an active item named %s already exists", apperrors.ErrDuplicate, item.Name)
			}
		}
		item.IsArchived = false
		item.Touch(actor, e.now())
		return nil
	})
	if err != nil {
		return err
	}

	e.recordAudit(actor, "item.unarchive", "restored item %s", itemID)
	logger.Info("Item restored", slog.String("item_id", itemID))
	return nil
}

// AssignBarcode mints the next free generated barcode for an item that does
// not have one yet. The sequence skips values already taken.
func (e *Engine) AssignBarcode(ctx context.Context, actor domain.Actor, itemID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var updated domain.InventoryItem
	err := e.mutate(func(st *domain.State) error {
		item := st.ItemByID(itemID)
		if item == nil {
			return fmt.Errorf("%w: item %s", apperrors.ErrNotFound, itemID)
		}
		if item.Barcode != "" {
			return fmt.Errorf("%w: item %s already has barcode %s", apperrors.ErrConflict, item.Name, item.Barcode)
		}

		taken := make(map[string]bool, len(st.Items))
		for i := range st.Items {
			if st.Items[i].Barcode != "" {
				taken[st.Items[i].Barcode] = true
			}
		}
		barcode := st.Sequences.NextID(domain.SeqBarcode)
		for taken[barcode] {
			barcode = st.Sequences.NextID(domain.SeqBarcode)
		}
		item.Barcode = barcode
		item.Touch(actor, e.now())
		updated = item.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "item.barcode", "assigned barcode %s to item %s", updated.Barcode, updated.ID)
	logger.Info("Barcode assigned", slog.String("item_id", updated.ID), slog.String("barcode", updated.Barcode))
	return &updated, nil
}
