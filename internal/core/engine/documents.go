package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/amrmohammed249/daftari/internal/apperrors"
	"github.com/amrmohammed249/daftari/internal/core/domain"
)

// itemNeed is an aggregated base-unit quantity per item, in first-appearance
// order so insufficient-stock errors are deterministic.
type itemNeed struct {
	itemID string
	qty    decimal.Decimal
}

// docLines is the result of validating and enriching a document's line
// items: lines carry resolved names, factors and base quantities, and the
// totals are ready for posting.
type docLines struct {
	lines    []domain.LineItem
	subtotal decimal.Decimal
	discount decimal.Decimal
	grand    decimal.Decimal
	cogs     decimal.Decimal // at current purchase price; zero unless withCost
	need     []itemNeed
}

// resolveLines validates every line against the current inventory and
// computes the document aggregates. withCost additionally values each line's
// base quantity at the item's current purchase price (flat-cost model).
func resolveLines(st *domain.State, lines []domain.LineItem, withCost bool) (*docLines, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: document must have at least one line", apperrors.ErrValidation)
	}

	out := &docLines{
		subtotal: decimal.Zero,
		discount: decimal.Zero,
		cogs:     decimal.Zero,
		lines:    make([]domain.LineItem, 0, len(lines)),
	}
	needIdx := make(map[string]int)

	for _, l := range lines {
		item := st.ItemByID(l.ItemID)
		if item == nil {
			return nil, fmt.Errorf("%w: item %s", apperrors.ErrNotFound, l.ItemID)
		}
		if item.IsArchived {
			return nil, fmt.Errorf("%w: item %s is archived", apperrors.ErrValidation, item.Name)
		}
		if !l.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: quantity must be positive for item %s", apperrors.ErrValidation, item.Name)
		}
		if l.UnitPrice.IsNegative() || l.Discount.IsNegative() {
			return nil, fmt.Errorf("%w: price and discount must not be negative for item %s", apperrors.ErrValidation, item.Name)
		}

		factor, unitName, ok := item.UnitFactor(l.UnitID)
		if !ok {
			return nil, fmt.Errorf("%w: item %s has no packing unit %s", apperrors.ErrValidation, item.Name, l.UnitID)
		}
		baseQty := l.Quantity.Mul(factor)

		lineTotal := l.Quantity.Mul(l.UnitPrice)
		if l.Discount.GreaterThan(lineTotal) {
			return nil, fmt.Errorf("%w: discount exceeds line total for item %s", apperrors.ErrValidation, item.Name)
		}

		out.subtotal = out.subtotal.Add(lineTotal)
		out.discount = out.discount.Add(l.Discount)
		if withCost {
			out.cogs = out.cogs.Add(baseQty.Mul(item.PurchasePrice))
		}

		if i, ok := needIdx[item.ID]; ok {
			out.need[i].qty = out.need[i].qty.Add(baseQty)
		} else {
			needIdx[item.ID] = len(out.need)
			out.need = append(out.need, itemNeed{itemID: item.ID, qty: baseQty})
		}

		out.lines = append(out.lines, domain.LineItem{
			ItemID:       item.ID,
			ItemName:     item.Name,
			UnitID:       l.UnitID,
			UnitName:     unitName,
			Quantity:     l.Quantity,
			BaseQuantity: baseQty,
			UnitPrice:    l.UnitPrice,
			Discount:     l.Discount,
		})
	}

	out.grand = out.subtotal.Sub(out.discount)
	return out, nil
}

// checkStock rejects the operation if any item's aggregated base-unit
// requirement exceeds its current stock, unless negative stock is allowed.
// Must run before any mutation.
func checkStock(st *domain.State, need []itemNeed) error {
	if st.Settings.AllowNegativeStock {
		return nil
	}
	for _, n := range need {
		item := st.ItemByID(n.itemID)
		if n.qty.GreaterThan(item.Stock) {
			return &apperrors.InsufficientStockError{
				ItemID:    item.ID,
				ItemName:  item.Name,
				Requested: n.qty,
				Available: item.Stock,
			}
		}
	}
	return nil
}

// consumeStock subtracts base quantities, recording prior levels into before
// for low-stock detection.
func consumeStock(st *domain.State, need []itemNeed, before map[string]decimal.Decimal) {
	for _, n := range need {
		item := st.ItemByID(n.itemID)
		if _, seen := before[item.ID]; !seen {
			before[item.ID] = item.Stock
		}
		item.Stock = item.Stock.Sub(n.qty)
	}
}

// restoreStock adds base quantities back from a document's recorded lines.
func restoreStock(st *domain.State, lines []domain.LineItem) {
	for _, l := range lines {
		if item := st.ItemByID(l.ItemID); item != nil {
			item.Stock = item.Stock.Add(l.BaseQuantity)
		}
	}
}

// receiveStock adds base quantities for a purchase's lines.
func receiveStock(st *domain.State, lines []domain.LineItem) {
	for _, l := range lines {
		if item := st.ItemByID(l.ItemID); item != nil {
			item.Stock = item.Stock.Add(l.BaseQuantity)
		}
	}
}

// drainStock removes a purchase's received quantities again (edit/archive
// reversal). The feasibility of going below zero is checked by the caller
// against the recorded lines.
func drainStock(st *domain.State, lines []domain.LineItem, before map[string]decimal.Decimal) {
	for _, l := range lines {
		if item := st.ItemByID(l.ItemID); item != nil {
			if before != nil {
				if _, seen := before[item.ID]; !seen {
					before[item.ID] = item.Stock
				}
			}
			item.Stock = item.Stock.Sub(l.BaseQuantity)
		}
	}
}

// checkReversalStock verifies that removing a document's recorded base
// quantities would not drive stock negative (used when archiving or editing
// a purchase whose received stock may have been consumed since).
func checkReversalStock(st *domain.State, lines []domain.LineItem) error {
	if st.Settings.AllowNegativeStock {
		return nil
	}
	taken := make(map[string]decimal.Decimal)
	for _, l := range lines {
		taken[l.ItemID] = taken[l.ItemID].Add(l.BaseQuantity)
	}
	for _, l := range lines {
		qty, ok := taken[l.ItemID]
		if !ok {
			continue
		}
		delete(taken, l.ItemID)
		item := st.ItemByID(l.ItemID)
		if item == nil {
			continue
		}
		if qty.GreaterThan(item.Stock) {
			return &apperrors.InsufficientStockError{
				ItemID:    item.ID,
				ItemName:  item.Name,
				Requested: qty,
				Available: item.Stock,
			}
		}
	}
	return nil
}
