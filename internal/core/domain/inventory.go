package domain

import "github.com/shopspring/decimal"

// PackingUnit converts a sellable unit (box, carton, dozen) to base units via
// a multiplicative factor: quantity_in_base = quantity * factor.
type PackingUnit struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Factor        decimal.Decimal `json:"factor"` // > 0
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
}

// InventoryItem is a stocked item. Stock is always held in base units; the
// flat-cost model carries a single current purchase price per base unit, not
// lot-tracked cost layers.
type InventoryItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	BaseUnit      string          `json:"baseUnit"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"` // per base unit
	SalePrice     decimal.Decimal `json:"salePrice"`     // per base unit
	Stock         decimal.Decimal `json:"stock"`         // in base units, signed
	Units         []PackingUnit   `json:"units"`
	Barcode       string          `json:"barcode"` // unique when non-empty, assigned lazily
	IsArchived    bool            `json:"isArchived"`
	AuditFields
}

// UnitFactor resolves a packing unit id to its conversion factor. An empty
// unit id means the base unit (factor 1).
func (i *InventoryItem) UnitFactor(unitID string) (decimal.Decimal, string, bool) {
	if unitID == "" {
		return decimal.NewFromInt(1), i.BaseUnit, true
	}
	for _, u := range i.Units {
		if u.ID == unitID {
			return u.Factor, u.Name, true
		}
	}
	return decimal.Zero, "", false
}

// Clone deep-copies the item.
func (i InventoryItem) Clone() InventoryItem {
	i.Units = append([]PackingUnit(nil), i.Units...)
	return i
}
