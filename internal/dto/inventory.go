package dto

import (
	"github.com/shopspring/decimal"

	"github.com/amrmohammed249/daftari/internal/core/domain"
)

// PackingUnitRequest defines one packing unit of an item.
type PackingUnitRequest struct {
	Name          string          `json:"name" binding:"required"`
	Factor        decimal.Decimal `json:"factor" binding:"required"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
}

// CreateItemRequest creates an inventory item. OpeningStock, when non-zero,
// is recorded in base units without a journal posting (opening balances are
// an administrative concern).
type CreateItemRequest struct {
	Name          string               `json:"name" binding:"required,notblank"`
	BaseUnit      string               `json:"baseUnit" binding:"required,notblank"`
	PurchasePrice decimal.Decimal      `json:"purchasePrice"`
	SalePrice     decimal.Decimal      `json:"salePrice"`
	OpeningStock  decimal.Decimal      `json:"openingStock"`
	Units         []PackingUnitRequest `json:"units" binding:"dive"`
}

// UpdateItemRequest updates item master data. Stock is never edited directly;
// it only moves through documents.
type UpdateItemRequest struct {
	Name          *string              `json:"name"`
	PurchasePrice *decimal.Decimal     `json:"purchasePrice"`
	SalePrice     *decimal.Decimal     `json:"salePrice"`
	Units         []PackingUnitRequest `json:"units" binding:"dive"`
}

// ItemResponse is the API view of an item.
type ItemResponse struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	BaseUnit      string               `json:"baseUnit"`
	PurchasePrice decimal.Decimal      `json:"purchasePrice"`
	SalePrice     decimal.Decimal      `json:"salePrice"`
	Stock         decimal.Decimal      `json:"stock"`
	Units         []domain.PackingUnit `json:"units,omitempty"`
	Barcode       string               `json:"barcode,omitempty"`
	IsArchived    bool                 `json:"isArchived"`
}

// ToItemResponse maps an item.
func ToItemResponse(i *domain.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:            i.ID,
		Name:          i.Name,
		BaseUnit:      i.BaseUnit,
		PurchasePrice: i.PurchasePrice,
		SalePrice:     i.SalePrice,
		Stock:         i.Stock,
		Units:         append([]domain.PackingUnit(nil), i.Units...),
		Barcode:       i.Barcode,
		IsArchived:    i.IsArchived,
	}
}

// ToItemResponses maps a list.
func ToItemResponses(items []domain.InventoryItem) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i])
	}
	return out
}
