package dto

import (
	"github.com/shopspring/decimal"

	"github.com/amrmohammed249/daftari/internal/core/domain"
)

// CreatePartyRequest creates a customer or supplier, depending on the
// endpoint. OpeningBalance follows the party's sign convention.
type CreatePartyRequest struct {
	Name           string          `json:"name" binding:"required,notblank"`
	Phone          string          `json:"phone"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// UpdatePartyRequest updates party master data. Balances only move through
// documents.
type UpdatePartyRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// PartyResponse is the API view of a customer or supplier.
type PartyResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone,omitempty"`
	Balance    decimal.Decimal `json:"balance"`
	IsArchived bool            `json:"isArchived"`
}

// ToCustomerResponse maps a customer.
func ToCustomerResponse(c *domain.Customer) PartyResponse {
	return PartyResponse{ID: c.ID, Name: c.Name, Phone: c.Phone, Balance: c.Balance, IsArchived: c.IsArchived}
}

// ToSupplierResponse maps a supplier.
func ToSupplierResponse(s *domain.Supplier) PartyResponse {
	return PartyResponse{ID: s.ID, Name: s.Name, Phone: s.Phone, Balance: s.Balance, IsArchived: s.IsArchived}
}
