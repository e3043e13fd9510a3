package domain

import "github.com/shopspring/decimal"

// Customer carries a debit-normal balance: positive means the business is
// owed money.
type Customer struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Balance    decimal.Decimal `json:"balance"`
	IsArchived bool            `json:"isArchived"`
	AuditFields
}

// Supplier carries a credit-normal balance stored as a positive amount:
// positive means the business owes money.
type Supplier struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Balance    decimal.Decimal `json:"balance"`
	IsArchived bool            `json:"isArchived"`
	AuditFields
}
