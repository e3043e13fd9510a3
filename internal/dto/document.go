package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amrmohammed249/daftari/internal/core/domain"
)

// CreateSaleRequest creates (or, on the update endpoint, replaces) a sales
// invoice. An empty CustomerID is the cash-customer sentinel; credit sales
// require a customer.
type CreateSaleRequest struct {
	Date        time.Time          `json:"date" binding:"required"`
	CustomerID  string             `json:"customerID"`
	PaymentType domain.PaymentType `json:"paymentType" binding:"required,oneof=CASH CREDIT"`
	Lines       []LineItemRequest  `json:"lines" binding:"required,dive"`
}

// CreatePurchaseRequest is the purchase-side mirror.
type CreatePurchaseRequest struct {
	Date        time.Time          `json:"date" binding:"required"`
	SupplierID  string             `json:"supplierID"`
	PaymentType domain.PaymentType `json:"paymentType" binding:"required,oneof=CASH CREDIT"`
	Lines       []LineItemRequest  `json:"lines" binding:"required,dive"`
}

// CreateTreasuryRequest creates a receipt or payment voucher.
type CreateTreasuryRequest struct {
	Date        time.Time             `json:"date" binding:"required"`
	Kind        domain.TreasuryKind   `json:"kind" binding:"required,oneof=RECEIPT PAYMENT"`
	Method      domain.TreasuryMethod `json:"method" binding:"required,oneof=CASH BANK"`
	PartyType   domain.TreasuryParty  `json:"partyType" binding:"required,oneof=CUSTOMER SUPPLIER ACCOUNT"`
	PartyID     string                `json:"partyID"`
	AccountCode string                `json:"accountCode"`
	Amount      decimal.Decimal       `json:"amount" binding:"required"`
	Description string                `json:"description"`
}

// AdjustmentLineRequest moves one item by a signed quantity.
type AdjustmentLineRequest struct {
	ItemID   string          `json:"itemID" binding:"required"`
	UnitID   string          `json:"unitID"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateAdjustmentRequest creates an inventory adjustment.
type CreateAdjustmentRequest struct {
	Date   time.Time               `json:"date" binding:"required"`
	Reason string                  `json:"reason" binding:"required,notblank"`
	Lines  []AdjustmentLineRequest `json:"lines" binding:"required,dive"`
}

// CreateQuoteRequest creates a price quote (sales side) or purchase quote,
// depending on the endpoint. PartyID is the customer or supplier.
type CreateQuoteRequest struct {
	Date        time.Time          `json:"date" binding:"required"`
	PartyID     string             `json:"partyID"`
	PaymentType domain.PaymentType `json:"paymentType" binding:"required,oneof=CASH CREDIT"`
	Lines       []LineItemRequest  `json:"lines" binding:"required,dive"`
}

// SaleResponse is the API view of a sale.
type SaleResponse struct {
	ID             string            `json:"id"`
	Date           time.Time         `json:"date"`
	CustomerID     string            `json:"customerID,omitempty"`
	CustomerName   string            `json:"customerName"`
	PaymentType    string            `json:"paymentType"`
	Lines          []domain.LineItem `json:"lines"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	TotalDiscount  decimal.Decimal   `json:"totalDiscount"`
	GrandTotal     decimal.Decimal   `json:"grandTotal"`
	CostOfGoods    decimal.Decimal   `json:"costOfGoods"`
	JournalEntryID string            `json:"journalEntryID"`
	IsArchived     bool              `json:"isArchived"`
}

// ToSaleResponse maps a sale.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		ID:             s.ID,
		Date:           s.Date,
		CustomerID:     s.CustomerID,
		CustomerName:   s.CustomerName,
		PaymentType:    string(s.PaymentType),
		Lines:          append([]domain.LineItem(nil), s.Lines...),
		Subtotal:       s.Subtotal,
		TotalDiscount:  s.TotalDiscount,
		GrandTotal:     s.GrandTotal,
		CostOfGoods:    s.CostOfGoods,
		JournalEntryID: s.JournalEntryID,
		IsArchived:     s.IsArchived,
	}
}

// ToSaleResponses maps a list.
func ToSaleResponses(sales []domain.Sale) []SaleResponse {
	out := make([]SaleResponse, len(sales))
	for i := range sales {
		out[i] = ToSaleResponse(&sales[i])
	}
	return out
}
