package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amrmohammed249/daftari/internal/core/domain"
)

// PurchaseResponse is the API view of a purchase.
type PurchaseResponse struct {
	ID             string            `json:"id"`
	Date           time.Time         `json:"date"`
	SupplierID     string            `json:"supplierID,omitempty"`
	SupplierName   string            `json:"supplierName"`
	PaymentType    string            `json:"paymentType"`
	Lines          []domain.LineItem `json:"lines"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	TotalDiscount  decimal.Decimal   `json:"totalDiscount"`
	GrandTotal     decimal.Decimal   `json:"grandTotal"`
	JournalEntryID string            `json:"journalEntryID"`
	IsArchived     bool              `json:"isArchived"`
}

// ToPurchaseResponse maps a purchase.
func ToPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:             p.ID,
		Date:           p.Date,
		SupplierID:     p.SupplierID,
		SupplierName:   p.SupplierName,
		PaymentType:    string(p.PaymentType),
		Lines:          append([]domain.LineItem(nil), p.Lines...),
		Subtotal:       p.Subtotal,
		TotalDiscount:  p.TotalDiscount,
		GrandTotal:     p.GrandTotal,
		JournalEntryID: p.JournalEntryID,
		IsArchived:     p.IsArchived,
	}
}

// ToPurchaseResponses maps a list.
func ToPurchaseResponses(purchases []domain.Purchase) []PurchaseResponse {
	out := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		out[i] = ToPurchaseResponse(&purchases[i])
	}
	return out
}

// TreasuryResponse is the API view of a treasury voucher.
type TreasuryResponse struct {
	ID             string          `json:"id"`
	Date           time.Time       `json:"date"`
	Kind           string          `json:"kind"`
	Method         string          `json:"method"`
	PartyType      string          `json:"partyType"`
	PartyID        string          `json:"partyID,omitempty"`
	PartyName      string          `json:"partyName"`
	AccountCode    string          `json:"accountCode,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	JournalEntryID string          `json:"journalEntryID"`
	IsArchived     bool            `json:"isArchived"`
}

// ToTreasuryResponse maps a voucher.
func ToTreasuryResponse(t *domain.TreasuryTransaction) TreasuryResponse {
	return TreasuryResponse{
		ID:             t.ID,
		Date:           t.Date,
		Kind:           string(t.Kind),
		Method:         string(t.Method),
		PartyType:      string(t.PartyType),
		PartyID:        t.PartyID,
		PartyName:      t.PartyName,
		AccountCode:    t.AccountCode,
		Amount:         t.Amount,
		Description:    t.Description,
		JournalEntryID: t.JournalEntryID,
		IsArchived:     t.IsArchived,
	}
}

// ToTreasuryResponses maps a list.
func ToTreasuryResponses(vouchers []domain.TreasuryTransaction) []TreasuryResponse {
	out := make([]TreasuryResponse, len(vouchers))
	for i := range vouchers {
		out[i] = ToTreasuryResponse(&vouchers[i])
	}
	return out
}

// AdjustmentResponse is the API view of an inventory adjustment.
type AdjustmentResponse struct {
	ID             string                  `json:"id"`
	Date           time.Time               `json:"date"`
	Reason         string                  `json:"reason"`
	Lines          []domain.AdjustmentLine `json:"lines"`
	TotalIncrease  decimal.Decimal         `json:"totalIncrease"`
	TotalDecrease  decimal.Decimal         `json:"totalDecrease"`
	JournalEntryID string                  `json:"journalEntryID"`
	IsArchived     bool                    `json:"isArchived"`
}

// ToAdjustmentResponse maps an adjustment.
func ToAdjustmentResponse(a *domain.InventoryAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:             a.ID,
		Date:           a.Date,
		Reason:         a.Reason,
		Lines:          append([]domain.AdjustmentLine(nil), a.Lines...),
		TotalIncrease:  a.TotalIncrease,
		TotalDecrease:  a.TotalDecrease,
		JournalEntryID: a.JournalEntryID,
		IsArchived:     a.IsArchived,
	}
}

// ToAdjustmentResponses maps a list.
func ToAdjustmentResponses(adjustments []domain.InventoryAdjustment) []AdjustmentResponse {
	out := make([]AdjustmentResponse, len(adjustments))
	for i := range adjustments {
		out[i] = ToAdjustmentResponse(&adjustments[i])
	}
	return out
}

// QuoteResponse is the shared API view of price and purchase quotes. PartyID
// and PartyName carry the customer or supplier depending on the quote side;
// ResultID points at the document a converted quote produced.
type QuoteResponse struct {
	ID            string            `json:"id"`
	Date          time.Time         `json:"date"`
	PartyID       string            `json:"partyID,omitempty"`
	PartyName     string            `json:"partyName"`
	PaymentType   string            `json:"paymentType"`
	Lines         []domain.LineItem `json:"lines"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	TotalDiscount decimal.Decimal   `json:"totalDiscount"`
	GrandTotal    decimal.Decimal   `json:"grandTotal"`
	Status        string            `json:"status"`
	ResultID      string            `json:"resultID,omitempty"`
}

// ToPriceQuoteResponse maps a price quote.
func ToPriceQuoteResponse(q *domain.PriceQuote) QuoteResponse {
	return QuoteResponse{
		ID:            q.ID,
		Date:          q.Date,
		PartyID:       q.CustomerID,
		PartyName:     q.CustomerName,
		PaymentType:   string(q.PaymentType),
		Lines:         append([]domain.LineItem(nil), q.Lines...),
		Subtotal:      q.Subtotal,
		TotalDiscount: q.TotalDiscount,
		GrandTotal:    q.GrandTotal,
		Status:        string(q.Status),
		ResultID:      q.ResultSaleID,
	}
}

// ToPriceQuoteResponses maps a list.
func ToPriceQuoteResponses(quotes []domain.PriceQuote) []QuoteResponse {
	out := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		out[i] = ToPriceQuoteResponse(&quotes[i])
	}
	return out
}

// ToPurchaseQuoteResponse maps a purchase quote.
func ToPurchaseQuoteResponse(q *domain.PurchaseQuote) QuoteResponse {
	return QuoteResponse{
		ID:            q.ID,
		Date:          q.Date,
		PartyID:       q.SupplierID,
		PartyName:     q.SupplierName,
		PaymentType:   string(q.PaymentType),
		Lines:         append([]domain.LineItem(nil), q.Lines...),
		Subtotal:      q.Subtotal,
		TotalDiscount: q.TotalDiscount,
		GrandTotal:    q.GrandTotal,
		Status:        string(q.Status),
		ResultID:      q.ResultPurchaseID,
	}
}

// ToPurchaseQuoteResponses maps a list.
func ToPurchaseQuoteResponses(quotes []domain.PurchaseQuote) []QuoteResponse {
	out := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		out[i] = ToPurchaseQuoteResponse(&quotes[i])
	}
	return out
}
