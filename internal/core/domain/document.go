package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType selects the settlement side of a sale or purchase.
type PaymentType string

const (
	PaymentCash   PaymentType = "CASH"
	PaymentCredit PaymentType = "CREDIT"
)

// LineItem is the shared line record of every posting document. Discount is
// an absolute amount, not a percentage. BaseQuantity is recorded at posting
// time so reversal restores stock exactly even if the item's packing units
// change later.
type LineItem struct {
	ItemID       string          `json:"itemID"`
	ItemName     string          `json:"itemName"`
	UnitID       string          `json:"unitID"` // empty = base unit
	UnitName     string          `json:"unitName"`
	Quantity     decimal.Decimal `json:"quantity"`
	BaseQuantity decimal.Decimal `json:"baseQuantity"` // quantity * unit factor
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Discount     decimal.Decimal `json:"discount"`
}

// Sale is a sales invoice. It references the journal entry it produced; an
// edit archives that entry, posts a new one, and re-points JournalEntryID.
type Sale struct {
	ID             string          `json:"id"`
	Date           time.Time       `json:"date"`
	CustomerID     string          `json:"customerID"` // empty for cash customer
	CustomerName   string          `json:"customerName"`
	PaymentType    PaymentType     `json:"paymentType"`
	Lines          []LineItem      `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TotalDiscount  decimal.Decimal `json:"totalDiscount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
	CostOfGoods    decimal.Decimal `json:"costOfGoods"`
	JournalEntryID string          `json:"journalEntryID"`
	IsArchived     bool            `json:"isArchived"`
	AuditFields
}

// Purchase is a purchase bill, the mirror of Sale.
type Purchase struct {
	ID             string          `json:"id"`
	Date           time.Time       `json:"date"`
	SupplierID     string          `json:"supplierID"`
	SupplierName   string          `json:"supplierName"`
	PaymentType    PaymentType     `json:"paymentType"`
	Lines          []LineItem      `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TotalDiscount  decimal.Decimal `json:"totalDiscount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
	JournalEntryID string          `json:"journalEntryID"`
	IsArchived     bool            `json:"isArchived"`
	AuditFields
}

// TreasuryKind distinguishes receipt and payment vouchers.
type TreasuryKind string

const (
	TreasuryReceipt TreasuryKind = "RECEIPT"
	TreasuryPayment TreasuryKind = "PAYMENT"
)

// TreasuryMethod selects the money account the voucher moves through.
type TreasuryMethod string

const (
	MethodCash TreasuryMethod = "CASH"
	MethodBank TreasuryMethod = "BANK"
)

// TreasuryParty names the counterparty kind of a treasury voucher.
type TreasuryParty string

const (
	PartyCustomer TreasuryParty = "CUSTOMER"
	PartySupplier TreasuryParty = "SUPPLIER"
	PartyAccount  TreasuryParty = "ACCOUNT" // direct ledger account by code
)

// TreasuryTransaction is a cash/bank receipt or payment voucher.
type TreasuryTransaction struct {
	ID             string          `json:"id"`
	Date           time.Time       `json:"date"`
	Kind           TreasuryKind    `json:"kind"`
	Method         TreasuryMethod  `json:"method"`
	PartyType      TreasuryParty   `json:"partyType"`
	PartyID        string          `json:"partyID"`
	PartyName      string          `json:"partyName"`
	AccountCode    string          `json:"accountCode"` // for PartyAccount
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	JournalEntryID string          `json:"journalEntryID"`
	IsArchived     bool            `json:"isArchived"`
	AuditFields
}

// AdjustmentLine moves one item's stock by a signed quantity. BaseQuantity
// carries the same sign, converted through the unit factor at posting time.
type AdjustmentLine struct {
	ItemID       string          `json:"itemID"`
	ItemName     string          `json:"itemName"`
	UnitID       string          `json:"unitID"`
	UnitName     string          `json:"unitName"`
	Quantity     decimal.Decimal `json:"quantity"` // signed, in the named unit
	BaseQuantity decimal.Decimal `json:"baseQuantity"`
	Value        decimal.Decimal `json:"value"` // absolute, at posting-time purchase price
}

// InventoryAdjustment corrects stock levels outside of sales and purchases,
// valued at each item's current purchase price.
type InventoryAdjustment struct {
	ID             string           `json:"id"`
	Date           time.Time        `json:"date"`
	Reason         string           `json:"reason"`
	Lines          []AdjustmentLine `json:"lines"`
	TotalIncrease  decimal.Decimal  `json:"totalIncrease"` // value of added stock
	TotalDecrease  decimal.Decimal  `json:"totalDecrease"` // value of removed stock
	JournalEntryID string           `json:"journalEntryID"`
	IsArchived     bool             `json:"isArchived"`
	AuditFields
}

// QuoteStatus is the tri-state lifecycle of a quote. Converted and cancelled
// are terminal.
type QuoteStatus string

const (
	QuoteNew       QuoteStatus = "NEW"
	QuoteConverted QuoteStatus = "CONVERTED"
	QuoteCancelled QuoteStatus = "CANCELLED"
)

// PriceQuote is a non-posting sales draft. Creating it only assigns an id;
// conversion runs the full sale creation flow with the stored lines.
type PriceQuote struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	CustomerID    string          `json:"customerID"`
	CustomerName  string          `json:"customerName"`
	PaymentType   PaymentType     `json:"paymentType"`
	Lines         []LineItem      `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	Status        QuoteStatus     `json:"status"`
	ResultSaleID  string          `json:"resultSaleID"`
	AuditFields
}

// PurchaseQuote is the purchase-side draft.
type PurchaseQuote struct {
	ID               string          `json:"id"`
	Date             time.Time       `json:"date"`
	SupplierID       string          `json:"supplierID"`
	SupplierName     string          `json:"supplierName"`
	PaymentType      PaymentType     `json:"paymentType"`
	Lines            []LineItem      `json:"lines"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	TotalDiscount    decimal.Decimal `json:"totalDiscount"`
	GrandTotal       decimal.Decimal `json:"grandTotal"`
	Status           QuoteStatus     `json:"status"`
	ResultPurchaseID string          `json:"resultPurchaseID"`
	AuditFields
}
