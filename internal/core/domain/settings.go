package domain

import "github.com/shopspring/decimal"

// Control account codes. Every posting document of a given kind posts to
// these fixed, well-known accounts; they are configuration constants, not
// discovered dynamically. A missing control account aborts the operation.
const (
	CodeCash             = "1101"
	CodeBank             = "1102"
	CodeReceivables      = "1103"
	CodeInventory        = "1104"
	CodePayables         = "2101"
	CodeSalesRevenue     = "4101"
	CodeSalesDiscount    = "4102"
	CodePurchaseDiscount = "4103"
	CodeCOGS             = "4204"
	CodeInventoryAdjust  = "4205"
)

// Default root accounts of the chart.
const (
	CodeRootAssets      = "1000"
	CodeRootLiabilities = "2000"
	CodeRootEquity      = "3000"
	CodeRootIncome      = "4000"
)

// LowStockThreshold is the base-unit stock level below which a low-stock
// notification fires when an operation crosses it.
var LowStockThreshold = decimal.NewFromInt(10)

// Settings are the engine's runtime switches.
type Settings struct {
	// AllowNegativeStock relaxes the stock feasibility check on sales,
	// negative adjustments and purchase archival.
	AllowNegativeStock bool `json:"allowNegativeStock"`
}
