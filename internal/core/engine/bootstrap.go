package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amrmohammed249/daftari/internal/apperrors"
	"github.com/amrmohammed249/daftari/internal/core/domain"
)

// requiredAccounts are the control accounts every dataset must contain,
// keyed by code, alongside the root each belongs under.
var requiredAccounts = []struct {
	Code string
	Name string
	Root string
}{
	{domain.CodeCash, "Cash", domain.CodeRootAssets},
	{domain.CodeBank, "Bank", domain.CodeRootAssets},
	{domain.CodeReceivables, "Accounts Receivable", domain.CodeRootAssets},
	{domain.CodeInventory, "Inventory", domain.CodeRootAssets},
	{domain.CodePayables, "Accounts Payable", domain.CodeRootLiabilities},
	{domain.CodeSalesRevenue, "Sales Revenue", domain.CodeRootIncome},
	{domain.CodeSalesDiscount, "Sales Discount", domain.CodeRootIncome},
	{domain.CodePurchaseDiscount, "Purchase Discount", domain.CodeRootIncome},
	{domain.CodeCOGS, "Cost of Goods Sold", domain.CodeRootIncome},
	{domain.CodeInventoryAdjust, "Inventory Adjustment", domain.CodeRootIncome},
}

var rootAccounts = []struct {
	Code string
	Name string
}{
	{domain.CodeRootAssets, "Assets"},
	{domain.CodeRootLiabilities, "Liabilities"},
	{domain.CodeRootEquity, "Equity"},
	{domain.CodeRootIncome, "Income & Expenses"},
}

// NewDefaultState builds a fresh dataset with the default chart of accounts.
func NewDefaultState() *domain.State {
	st := &domain.State{
		Accounts:  domain.NewChartOfAccounts(),
		Sequences: domain.NewSequences(),
	}
	EnsureControlAccounts(st)
	return st
}

// EnsureControlAccounts inserts any missing root or control account with a
// zero balance at its deterministic tree position (under the root matching
// its leading digit, sorted by code). This is the additive snapshot
// migration of the load path: accounts are never removed or renamed.
func EnsureControlAccounts(st *domain.State) {
	for _, root := range rootAccounts {
		if st.Accounts.FindByCode(root.Code) == nil {
			st.Accounts.Insert(&domain.AccountNode{
				ID:   uuid.NewString(),
				Code: root.Code,
				Name: root.Name,
			}, "")
		}
	}
	for _, acc := range requiredAccounts {
		if st.Accounts.FindByCode(acc.Code) != nil {
			continue
		}
		parent := st.Accounts.FindByCode(acc.Root)
		st.Accounts.Insert(&domain.AccountNode{
			ID:   uuid.NewString(),
			Code: acc.Code,
			Name: acc.Name,
		}, parent.ID)
	}
}

// requireAccount resolves a control account by its fixed code. Absence is a
// configuration error: the operation must abort without posting anything.
func requireAccount(st *domain.State, code string) (*domain.AccountNode, error) {
	if n := st.Accounts.FindByCode(code); n != nil {
		return n, nil
	}
	return nil, fmt.Errorf("%w: control account %s is not defined in the chart of accounts",
		apperrors.ErrMissingConfiguration, code)
}

func debitLine(acc *domain.AccountNode, amount decimal.Decimal) domain.JournalLine {
	return domain.JournalLine{AccountID: acc.ID, AccountName: acc.Name, Debit: amount, Credit: decimal.Zero}
}

func creditLine(acc *domain.AccountNode, amount decimal.Decimal) domain.JournalLine {
	return domain.JournalLine{AccountID: acc.ID, AccountName: acc.Name, Debit: decimal.Zero, Credit: amount}
}
