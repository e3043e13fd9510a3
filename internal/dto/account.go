package dto

import (
	"github.com/shopspring/decimal"

	"github.com/amrmohammed249/daftari/internal/core/domain"
)

// CreateAccountRequest adds an account node to the chart. ParentCode empty
// creates a root account.
type CreateAccountRequest struct {
	Code       string `json:"code" binding:"required,notblank"`
	Name       string `json:"name" binding:"required,notblank"`
	ParentCode string `json:"parentCode"`
}

// AccountResponse is a flat account view.
type AccountResponse struct {
	ID      string          `json:"id"`
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// AccountTreeNode is the nested tree view of the chart.
type AccountTreeNode struct {
	ID       string            `json:"id"`
	Code     string            `json:"code"`
	Name     string            `json:"name"`
	Balance  decimal.Decimal   `json:"balance"`
	Children []AccountTreeNode `json:"children,omitempty"`
}

// ToAccountResponse maps a node.
func ToAccountResponse(n *domain.AccountNode) AccountResponse {
	return AccountResponse{ID: n.ID, Code: n.Code, Name: n.Name, Balance: n.Balance}
}

// ToAccountTree builds the nested view from the arena chart.
func ToAccountTree(c *domain.ChartOfAccounts) []AccountTreeNode {
	out := make([]AccountTreeNode, 0, len(c.RootIDs))
	for _, id := range c.RootIDs {
		out = append(out, toTreeNode(c, id))
	}
	return out
}

func toTreeNode(c *domain.ChartOfAccounts, id string) AccountTreeNode {
	n := c.FindByID(id)
	node := AccountTreeNode{ID: n.ID, Code: n.Code, Name: n.Name, Balance: n.Balance}
	for _, childID := range n.ChildIDs {
		node.Children = append(node.Children, toTreeNode(c, childID))
	}
	return node
}

// TrialBalanceRow is one leaf account with its balance split into the
// conventional debit/credit columns.
type TrialBalanceRow struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse lists leaf balances; TotalDebit always equals
// TotalCredit on a consistent ledger.
type TrialBalanceResponse struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}
