package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AccountNode is one account in the hierarchical chart of accounts. Balance
// is eagerly aggregated: a node's balance always equals the sum of every
// posting delta applied to itself or any descendant.
type AccountNode struct {
	ID       string          `json:"id"`
	Code     string          `json:"code"` // unique, sortable
	Name     string          `json:"name"`
	Balance  decimal.Decimal `json:"balance"`
	ChildIDs []string        `json:"childIDs"` // ordered by child code
}

// ChartOfAccounts is an arena-style account store: nodes live in a flat map
// and the tree structure is carried by ChildIDs plus a child→parent index.
// Documents reference accounts by code string, never by pointer, so the
// whole structure serializes cleanly.
type ChartOfAccounts struct {
	Nodes    map[string]*AccountNode `json:"nodes"`
	ParentOf map[string]string       `json:"parentOf"` // child id -> parent id; absent for roots
	RootIDs  []string                `json:"rootIDs"`  // ordered by root code
}

// NewChartOfAccounts returns an empty chart.
func NewChartOfAccounts() ChartOfAccounts {
	return ChartOfAccounts{
		Nodes:    make(map[string]*AccountNode),
		ParentOf: make(map[string]string),
	}
}

// FindByID returns the node with the given id, or nil.
func (c *ChartOfAccounts) FindByID(id string) *AccountNode {
	return c.Nodes[id]
}

// FindByCode searches the tree depth-first, in sibling code order, for the
// node with the given code. Returns nil if absent.
func (c *ChartOfAccounts) FindByCode(code string) *AccountNode {
	for _, rootID := range c.RootIDs {
		if n := c.findByCode(rootID, code); n != nil {
			return n
		}
	}
	return nil
}

func (c *ChartOfAccounts) findByCode(id, code string) *AccountNode {
	node := c.Nodes[id]
	if node == nil {
		return nil
	}
	if node.Code == code {
		return node
	}
	for _, childID := range node.ChildIDs {
		if n := c.findByCode(childID, code); n != nil {
			return n
		}
	}
	return nil
}

// ApplyDelta adds amount to the balance of the target node and every ancestor
// on its path to the root. It returns the change actually applied: the amount
// itself, or zero when the account does not exist (callers treat a zero
// result for a presumed-existing account as a configuration error).
func (c *ChartOfAccounts) ApplyDelta(accountID string, amount decimal.Decimal) decimal.Decimal {
	if _, ok := c.Nodes[accountID]; !ok {
		return decimal.Zero
	}
	for id := accountID; ; {
		c.Nodes[id].Balance = c.Nodes[id].Balance.Add(amount)
		parent, ok := c.ParentOf[id]
		if !ok {
			break
		}
		id = parent
	}
	return amount
}

// Insert adds a node under parentID (empty parentID makes it a root),
// keeping siblings ordered by code. The node's code must be unique.
func (c *ChartOfAccounts) Insert(node *AccountNode, parentID string) {
	c.Nodes[node.ID] = node
	if parentID == "" {
		c.RootIDs = insertByCode(c, c.RootIDs, node.ID)
		return
	}
	c.ParentOf[node.ID] = parentID
	parent := c.Nodes[parentID]
	parent.ChildIDs = insertByCode(c, parent.ChildIDs, node.ID)
}

func insertByCode(c *ChartOfAccounts, ids []string, newID string) []string {
	ids = append(ids, newID)
	sort.Slice(ids, func(i, j int) bool {
		return c.Nodes[ids[i]].Code < c.Nodes[ids[j]].Code
	})
	return ids
}

// Clone deep-copies the chart.
func (c *ChartOfAccounts) Clone() ChartOfAccounts {
	out := ChartOfAccounts{
		Nodes:    make(map[string]*AccountNode, len(c.Nodes)),
		ParentOf: make(map[string]string, len(c.ParentOf)),
		RootIDs:  append([]string(nil), c.RootIDs...),
	}
	for id, n := range c.Nodes {
		cp := *n
		cp.ChildIDs = append([]string(nil), n.ChildIDs...)
		out.Nodes[id] = &cp
	}
	for child, parent := range c.ParentOf {
		out.ParentOf[child] = parent
	}
	return out
}
