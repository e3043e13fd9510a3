package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChart(t *testing.T) ChartOfAccounts {
	t.Helper()
	c := NewChartOfAccounts()
	c.Insert(&AccountNode{ID: "a-root", Code: "1000", Name: "Assets"}, "")
	c.Insert(&AccountNode{ID: "a-curr", Code: "1100", Name: "Current Assets"}, "a-root")
	c.Insert(&AccountNode{ID: "a-cash", Code: "1101", Name: "Cash"}, "a-curr")
	c.Insert(&AccountNode{ID: "a-recv", Code: "1103", Name: "Receivables"}, "a-curr")
	return c
}

func TestChartFindByCode(t *testing.T) {
	c := buildChart(t)

	n := c.FindByCode("1103")
	require.NotNil(t, n)
	assert.Equal(t, "Receivables", n.Name)

	assert.Nil(t, c.FindByCode("9999"))
}

func TestChartApplyDeltaPropagates(t *testing.T) {
	c := buildChart(t)

	applied := c.ApplyDelta("a-cash", decimal.NewFromInt(150))
	assert.True(t, applied.Equal(decimal.NewFromInt(150)))

	// Every ancestor on the path aggregates the delta.
	assert.True(t, c.FindByCode("1101").Balance.Equal(decimal.NewFromInt(150)))
	assert.True(t, c.FindByCode("1100").Balance.Equal(decimal.NewFromInt(150)))
	assert.True(t, c.FindByCode("1000").Balance.Equal(decimal.NewFromInt(150)))
	assert.True(t, c.FindByCode("1103").Balance.IsZero())
}

func TestChartApplyDeltaUnknownAccountIsNoop(t *testing.T) {
	c := buildChart(t)

	applied := c.ApplyDelta("missing", decimal.NewFromInt(50))
	assert.True(t, applied.IsZero())
	assert.True(t, c.FindByCode("1000").Balance.IsZero())
}

func TestChartInsertKeepsSiblingsSortedByCode(t *testing.T) {
	c := buildChart(t)
	c.Insert(&AccountNode{ID: "a-bank", Code: "1102", Name: "Bank"}, "a-curr")

	parent := c.FindByID("a-curr")
	require.Len(t, parent.ChildIDs, 3)
	codes := make([]string, 0, 3)
	for _, id := range parent.ChildIDs {
		codes = append(codes, c.FindByID(id).Code)
	}
	assert.Equal(t, []string{"1101", "1102", "1103"}, codes)
}

func TestSequencesNextIsMonotonic(t *testing.T) {
	s := NewSequences()

	assert.Equal(t, "INV-000001", s.NextID(SeqSale))
	assert.Equal(t, "INV-000002", s.NextID(SeqSale))
	assert.Equal(t, "JV-000001", s.NextID(SeqJournal))
	assert.Equal(t, "000000000001", s.NextID(SeqBarcode))
}

func TestStateCloneIsDeep(t *testing.T) {
	st := &State{
		Accounts: buildChart(t),
		Items: []InventoryItem{{
			ID:    "ITM-000001",
			Name:  "Widget",
			Stock: decimal.NewFromInt(50),
			Units: []PackingUnit{{ID: "u1", Name: "box", Factor: decimal.NewFromInt(12)}},
		}},
		Journal: []JournalEntry{{
			ID:    "JV-000001",
			Date:  time.Now(),
			Lines: []JournalLine{{AccountID: "a-cash", Debit: decimal.NewFromInt(10)}},
		}},
		Sequences: NewSequences(),
	}

	cl := st.Clone()
	cl.Accounts.ApplyDelta("a-cash", decimal.NewFromInt(99))
	cl.Items[0].Stock = decimal.NewFromInt(1)
	cl.Items[0].Units[0].Name = "carton"
	cl.Journal[0].Lines[0].Debit = decimal.NewFromInt(77)
	cl.Sequences.Next(SeqSale)

	assert.True(t, st.Accounts.FindByCode("1101").Balance.IsZero())
	assert.True(t, st.Items[0].Stock.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "box", st.Items[0].Units[0].Name)
	assert.True(t, st.Journal[0].Lines[0].Debit.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, int64(1), st.Sequences[SeqSale])
}

func TestItemUnitFactor(t *testing.T) {
	item := InventoryItem{
		BaseUnit: "piece",
		Units:    []PackingUnit{{ID: "u-box", Name: "box", Factor: decimal.NewFromInt(6)}},
	}

	f, name, ok := item.UnitFactor("")
	require.True(t, ok)
	assert.Equal(t, "piece", name)
	assert.True(t, f.Equal(decimal.NewFromInt(1)))

	f, name, ok = item.UnitFactor("u-box")
	require.True(t, ok)
	assert.Equal(t, "box", name)
	assert.True(t, f.Equal(decimal.NewFromInt(6)))

	_, _, ok = item.UnitFactor("u-missing")
	assert.False(t, ok)
}
