package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted JournalStatus = "POSTED"
)

// EntrySource names the document type that produced a journal entry.
type EntrySource string

const (
	SourceManual     EntrySource = "MANUAL"
	SourceSale       EntrySource = "SALE"
	SourcePurchase   EntrySource = "PURCHASE"
	SourceTreasury   EntrySource = "TREASURY"
	SourceAdjustment EntrySource = "ADJUSTMENT"
)

// CancelledPrefix marks the description of an archived entry.
const CancelledPrefix = "CANCELLED: "

// JournalLine is a single debit or credit against one account. Lines are
// never mutated after the entry is posted; reversal works by negating the
// recorded values, which is exact only as long as that holds.
type JournalLine struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`  // >= 0
	Credit      decimal.Decimal `json:"credit"` // >= 0
}

// JournalEntry is one balanced financial event. Entries are archived, never
// deleted; archiving reverses the entry's effect on the account tree but the
// entry stays visible for audit.
type JournalEntry struct {
	ID          string        `json:"id"`
	Date        time.Time     `json:"date"`
	Description string        `json:"description"`
	Lines       []JournalLine `json:"lines"`
	Status      JournalStatus `json:"status"`
	Source      EntrySource   `json:"source"`
	SourceID    string        `json:"sourceID"` // document id for non-manual entries
	IsArchived  bool          `json:"isArchived"`
	AuditFields
}

// TotalDebit sums the debit side of the entry.
func (e *JournalEntry) TotalDebit() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range e.Lines {
		sum = sum.Add(l.Debit)
	}
	return sum
}

// TotalCredit sums the credit side of the entry.
func (e *JournalEntry) TotalCredit() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range e.Lines {
		sum = sum.Add(l.Credit)
	}
	return sum
}

// Clone deep-copies the entry.
func (e JournalEntry) Clone() JournalEntry {
	e.Lines = append([]JournalLine(nil), e.Lines...)
	return e
}
