package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amrmohammed249/daftari/internal/core/domain"
)

// ManualJournalLine is one debit or credit of a manual voucher, addressed by
// account code. Exactly one of Debit/Credit must be positive.
type ManualJournalLine struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateManualJournalRequest posts a manual journal voucher. The engine
// enforces the double-entry balance.
type CreateManualJournalRequest struct {
	Date        time.Time           `json:"date" binding:"required"`
	Description string              `json:"description" binding:"required"`
	Lines       []ManualJournalLine `json:"lines" binding:"required,dive"`
}

// JournalEntryResponse is the API view of a journal entry.
type JournalEntryResponse struct {
	ID          string               `json:"id"`
	Date        time.Time            `json:"date"`
	Description string               `json:"description"`
	Lines       []domain.JournalLine `json:"lines"`
	Status      string               `json:"status"`
	Source      string               `json:"source"`
	SourceID    string               `json:"sourceID,omitempty"`
	IsArchived  bool                 `json:"isArchived"`
	TotalDebit  decimal.Decimal      `json:"totalDebit"`
	TotalCredit decimal.Decimal      `json:"totalCredit"`
}

// ToJournalEntryResponse maps an entry.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		ID:          e.ID,
		Date:        e.Date,
		Description: e.Description,
		Lines:       append([]domain.JournalLine(nil), e.Lines...),
		Status:      string(e.Status),
		Source:      string(e.Source),
		SourceID:    e.SourceID,
		IsArchived:  e.IsArchived,
		TotalDebit:  e.TotalDebit(),
		TotalCredit: e.TotalCredit(),
	}
}

// ToJournalEntryResponses maps a list.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToJournalEntryResponse(&entries[i])
	}
	return out
}
