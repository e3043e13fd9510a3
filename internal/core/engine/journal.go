package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amrmohammed249/daftari/internal/apperrors"
	"github.com/amrmohammed249/daftari/internal/core/domain"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// postEntry assigns an id from the journal sequence, applies every line's
// signed delta (debit - credit) to the account tree, and appends the entry.
// The caller is responsible for constructing balanced lines; a line against
// an account that vanished from the tree aborts with an internal error
// before the ledger is touched.
func postEntry(st *domain.State, date time.Time, description string, source domain.EntrySource,
	sourceID string, lines []domain.JournalLine, actor domain.Actor, now time.Time) (*domain.JournalEntry, error) {

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: journal entry must have at least one line", apperrors.ErrValidation)
	}
	for _, l := range lines {
		if st.Accounts.FindByID(l.AccountID) == nil {
			return nil, fmt.Errorf("%w: journal line targets unknown account %s", apperrors.ErrInternal, l.AccountID)
		}
	}
	for _, l := range lines {
		st.Accounts.ApplyDelta(l.AccountID, l.Debit.Sub(l.Credit))
	}

	entry := domain.JournalEntry{
		ID:          st.Sequences.NextID(domain.SeqJournal),
		Date:        date,
		Description: description,
		Lines:       lines,
		Status:      domain.Posted,
		Source:      source,
		SourceID:    sourceID,
		AuditFields: domain.NewAuditFields(actor, now),
	}
	st.Journal = append(st.Journal, entry)
	return &st.Journal[len(st.Journal)-1], nil
}

// archiveEntry logically reverses an entry: the inverse delta set
// (credit - debit per line) is applied to the account tree, the archived
// flag is set and the description is prefixed to mark the cancellation.
// No-op if the entry is already archived.
func archiveEntry(st *domain.State, entry *domain.JournalEntry, actor domain.Actor, now time.Time) {
	if entry.IsArchived {
		return
	}
	for _, l := range entry.Lines {
		st.Accounts.ApplyDelta(l.AccountID, l.Credit.Sub(l.Debit))
	}
	entry.IsArchived = true
	entry.Description = domain.CancelledPrefix + entry.Description
	entry.Touch(actor, now)
}

// unarchiveEntry re-applies the original deltas and strips the cancellation
// prefix. No-op if the entry is not archived.
func unarchiveEntry(st *domain.State, entry *domain.JournalEntry, actor domain.Actor, now time.Time) {
	if !entry.IsArchived {
		return
	}
	for _, l := range entry.Lines {
		st.Accounts.ApplyDelta(l.AccountID, l.Debit.Sub(l.Credit))
	}
	entry.IsArchived = false
	entry.Description = strings.TrimPrefix(entry.Description, domain.CancelledPrefix)
	entry.Touch(actor, now)
}

// CreateManualJournal posts a manual journal voucher. Unlike the document
// flows, the caller supplies raw lines, so the engine enforces the
// double-entry rules here: at least two lines, at least two distinct
// accounts, exactly one positive side per line, and equal totals.
func (e *Engine) CreateManualJournal(ctx context.Context, actor domain.Actor, req dto.CreateManualJournalRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var created domain.JournalEntry
	err := e.mutate(func(st *domain.State) error {
		if len(req.Lines) < 2 {
			return fmt.Errorf("%w: journal must have at least two lines", apperrors.ErrValidation)
		}
		if req.Description == "" {
			return fmt.Errorf("%w: journal description is required", apperrors.ErrValidation)
		}

		accounts := make(map[string]bool, len(req.Lines))
		lines := make([]domain.JournalLine, 0, len(req.Lines))
		debits, credits := decimal.Zero, decimal.Zero
		for _, l := range req.Lines {
			if l.Debit.IsNegative() || l.Credit.IsNegative() {
				return fmt.Errorf("%w: debit and credit must not be negative", apperrors.ErrValidation)
			}
			if l.Debit.IsPositive() == l.Credit.IsPositive() {
				return fmt.Errorf("%w: each line must carry exactly one of debit or credit", apperrors.ErrValidation)
			}
			acc := st.Accounts.FindByCode(l.AccountCode)
			if acc == nil {
				return fmt.Errorf("%w: account with code %s", apperrors.ErrNotFound, l.AccountCode)
			}
			accounts[acc.ID] = true
			debits = debits.Add(l.Debit)
			credits = credits.Add(l.Credit)
			lines = append(lines, domain.JournalLine{
				AccountID:   acc.ID,
				AccountName: acc.Name,
				Debit:       l.Debit,
				Credit:      l.Credit,
			})
		}
		if len(accounts) < 2 {
			return fmt.Errorf("%w: journal must affect at least two different accounts", apperrors.ErrValidation)
		}
		if !debits.Equal(credits) {
			return fmt.Errorf("%w: journal does not balance, debits %s vs credits %s",
				apperrors.ErrValidation, debits.String(), credits.String())
		}

		entry, err := postEntry(st, req.Date, req.Description, domain.SourceManual, "", lines, actor, e.now())
		if err != nil {
			return err
		}
		created = entry.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "journal.create", "posted manual journal %s (%s)", created.ID, created.Description)
	logger.Info("Manual journal posted", slog.String("journal_id", created.ID))
	return &created, nil
}

// ArchiveManualJournal archives a manual voucher, reversing its effect on
// the account tree. Entries produced by documents can only be archived
// through their document, so balances never drift from stock and parties.
func (e *Engine) ArchiveManualJournal(ctx context.Context, actor domain.Actor, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := e.mutate(func(st *domain.State) error {
		entry := st.JournalByID(entryID)
		if entry == nil {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		if entry.Source != domain.SourceManual {
			return fmt.Errorf("%w: entry %s belongs to document %s, archive the document instead",
				apperrors.ErrConflict, entryID, entry.SourceID)
		}
		if entry.IsArchived {
			return fmt.Errorf("%w: journal entry %s is already archived", apperrors.ErrConflict, entryID)
		}
		archiveEntry(st, entry, actor, e.now())
		return nil
	})
	if err != nil {
		return err
	}

	e.recordAudit(actor, "journal.archive", "archived manual journal %s", entryID)
	logger.Info("Manual journal archived", slog.String("journal_id", entryID))
	return nil
}

// UnarchiveManualJournal restores an archived manual voucher.
func (e *Engine) UnarchiveManualJournal(ctx context.Context, actor domain.Actor, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := e.mutate(func(st *domain.State) error {
		entry := st.JournalByID(entryID)
		if entry == nil {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		if entry.Source != domain.SourceManual {
			return fmt.Errorf("%w: entry %s belongs to a document", apperrors.ErrConflict, entryID)
		}
		if !entry.IsArchived {
			return fmt.Errorf("%w: journal entry %s is not archived", apperrors.ErrConflict, entryID)
		}
		unarchiveEntry(st, entry, actor, e.now())
		return nil
	})
	if err != nil {
		return err
	}

	e.recordAudit(actor, "journal.unarchive", "restored manual journal %s", entryID)
	logger.Info("Manual journal restored", slog.String("journal_id", entryID))
	return nil
}
