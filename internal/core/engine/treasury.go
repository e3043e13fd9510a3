package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amrmohammed249/daftari/internal/apperrors"
	"github.com/amrmohammed249/daftari/internal/core/domain"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// createTreasuryOnState posts a receipt or payment voucher. The money account
// (cash or bank) takes one side; the counterparty account depends on the
// party kind. Party balances move with the voucher: a receipt from a customer
// settles what they owe, a payment to a supplier settles what we owe, and the
// refund directions mirror that.
func createTreasuryOnState(st *domain.State, id string, req dto.CreateTreasuryRequest,
	actor domain.Actor, now time.Time) (*domain.TreasuryTransaction, error) {

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	moneyCode := domain.CodeCash
	if req.Method == domain.MethodBank {
		moneyCode = domain.CodeBank
	}
	money, err := requireAccount(st, moneyCode)
	if err != nil {
		return nil, err
	}

	var counter *domain.AccountNode
	partyName := ""
	switch req.PartyType {
	case domain.PartyCustomer:
		c := st.CustomerByID(req.PartyID)
		if c == nil {
			return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, req.PartyID)
		}
		if c.IsArchived {
			return nil, fmt.Errorf("%w: customer %s is archived", apperrors.ErrValidation, c.Name)
		}
		partyName = c.Name
		counter, err = requireAccount(st, domain.CodeReceivables)
		if err != nil {
			return nil, err
		}
		if req.Kind == domain.TreasuryReceipt {
			c.Balance = c.Balance.Sub(req.Amount)
		} else {
			c.Balance = c.Balance.Add(req.Amount)
		}
	case domain.PartySupplier:
		s := st.SupplierByID(req.PartyID)
		if s == nil {
			return nil, fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, req.PartyID)
		}
		if s.IsArchived {
			return nil, fmt.Errorf("%w: supplier %s is archived", apperrors.ErrValidation, s.Name)
		}
		partyName = s.Name
		counter, err = requireAccount(st, domain.CodePayables)
		if err != nil {
			return nil, err
		}
		if req.Kind == domain.TreasuryPayment {
			s.Balance = s.Balance.Sub(req.Amount)
		} else {
			s.Balance = s.Balance.Add(req.Amount)
		}
	case domain.PartyAccount:
		if req.AccountCode == "" {
			return nil, fmt.Errorf("%w: account code is required for a direct account voucher", apperrors.ErrValidation)
		}
		counter = st.Accounts.FindByCode(req.AccountCode)
		if counter == nil {
			return nil, fmt.Errorf("%w: account with code %s", apperrors.ErrNotFound, req.AccountCode)
		}
		if counter.ID == money.ID {
			return nil, fmt.Errorf("%w: counterparty account must differ from the money account", apperrors.ErrValidation)
		}
		partyName = counter.Name
	default:
		return nil, fmt.Errorf("%w: unknown party type %s", apperrors.ErrValidation, req.PartyType)
	}

	var jl []domain.JournalLine
	if req.Kind == domain.TreasuryReceipt {
		jl = []domain.JournalLine{debitLine(money, req.Amount), creditLine(counter, req.Amount)}
	} else {
		jl = []domain.JournalLine{debitLine(counter, req.Amount), creditLine(money, req.Amount)}
	}

	description := req.Description
	if description == "" {
		verb := "Receipt from"
		if req.Kind == domain.TreasuryPayment {
			verb = "Payment to"
		}
		description = fmt.Sprintf("%s %s", verb, partyName)
	}

	entry, err := postEntry(st, req.Date, description, domain.SourceTreasury, id, jl, actor, now)
	if err != nil {
		return nil, err
	}

	return &domain.TreasuryTransaction{
		ID:             id,
		Date:           req.Date,
		Kind:           req.Kind,
		Method:         req.Method,
		PartyType:      req.PartyType,
		PartyID:        req.PartyID,
		PartyName:      partyName,
		AccountCode:    req.AccountCode,
		Amount:         req.Amount,
		Description:    description,
		JournalEntryID: entry.ID,
		AuditFields:    domain.NewAuditFields(actor, now),
	}, nil
}

// reverseTreasuryEffects undoes the party balance movement and archives the
// voucher's journal entry.
func reverseTreasuryEffects(st *domain.State, t *domain.TreasuryTransaction, actor domain.Actor, now time.Time) {
	switch t.PartyType {
	case domain.PartyCustomer:
		if c := st.CustomerByID(t.PartyID); c != nil {
			if t.Kind == domain.TreasuryReceipt {
				c.Balance = c.Balance.Add(t.Amount)
			} else {
				c.Balance = c.Balance.Sub(t.Amount)
			}
		}
	case domain.PartySupplier:
		if s := st.SupplierByID(t.PartyID); s != nil {
			if t.Kind == domain.TreasuryPayment {
				s.Balance = s.Balance.Add(t.Amount)
			} else {
				s.Balance = s.Balance.Sub(t.Amount)
			}
		}
	}
	if entry := st.JournalByID(t.JournalEntryID); entry != nil {
		archiveEntry(st, entry, actor, now)
	}
}

// CreateTreasury posts a receipt or payment voucher.
func (e *Engine) CreateTreasury(ctx context.Context, actor domain.Actor, req dto.CreateTreasuryRequest) (*domain.TreasuryTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var created domain.TreasuryTransaction
	err := e.mutate(func(st *domain.State) error {
		id := st.Sequences.NextID(domain.SeqTreasury)
		t, err := createTreasuryOnState(st, id, req, actor, e.now())
		if err != nil {
			return err
		}
		st.Treasury = append(st.Treasury, *t)
		created = *t
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "treasury.create", "created %s voucher %s for %s, amount %s",
		created.Kind, created.ID, created.PartyName, created.Amount.String())
	logger.Info("Treasury voucher created",
		slog.String("voucher_id", created.ID),
		slog.String("kind", string(created.Kind)))
	return &created, nil
}

// UpdateTreasury replaces a voucher: the recorded movement is reversed and
// the request re-posted under the same id.
func (e *Engine) UpdateTreasury(ctx context.Context, actor domain.Actor, voucherID string, req dto.CreateTreasuryRequest) (*domain.TreasuryTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var updated domain.TreasuryTransaction
	err := e.mutate(func(st *domain.State) error {
		existing := st.TreasuryByID(voucherID)
		if existing == nil {
			return fmt.Errorf("%w: treasury voucher %s", apperrors.ErrNotFound, voucherID)
		}
		if existing.IsArchived {
			return fmt.Errorf("%w: treasury voucher %s is archived", apperrors.ErrConflict, voucherID)
		}

		reverseTreasuryEffects(st, existing, actor, e.now())

		t, err := createTreasuryOnState(st, voucherID, req, actor, e.now())
		if err != nil {
			return err
		}
		t.CreatedAt = existing.CreatedAt
		t.CreatedBy = existing.CreatedBy
		t.Touch(actor, e.now())
		*existing = *t
		updated = *t
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "treasury.update", "updated voucher %s, amount %s",
		updated.ID, updated.Amount.String())
	logger.Info("Treasury voucher updated", slog.String("voucher_id", updated.ID))
	return &updated, nil
}

// ArchiveTreasury cancels a voucher.
func (e *Engine) ArchiveTreasury(ctx context.Context, actor domain.Actor, voucherID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := e.mutate(func(st *domain.State) error {
		t := st.TreasuryByID(voucherID)
		if t == nil {
			return fmt.Errorf("%w: treasury voucher %s", apperrors.ErrNotFound, voucherID)
		}
		if t.IsArchived {
			return fmt.Errorf("%w: treasury voucher %s is already archived", apperrors.ErrConflict, voucherID)
		}
		reverseTreasuryEffects(st, t, actor, e.now())
		t.IsArchived = true
		t.Touch(actor, e.now())
		return nil
	})
	if err != nil {
		return err
	}

	e.recordAudit(actor, "treasury.archive", "archived treasury voucher %s", voucherID)
	logger.Info("Treasury voucher archived", slog.String("voucher_id", voucherID))
	return nil
}
