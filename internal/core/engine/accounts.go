package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amrmohammed249/daftari/internal/apperrors"
	"github.com/amrmohammed249/daftari/internal/core/domain"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// CreateAccount adds an account to the chart. Codes are unique across the
// whole tree; an empty parent code creates a root. Accounts are never
// deleted, only added, so historical journal lines always resolve.
func (e *Engine) CreateAccount(ctx context.Context, actor domain.Actor, req dto.CreateAccountRequest) (*domain.AccountNode, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var created domain.AccountNode
	err := e.mutate(func(st *domain.State) error {
		if st.Accounts.FindByCode(req.Code) != nil {
			return fmt.Errorf("%w: account with code %s", apperrors.ErrDuplicate, req.Code)
		}
		parentID := ""
		if req.ParentCode != "" {
			parent := st.Accounts.FindByCode(req.ParentCode)
			if parent == nil {
				return fmt.Errorf("%w: parent account with code %s", apperrors.ErrNotFound, req.ParentCode)
			}
			parentID = parent.ID
		}
		node := &domain.AccountNode{
			ID:   st.Sequences.NextID(domain.SeqAccount),
			Code: req.Code,
			Name: req.Name,
		}
		st.Accounts.Insert(node, parentID)
		created = *node
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "account.create", "created account %s %s", created.Code, created.Name)
	logger.Info("Account created", slog.String("code", created.Code))
	return &created, nil
}

// TrialBalance reports every leaf account's balance in the conventional
// debit/credit columns. Parent aggregates are skipped so the two columns sum
// to the same figure on a consistent ledger.
func (e *Engine) TrialBalance() dto.TrialBalanceResponse {
	st := e.Snapshot()

	out := dto.TrialBalanceResponse{}
	var walk func(id string)
	walk = func(id string) {
		n := st.Accounts.FindByID(id)
		if n == nil {
			return
		}
		if len(n.ChildIDs) > 0 {
			for _, childID := range n.ChildIDs {
				walk(childID)
			}
			return
		}
		row := dto.TrialBalanceRow{Code: n.Code, Name: n.Name}
		if n.Balance.IsNegative() {
			row.Credit = n.Balance.Neg()
		} else {
			row.Debit = n.Balance
		}
		out.TotalDebit = out.TotalDebit.Add(row.Debit)
		out.TotalCredit = out.TotalCredit.Add(row.Credit)
		out.Rows = append(out.Rows, row)
	}
	for _, rootID := range st.Accounts.RootIDs {
		walk(rootID)
	}
	return out
}
