package engine

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/amrmohammed249/daftari/internal/core/domain"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// ResetTransactionalData wipes every transaction while keeping master data:
// the journal, all documents and quotes go away, account balances, stock
// levels and party balances return to zero, and sequences restart. Items,
// parties and the chart's structure survive. There is no undo.
func (e *Engine) ResetTransactionalData(ctx context.Context, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := e.mutate(func(st *domain.State) error {
		st.Journal = nil
		st.Sales = nil
		st.Purchases = nil
		st.Treasury = nil
		st.Adjustments = nil
		st.PriceQuotes = nil
		st.PurchQuotes = nil
		st.Sequences = domain.NewSequences()

		for _, n := range st.Accounts.Nodes {
			n.Balance = decimal.Zero
		}
		for i := range st.Items {
			st.Items[i].Stock = decimal.Zero
		}
		for i := range st.Customers {
			st.Customers[i].Balance = decimal.Zero
		}
		for i := range st.Suppliers {
			st.Suppliers[i].Balance = decimal.Zero
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.recordAudit(actor, "data.reset", "reset all transactional data")
	logger.Warn("Transactional data reset", slog.String("actor_id", actor.ID))
	return nil
}
