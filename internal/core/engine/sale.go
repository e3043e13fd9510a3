package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amrmohammed249/daftari/internal/apperrors"
	"github.com/amrmohammed249/daftari/internal/core/domain"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// CashCustomerName labels sales without an attached customer record.
const CashCustomerName = "Cash Customer"

type saleInput struct {
	date       time.Time
	customerID string
	payment    domain.PaymentType
	lines      []domain.LineItem
}

// createSaleOnState runs the full sale posting flow against st: validates the
// customer and lines, checks stock, consumes stock, moves the customer
// balance for credit sales and posts the balanced journal entry. It does not
// append the sale to st; the caller decides whether it is a new document or a
// replacement. before collects pre-operation stock for low-stock detection.
func createSaleOnState(st *domain.State, id string, in saleInput, actor domain.Actor,
	now time.Time, before map[string]decimal.Decimal) (*domain.Sale, error) {

	customerName := CashCustomerName
	var customer *domain.Customer
	if in.customerID != "" {
		customer = st.CustomerByID(in.customerID)
		if customer == nil {
			return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, in.customerID)
		}
		if customer.IsArchived {
			return nil, fmt.Errorf("%w: customer %s is archived", apperrors.ErrValidation, customer.Name)
		}
		customerName = customer.Name
	}
	if in.payment == domain.PaymentCredit && customer == nil {
		return nil, fmt.Errorf("%w: credit sale requires a customer", apperrors.ErrValidation)
	}

	doc, err := resolveLines(st, in.lines, true)
	if err != nil {
		return nil, err
	}
	if err := checkStock(st, doc.need); err != nil {
		return nil, err
	}

	settleCode := domain.CodeCash
	if in.payment == domain.PaymentCredit {
		settleCode = domain.CodeReceivables
	}
	settle, err := requireAccount(st, settleCode)
	if err != nil {
		return nil, err
	}
	revenue, err := requireAccount(st, domain.CodeSalesRevenue)
	if err != nil {
		return nil, err
	}

	jl := []domain.JournalLine{debitLine(settle, doc.grand)}
	if doc.discount.IsPositive() {
		discountAcc, err := requireAccount(st, domain.CodeSalesDiscount)
		if err != nil {
			return nil, err
		}
		jl = append(jl, debitLine(discountAcc, doc.discount))
	}
	jl = append(jl, creditLine(revenue, doc.subtotal))
	if doc.cogs.IsPositive() {
		cogsAcc, err := requireAccount(st, domain.CodeCOGS)
		if err != nil {
			return nil, err
		}
		inventoryAcc, err := requireAccount(st, domain.CodeInventory)
		if err != nil {
			return nil, err
		}
		jl = append(jl, debitLine(cogsAcc, doc.cogs), creditLine(inventoryAcc, doc.cogs))
	}

	consumeStock(st, doc.need, before)
	if in.payment == domain.PaymentCredit {
		customer.Balance = customer.Balance.Add(doc.grand)
	}

	entry, err := postEntry(st, in.date, fmt.Sprintf("Sale %s - %s", id, customerName),
		domain.SourceSale, id, jl, actor, now)
	if err != nil {
		return nil, err
	}

	return &domain.Sale{
		ID:             id,
		Date:           in.date,
		CustomerID:     in.customerID,
		CustomerName:   customerName,
		PaymentType:    in.payment,
		Lines:          doc.lines,
		Subtotal:       doc.subtotal,
		TotalDiscount:  doc.discount,
		GrandTotal:     doc.grand,
		CostOfGoods:    doc.cogs,
		JournalEntryID: entry.ID,
		AuditFields:    domain.NewAuditFields(actor, now),
	}, nil
}

// reverseSaleEffects undoes a sale's side effects from its recorded values:
// stock comes back via the recorded base quantities, the customer balance
// drops by the recorded grand total, and the journal entry is archived.
func reverseSaleEffects(st *domain.State, sale *domain.Sale, actor domain.Actor, now time.Time) {
	restoreStock(st, sale.Lines)
	if sale.PaymentType == domain.PaymentCredit && sale.CustomerID != "" {
		if c := st.CustomerByID(sale.CustomerID); c != nil {
			c.Balance = c.Balance.Sub(sale.GrandTotal)
		}
	}
	if entry := st.JournalByID(sale.JournalEntryID); entry != nil {
		archiveEntry(st, entry, actor, now)
	}
}

// CreateSale posts a sales invoice.
func (e *Engine) CreateSale(ctx context.Context, actor domain.Actor, req dto.CreateSaleRequest) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var created domain.Sale
	var notes []domain.Notification
	err := e.mutate(func(st *domain.State) error {
		before := make(map[string]decimal.Decimal)
		id := st.Sequences.NextID(domain.SeqSale)
		sale, err := createSaleOnState(st, id, saleInput{
			date:       req.Date,
			customerID: req.CustomerID,
			payment:    req.PaymentType,
			lines:      dto.ToLineItems(req.Lines),
		}, actor, e.now(), before)
		if err != nil {
			return err
		}
		st.Sales = append(st.Sales, *sale)
		created = *sale
		created.Lines = append([]domain.LineItem(nil), sale.Lines...)
		notes = e.lowStockNotes(st, before)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "sale.create", "created sale %s for %s, total %s",
		created.ID, created.CustomerName, created.GrandTotal.String())
	e.notify(notes)
	logger.Info("Sale created",
		slog.String("sale_id", created.ID),
		slog.String("grand_total", created.GrandTotal.String()))
	return &created, nil
}

// UpdateSale replaces a sale's content. The original journal entry is
// archived and a fresh one posted, so editing a sale is indistinguishable in
// the ledger from cancelling it and re-creating it. The stock feasibility
// check runs after the reversal, against the stock the edit would actually
// see.
func (e *Engine) UpdateSale(ctx context.Context, actor domain.Actor, saleID string, req dto.CreateSaleRequest) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var updated domain.Sale
	var notes []domain.Notification
	err := e.mutate(func(st *domain.State) error {
		existing := st.SaleByID(saleID)
		if existing == nil {
			return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
		}
		if existing.IsArchived {
			return fmt.Errorf("%w: sale %s is archived", apperrors.ErrConflict, saleID)
		}

		reverseSaleEffects(st, existing, actor, e.now())

		before := make(map[string]decimal.Decimal)
		sale, err := createSaleOnState(st, saleID, saleInput{
			date:       req.Date,
			customerID: req.CustomerID,
			payment:    req.PaymentType,
			lines:      dto.ToLineItems(req.Lines),
		}, actor, e.now(), before)
		if err != nil {
			return err
		}
		sale.CreatedAt = existing.CreatedAt
		sale.CreatedBy = existing.CreatedBy
		sale.Touch(actor, e.now())
		*existing = *sale
		updated = *sale
		updated.Lines = append([]domain.LineItem(nil), sale.Lines...)
		notes = e.lowStockNotes(st, before)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "sale.update", "updated sale %s, new total %s",
		updated.ID, updated.GrandTotal.String())
	e.notify(notes)
	logger.Info("Sale updated", slog.String("sale_id", updated.ID))
	return &updated, nil
}

// ArchiveSale cancels a sale: stock and customer balance are restored and the
// journal entry archived. The invoice stays in the list, flagged.
func (e *Engine) ArchiveSale(ctx context.Context, actor domain.Actor, saleID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := e.mutate(func(st *domain.State) error {
		sale := st.SaleByID(saleID)
		if sale == nil {
			return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
		}
		if sale.IsArchived {
			return fmt.Errorf("%w: sale %s is already archived", apperrors.ErrConflict, saleID)
		}
		reverseSaleEffects(st, sale, actor, e.now())
		sale.IsArchived = true
		sale.Touch(actor, e.now())
		return nil
	})
	if err != nil {
		return err
	}

	e.recordAudit(actor, "sale.archive", "archived sale %s", saleID)
	logger.Info("Sale archived", slog.String("sale_id", saleID))
	return nil
}
