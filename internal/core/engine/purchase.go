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

// CashSupplierName labels purchases without an attached supplier record.
const CashSupplierName = "Cash Supplier"

type purchaseInput struct {
	date       time.Time
	supplierID string
	payment    domain.PaymentType
	lines      []domain.LineItem
}

// createPurchaseOnState is the receiving mirror of createSaleOnState: stock
// goes up, the supplier balance rises for credit purchases, and inventory is
// debited at the document's line prices. Purchases never move the item's
// stored purchase price; costing stays a deliberate, manual act.
func createPurchaseOnState(st *domain.State, id string, in purchaseInput, actor domain.Actor,
	now time.Time) (*domain.Purchase, error) {

	supplierName := CashSupplierName
	var supplier *domain.Supplier
	if in.supplierID != "" {
		supplier = st.SupplierByID(in.supplierID)
		if supplier == nil {
			return nil, fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, in.supplierID)
		}
		if supplier.IsArchived {
			return nil, fmt.Errorf("%w: supplier %s is archived", apperrors.ErrValidation, supplier.Name)
		}
		supplierName = supplier.Name
	}
	if in.payment == domain.PaymentCredit && supplier == nil {
		return nil, fmt.Errorf("%w: credit purchase requires a supplier", apperrors.ErrValidation)
	}

	doc, err := resolveLines(st, in.lines, false)
	if err != nil {
		return nil, err
	}

	inventoryAcc, err := requireAccount(st, domain.CodeInventory)
	if err != nil {
		return nil, err
	}
	settleCode := domain.CodeCash
	if in.payment == domain.PaymentCredit {
		settleCode = domain.CodePayables
	}
	settle, err := requireAccount(st, settleCode)
	if err != nil {
		return nil, err
	}

	jl := []domain.JournalLine{
		debitLine(inventoryAcc, doc.subtotal),
		creditLine(settle, doc.grand),
	}
	if doc.discount.IsPositive() {
		discountAcc, err := requireAccount(st, domain.CodePurchaseDiscount)
		if err != nil {
			return nil, err
		}
		jl = append(jl, creditLine(discountAcc, doc.discount))
	}

	receiveStock(st, doc.lines)
	if in.payment == domain.PaymentCredit {
		supplier.Balance = supplier.Balance.Add(doc.grand)
	}

	entry, err := postEntry(st, in.date, fmt.Sprintf("Purchase %s - %s", id, supplierName),
		domain.SourcePurchase, id, jl, actor, now)
	if err != nil {
		return nil, err
	}

	return &domain.Purchase{
		ID:             id,
		Date:           in.date,
		SupplierID:     in.supplierID,
		SupplierName:   supplierName,
		PaymentType:    in.payment,
		Lines:          doc.lines,
		Subtotal:       doc.subtotal,
		TotalDiscount:  doc.discount,
		GrandTotal:     doc.grand,
		JournalEntryID: entry.ID,
		AuditFields:    domain.NewAuditFields(actor, now),
	}, nil
}

// reversePurchaseEffects removes the received stock again, drops the supplier
// balance and archives the journal entry. The caller must have verified the
// stock can come back out (checkReversalStock).
func reversePurchaseEffects(st *domain.State, p *domain.Purchase, actor domain.Actor,
	now time.Time, before map[string]decimal.Decimal) {

	drainStock(st, p.Lines, before)
	if p.PaymentType == domain.PaymentCredit && p.SupplierID != "" {
		if s := st.SupplierByID(p.SupplierID); s != nil {
			s.Balance = s.Balance.Sub(p.GrandTotal)
		}
	}
	if entry := st.JournalByID(p.JournalEntryID); entry != nil {
		archiveEntry(st, entry, actor, now)
	}
}

// CreatePurchase posts a purchase bill.
func (e *Engine) CreatePurchase(ctx context.Context, actor domain.Actor, req dto.CreatePurchaseRequest) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var created domain.Purchase
	err := e.mutate(func(st *domain.State) error {
		id := st.Sequences.NextID(domain.SeqPurchase)
		p, err := purchaseFromRequest(st, id, req, actor, e.now())
		if err != nil {
			return err
		}
		st.Purchases = append(st.Purchases, *p)
		created = *p
		created.Lines = append([]domain.LineItem(nil), p.Lines...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "purchase.create", "created purchase %s from %s, total %s",
		created.ID, created.SupplierName, created.GrandTotal.String())
	logger.Info("Purchase created",
		slog.String("purchase_id", created.ID),
		slog.String("grand_total", created.GrandTotal.String()))
	return &created, nil
}

// UpdatePurchase replaces a purchase's content: reverse the recorded effects,
// then re-run the creation flow under the same id. Reversal of the received
// stock must itself be feasible unless negative stock is allowed.
func (e *Engine) UpdatePurchase(ctx context.Context, actor domain.Actor, purchaseID string, req dto.CreatePurchaseRequest) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var updated domain.Purchase
	var notes []domain.Notification
	err := e.mutate(func(st *domain.State) error {
		existing := st.PurchaseByID(purchaseID)
		if existing == nil {
			return fmt.Errorf("%w: purchase %s", apperrors.ErrNotFound, purchaseID)
		}
		if existing.IsArchived {
			return fmt.Errorf("%w: purchase %s is archived", apperrors.ErrConflict, purchaseID)
		}
		if err := checkReversalStock(st, existing.Lines); err != nil {
			return err
		}

		before := make(map[string]decimal.Decimal)
		reversePurchaseEffects(st, existing, actor, e.now(), before)

		p, err := purchaseFromRequest(st, purchaseID, req, actor, e.now())
		if err != nil {
			return err
		}
		p.CreatedAt = existing.CreatedAt
		p.CreatedBy = existing.CreatedBy
		p.Touch(actor, e.now())
		*existing = *p
		updated = *p
		updated.Lines = append([]domain.LineItem(nil), p.Lines...)
		notes = e.lowStockNotes(st, before)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "purchase.update", "updated purchase %s, new total %s",
		updated.ID, updated.GrandTotal.String())
	e.notify(notes)
	logger.Info("Purchase updated", slog.String("purchase_id", updated.ID))
	return &updated, nil
}

// ArchivePurchase cancels a purchase. The received stock must still be on
// hand (or negative stock allowed), otherwise the cancellation is rejected.
func (e *Engine) ArchivePurchase(ctx context.Context, actor domain.Actor, purchaseID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	var notes []domain.Notification
	err := e.mutate(func(st *domain.State) error {
		p := st.PurchaseByID(purchaseID)
		if p == nil {
			return fmt.Errorf("%w: purchase %s", apperrors.ErrNotFound, purchaseID)
		}
		if p.IsArchived {
			return fmt.Errorf("%w: purchase %s is already archived", apperrors.ErrConflict, purchaseID)
		}
		if err := checkReversalStock(st, p.Lines); err != nil {
			return err
		}
		before := make(map[string]decimal.Decimal)
		reversePurchaseEffects(st, p, actor, e.now(), before)
		p.IsArchived = true
		p.Touch(actor, e.now())
		notes = e.lowStockNotes(st, before)
		return nil
	})
	if err != nil {
		return err
	}

	e.recordAudit(actor, "purchase.archive", "archived purchase %s", purchaseID)
	e.notify(notes)
	logger.Info("Purchase archived", slog.String("purchase_id", purchaseID))
	return nil
}

// purchaseFromRequest adapts the request into the posting flow.
func purchaseFromRequest(st *domain.State, id string, req dto.CreatePurchaseRequest,
	actor domain.Actor, now time.Time) (*domain.Purchase, error) {
	return createPurchaseOnState(st, id, purchaseInput{
		date:       req.Date,
		supplierID: req.SupplierID,
		payment:    req.PaymentType,
		lines:      dto.ToLineItems(req.Lines),
	}, actor, now)
}
