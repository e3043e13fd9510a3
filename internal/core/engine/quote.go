package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/amrmohammed249/daftari/internal/apperrors"
	"github.com/amrmohammed249/daftari/internal/core/domain"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// CreatePriceQuote stores a sales draft. Quotes never touch stock, balances
// or the ledger; lines are still validated and enriched so conversion later
// reuses the recorded content as-is.
func (e *Engine) CreatePriceQuote(ctx context.Context, actor domain.Actor, req dto.CreateQuoteRequest) (*domain.PriceQuote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var created domain.PriceQuote
	err := e.mutate(func(st *domain.State) error {
		customerName := CashCustomerName
		if req.PartyID != "" {
			c := st.CustomerByID(req.PartyID)
			if c == nil {
				return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, req.PartyID)
			}
			if c.IsArchived {
				return fmt.Errorf("%w: customer %s is archived", apperrors.ErrValidation, c.Name)
			}
			customerName = c.Name
		}
		if req.PaymentType == domain.PaymentCredit && req.PartyID == "" {
			return fmt.Errorf("%w: credit quote requires a customer", apperrors.ErrValidation)
		}

		doc, err := resolveLines(st, dto.ToLineItems(req.Lines), false)
		if err != nil {
			return err
		}

		q := domain.PriceQuote{
			ID:            st.Sequences.NextID(domain.SeqPriceQuote),
			Date:          req.Date,
			CustomerID:    req.PartyID,
			CustomerName:  customerName,
			PaymentType:   req.PaymentType,
			Lines:         doc.lines,
			Subtotal:      doc.subtotal,
			TotalDiscount: doc.discount,
			GrandTotal:    doc.grand,
			Status:        domain.QuoteNew,
			AuditFields:   domain.NewAuditFields(actor, e.now()),
		}
		st.PriceQuotes = append(st.PriceQuotes, q)
		created = q
		created.Lines = append([]domain.LineItem(nil), q.Lines...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "priceQuote.create", "created price quote %s for %s, total %s",
		created.ID, created.CustomerName, created.GrandTotal.String())
	logger.Info("Price quote created", slog.String("quote_id", created.ID))
	return &created, nil
}

// ConvertPriceQuote turns a NEW quote into a posted sale using the quote's
// recorded lines. The full sale flow runs, including the stock check at
// conversion time, and both the quote transition and the sale commit as one
// step: if the sale cannot post, the quote stays NEW.
func (e *Engine) ConvertPriceQuote(ctx context.Context, actor domain.Actor, quoteID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var created domain.Sale
	var notes []domain.Notification
	err := e.mutate(func(st *domain.State) error {
		q := st.PriceQuoteByID(quoteID)
		if q == nil {
			return fmt.Errorf("%w: price quote %s", apperrors.ErrNotFound, quoteID)
		}
		if q.Status != domain.QuoteNew {
			return fmt.Errorf("%w: price quote %s is %s", apperrors.ErrConflict, quoteID, q.Status)
		}

		before := make(map[string]decimal.Decimal)
		saleID := st.Sequences.NextID(domain.SeqSale)
		sale, err := createSaleOnState(st, saleID, saleInput{
			date:       q.Date,
			customerID: q.CustomerID,
			payment:    q.PaymentType,
			lines:      q.Lines,
		}, actor, e.now(), before)
		if err != nil {
			return err
		}
		st.Sales = append(st.Sales, *sale)
		q.Status = domain.QuoteConverted
		q.ResultSaleID = saleID
		q.Touch(actor, e.now())

		created = *sale
		created.Lines = append([]domain.LineItem(nil), sale.Lines...)
		notes = e.lowStockNotes(st, before)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "priceQuote.convert", "converted price quote %s into sale %s",
		quoteID, created.ID)
	e.notify(notes)
	logger.Info("Price quote converted",
		slog.String("quote_id", quoteID), slog.String("sale_id", created.ID))
	return &created, nil
}

// CancelPriceQuote moves a NEW quote to its terminal cancelled state.
func (e *Engine) CancelPriceQuote(ctx context.Context, actor domain.Actor, quoteID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := e.mutate(func(st *domain.State) error {
		q := st.PriceQuoteByID(quoteID)
		if q == nil {
			return fmt.Errorf("%w: price quote %s", apperrors.ErrNotFound, quoteID)
		}
		if q.Status != domain.QuoteNew {
			return fmt.Errorf("%w: price quote %s is %s", apperrors.ErrConflict, quoteID, q.Status)
		}
		q.Status = domain.QuoteCancelled
		q.Touch(actor, e.now())
		return nil
	})
	if err != nil {
		return err
	}

	e.recordAudit(actor, "priceQuote.cancel", "cancelled price quote %s", quoteID)
	logger.Info("Price quote cancelled", slog.String("quote_id", quoteID))
	return nil
}

// CreatePurchaseQuote stores a purchase draft.
func (e *Engine) CreatePurchaseQuote(ctx context.Context, actor domain.Actor, req dto.CreateQuoteRequest) (*domain.PurchaseQuote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var created domain.PurchaseQuote
	err := e.mutate(func(st *domain.State) error {
		supplierName := CashSupplierName
		if req.PartyID != "" {
			s := st.SupplierByID(req.PartyID)
			if s == nil {
				return fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, req.PartyID)
			}
			if s.IsArchived {
				return fmt.Errorf("%w: supplier %s is archived", apperrors.ErrValidation, s.Name)
			}
			supplierName = s.Name
		}
		if req.PaymentType == domain.PaymentCredit && req.PartyID == "" {
			return fmt.Errorf("%w: credit quote requires a supplier", apperrors.ErrValidation)
		}

		doc, err := resolveLines(st, dto.ToLineItems(req.Lines), false)
		if err != nil {
			return err
		}

		q := domain.PurchaseQuote{
			ID:            st.Sequences.NextID(domain.SeqPurchaseQuote),
			Date:          req.Date,
			SupplierID:    req.PartyID,
			SupplierName:  supplierName,
			PaymentType:   req.PaymentType,
			Lines:         doc.lines,
			Subtotal:      doc.subtotal,
			TotalDiscount: doc.discount,
			GrandTotal:    doc.grand,
			Status:        domain.QuoteNew,
			AuditFields:   domain.NewAuditFields(actor, e.now()),
		}
		st.PurchQuotes = append(st.PurchQuotes, q)
		created = q
		created.Lines = append([]domain.LineItem(nil), q.Lines...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "purchaseQuote.create", "created purchase quote %s for %s, total %s",
		created.ID, created.SupplierName, created.GrandTotal.String())
	logger.Info("Purchase quote created", slog.String("quote_id", created.ID))
	return &created, nil
}

// ConvertPurchaseQuote turns a NEW purchase quote into a posted purchase.
func (e *Engine) ConvertPurchaseQuote(ctx context.Context, actor domain.Actor, quoteID string) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var created domain.Purchase
	err := e.mutate(func(st *domain.State) error {
		q := st.PurchaseQuoteByID(quoteID)
		if q == nil {
			return fmt.Errorf("%w: purchase quote %s", apperrors.ErrNotFound, quoteID)
		}
		if q.Status != domain.QuoteNew {
			return fmt.Errorf("%w: purchase quote %s is %s", apperrors.ErrConflict, quoteID, q.Status)
		}

		purchaseID := st.Sequences.NextID(domain.SeqPurchase)
		p, err := createPurchaseOnState(st, purchaseID, purchaseInput{
			date:       q.Date,
			supplierID: q.SupplierID,
			payment:    q.PaymentType,
			lines:      q.Lines,
		}, actor, e.now())
		if err != nil {
			return err
		}
		st.Purchases = append(st.Purchases, *p)
		q.Status = domain.QuoteConverted
		q.ResultPurchaseID = purchaseID
		q.Touch(actor, e.now())

		created = *p
		created.Lines = append([]domain.LineItem(nil), p.Lines...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "purchaseQuote.convert", "converted purchase quote %s into purchase %s",
		quoteID, created.ID)
	logger.Info("Purchase quote converted",
		slog.String("quote_id", quoteID), slog.String("purchase_id", created.ID))
	return &created, nil
}

// CancelPurchaseQuote moves a NEW purchase quote to cancelled.
func (e *Engine) CancelPurchaseQuote(ctx context.Context, actor domain.Actor, quoteID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := e.mutate(func(st *domain.State) error {
		q := st.PurchaseQuoteByID(quoteID)
		if q == nil {
			return fmt.Errorf("%w: purchase quote %s", apperrors.ErrNotFound, quoteID)
		}
		if q.Status != domain.QuoteNew {
			return fmt.Errorf("%w: purchase quote %s is %s", apperrors.ErrConflict, quoteID, q.Status)
		}
		q.Status = domain.QuoteCancelled
		q.Touch(actor, e.now())
		return nil
	})
	if err != nil {
		return err
	}

	e.recordAudit(actor, "purchaseQuote.cancel", "cancelled purchase quote %s", quoteID)
	logger.Info("Purchase quote cancelled", slog.String("quote_id", quoteID))
	return nil
}
