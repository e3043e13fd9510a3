package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amrmohammed249/daftari/internal/apperrors"
	"github.com/amrmohammed249/daftari/internal/core/domain"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// CreateCustomer creates a customer. The opening balance is set directly; it
// predates the books and posts nothing.
func (e *Engine) CreateCustomer(ctx context.Context, actor domain.Actor, req dto.CreatePartyRequest) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var created domain.Customer
	err := e.mutate(func(st *domain.State) error {
		for i := range st.Customers {
			if !st.Customers[i].IsArchived && strings.EqualFold(st.Customers[i].Name, req.Name) {
				return fmt.Errorf("%w: customer named %s", apperrors.ErrDuplicate, req.Name)
			}
		}
		c := domain.Customer{
			ID:          st.Sequences.NextID(domain.SeqCustomer),
			Name:        req.Name,
			Phone:       req.Phone,
			Balance:     req.OpeningBalance,
			AuditFields: domain.NewAuditFields(actor, e.now()),
		}
		st.Customers = append(st.Customers, c)
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "customer.create", "created customer %s (%s)", created.Name, created.ID)
	logger.Info("Customer created", slog.String("customer_id", created.ID))
	return &created, nil
}

// UpdateCustomer changes customer master data.
func (e *Engine) UpdateCustomer(ctx context.Context, actor domain.Actor, customerID string, req dto.UpdatePartyRequest) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var updated domain.Customer
	err := e.mutate(func(st *domain.State) error {
		c := st.CustomerByID(customerID)
		if c == nil {
			return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		if c.IsArchived {
			return fmt.Errorf("%w: customer %s is archived", apperrors.ErrConflict, customerID)
		}
		if req.Name != nil && *req.Name != c.Name {
			for i := range st.Customers {
				if st.Customers[i].ID != c.ID && !st.Customers[i].IsArchived && strings.EqualFold(st.Customers[i].Name, *req.Name) {
					return fmt.Errorf("%w: customer named %s", apperrors.ErrDuplicate, *req.Name)
				}
			}
			c.Name = *req.Name
		}
		if req.Phone != nil {
			c.Phone = *req.Phone
		}
		c.Touch(actor, e.now())
		updated = *c
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "customer.update", "updated customer %s", updated.ID)
	logger.Info("Customer updated", slog.String("customer_id", updated.ID))
	return &updated, nil
}

// ArchiveCustomer hides a customer from new documents. Customers with an
// outstanding balance cannot be archived.
func (e *Engine) ArchiveCustomer(ctx context.Context, actor domain.Actor, customerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := e.mutate(func(st *domain.State) error {
		c := st.CustomerByID(customerID)
		if c == nil {
			return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		if c.IsArchived {
			return fmt.Errorf("%w: customer %s is already archived", apperrors.ErrConflict, customerID)
		}
		if !c.Balance.IsZero() {
			return fmt.Errorf("%w: customer %s has an outstanding balance of %s",
				apperrors.ErrConflict, c.Name, c.Balance.String())
		}
		c.IsArchived = true
		c.Touch(actor, e.now())
		return nil
	})
	if err != nil {
		return err
	}

	e.recordAudit(actor, "customer.archive", "archived customer %s", customerID)
	logger.Info("Customer archived", slog.String("customer_id", customerID))
	return nil
}

// UnarchiveCustomer restores an archived customer.
func (e *Engine) UnarchiveCustomer(ctx context.Context, actor domain.Actor, customerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := e.mutate(func(st *domain.State) error {
		c := st.CustomerByID(customerID)
		if c == nil {
			return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		if !c.IsArchived {
			return fmt.Errorf("%w: customer %s is not archived", apperrors.ErrConflict, customerID)
		}
		c.IsArchived = false
		c.Touch(actor, e.now())
		return nil
	})
	if err != nil {
		return err
	}

	e.recordAudit(actor, "customer.unarchive", "restored customer %s", customerID)
	logger.Info("Customer restored", slog.String("customer_id", customerID))
	return nil
}

// CreateSupplier creates a supplier with an optional opening balance.
func (e *Engine) CreateSupplier(ctx context.Context, actor domain.Actor, req dto.CreatePartyRequest) (*domain.Supplier, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var created domain.Supplier
	err := e.mutate(func(st *domain.State) error {
		for i := range st.Suppliers {
			if !st.Suppliers[i].IsArchived && strings.EqualFold(st.Suppliers[i].Name, req.Name) {
				return fmt.Errorf("%w: supplier named %s", apperrors.ErrDuplicate, req.Name)
			}
		}
		s := domain.Supplier{
			ID:          st.Sequences.NextID(domain.SeqSupplier),
			Name:        req.Name,
			Phone:       req.Phone,
			Balance:     req.OpeningBalance,
			AuditFields: domain.NewAuditFields(actor, e.now()),
		}
		st.Suppliers = append(st.Suppliers, s)
		created = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "supplier.create", "created supplier %s (%s)", created.Name, created.ID)
	logger.Info("Supplier created", slog.String("supplier_id", created.ID))
	return &created, nil
}

// UpdateSupplier changes supplier master data.
func (e *Engine) UpdateSupplier(ctx context.Context, actor domain.Actor, supplierID string, req dto.UpdatePartyRequest) (*domain.Supplier, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var updated domain.Supplier
	err := e.mutate(func(st *domain.State) error {
		s := st.SupplierByID(supplierID)
		if s == nil {
			return fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, supplierID)
		}
		if s.IsArchived {
			return fmt.Errorf("%w: supplier %s is archived", apperrors.ErrConflict, supplierID)
		}
		if req.Name != nil && *req.Name != s.Name {
			for i := range st.Suppliers {
				if st.Suppliers[i].ID != s.ID && !st.Suppliers[i].IsArchived && strings.EqualFold(st.Suppliers[i].Name, *req.Name) {
					return fmt.Errorf("%w: supplier named %s", apperrors.ErrDuplicate, *req.Name)
				}
			}
			s.Name = *req.Name
		}
		if req.Phone != nil {
			s.Phone = *req.Phone
		}
		s.Touch(actor, e.now())
		updated = *s
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.recordAudit(actor, "supplier.update", "updated supplier %s", updated.ID)
	logger.Info("Supplier updated", slog.String("supplier_id", updated.ID))
	return &updated, nil
}

// ArchiveSupplier hides a supplier. Suppliers that are still owed money
// cannot be archived.
func (e *Engine) ArchiveSupplier(ctx context.Context, actor domain.Actor, supplierID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := e.mutate(func(st *domain.State) error {
		s := st.SupplierByID(supplierID)
		if s == nil {
			return fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, supplierID)
		}
		if s.IsArchived {
			return fmt.Errorf("%w: supplier %s is already archived", apperrors.ErrConflict, supplierID)
		}
		if !s.Balance.IsZero() {
			return fmt.Errorf("%w: supplier %s has an outstanding balance of %s",
				apperrors.ErrConflict, s.Name, s.Balance.String())
		}
		s.IsArchived = true
		s.Touch(actor, e.now())
		return nil
	})
	if err != nil {
		return err
	}

	e.recordAudit(actor, "supplier.archive", "archived supplier %s", supplierID)
	logger.Info("Supplier archived", slog.String("supplier_id", supplierID))
	return nil
}

// UnarchiveSupplier restores an archived supplier.
func (e *Engine) UnarchiveSupplier(ctx context.Context, actor domain.Actor, supplierID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := e.mutate(func(st *domain.State) error {
		s := st.SupplierByID(supplierID)
		if s == nil {
			return fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, supplierID)
		}
		if !s.IsArchived {
			return fmt.Errorf("%w: supplier %s is not archived", apperrors.ErrConflict, supplierID)
		}
		s.IsArchived = false
		s.Touch(actor, e.now())
		return nil
	})
	if err != nil {
		return err
	}

	e.recordAudit(actor, "supplier.unarchive", "restored supplier %s", supplierID)
	logger.Info("Supplier restored", slog.String("supplier_id", supplierID))
	return nil
}
