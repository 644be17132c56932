package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentora/backend/internal/domain/shared"
)

// ContractRepository defines persistence operations for contracts
type ContractRepository interface {
	Save(ctx context.Context, contract *Contract) error
	FindByID(ctx context.Context, id uuid.UUID) (*Contract, error)
	FindByIDForTenant(ctx context.Context, id uuid.UUID, tenantID int64) (*Contract, error)
	FindAllForTenant(ctx context.Context, tenantID int64, filter shared.Filter) (shared.Paginated[*Contract], error)
}

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	Save(ctx context.Context, invoice *Invoice) error
	// SaveWithLock persists the invoice with an optimistic version check;
	// returns shared.ErrConflict when the stored version has moved on.
	SaveWithLock(ctx context.Context, invoice *Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	// FindByIDForUpdate fetches the invoice holding a row lock for the
	// enclosing transaction, serializing concurrent payment attempts.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByContract(ctx context.Context, contractID uuid.UUID, filter shared.Filter) (shared.Paginated[*Invoice], error)
	FindAllByContract(ctx context.Context, contractID uuid.UUID) ([]*Invoice, error)
	// LastSequenceForMonth returns the highest invoice-number sequence
	// already allocated for the tenant in the month, 0 when none exists.
	LastSequenceForMonth(ctx context.Context, tenantID int64, monthKey string) (int, error)
}

// PaymentRepository defines persistence operations for payments
type PaymentRepository interface {
	Save(ctx context.Context, payment *Payment) error
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*Payment, error)
	SumAmountForInvoice(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error)
}

// RepositorySet bundles the billing repositories bound to one
// transaction, handed to a UnitOfWork callback.
type RepositorySet struct {
	Contracts ContractRepository
	Invoices  InvoiceRepository
	Payments  PaymentRepository
}

// UnitOfWork runs a function within a single storage transaction.
// Every mutating billing operation goes through it so that partial
// effects are never observable.
type UnitOfWork interface {
	InTransaction(ctx context.Context, fn func(repos RepositorySet) error) error
}
