package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/rentora/backend/internal/domain/billing"
)

// GormUnitOfWork implements billing.UnitOfWork on top of a GORM
// transaction. Repositories handed to the callback are bound to the
// transaction, so either every write in the callback commits or none
// does.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GORM-based unit of work
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// InTransaction runs fn inside a single database transaction
func (u *GormUnitOfWork) InTransaction(ctx context.Context, fn func(repos billing.RepositorySet) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositorySet(tx))
	})
}

// NewRepositorySet builds the billing repositories bound to the given
// database handle. Pass a transaction to get transaction-scoped
// repositories, or the root handle for standalone reads.
func NewRepositorySet(db *gorm.DB) billing.RepositorySet {
	return billing.RepositorySet{
		Contracts: NewGormContractRepository(db),
		Invoices:  NewGormInvoiceRepository(db),
		Payments:  NewGormPaymentRepository(db),
	}
}
