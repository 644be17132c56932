package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rentora/backend/internal/domain/billing"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/infrastructure/persistence/models"
	"github.com/rentora/backend/internal/infrastructure/persistence/tenant"
)

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GORM-based invoice repository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Save persists an invoice (create or update). A duplicate invoice
// number surfaces as shared.ErrConflict so callers can retry with a
// fresh sequence.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	model := &models.InvoiceModel{}
	model.FromDomain(invoice)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrConflict
		}
		return fmt.Errorf("failed to save invoice: %w", err)
	}
	return nil
}

// SaveWithLock persists an invoice with an optimistic version check.
// The update only applies when the stored row still carries the
// version the invoice was loaded with; otherwise shared.ErrConflict
// is returned and the caller must re-read.
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, invoice *billing.Invoice) error {
	model := &models.InvoiceModel{}
	model.FromDomain(invoice)

	result := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"paid_at":    model.PaidAt,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to save invoice with lock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConflict
	}
	return nil
}

// FindByID retrieves an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate retrieves an invoice holding a row lock for the
// enclosing transaction. SQLite locks at the database level already,
// so the FOR UPDATE clause is skipped there.
func (r *GormInvoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model models.InvoiceModel
	err := query.First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice for update: %w", err)
	}
	return model.ToDomain(), nil
}

// FindByContract retrieves a paginated list of invoices for a contract
func (r *GormInvoiceRepository) FindByContract(ctx context.Context, contractID uuid.UUID, filter shared.Filter) (shared.Paginated[*billing.Invoice], error) {
	query := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("contract_id = ?", contractID)

	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if from, ok := filter.Filters["date_from"].(time.Time); ok {
		query = query.Where("created_at >= ?", from)
	}
	if to, ok := filter.Filters["date_to"].(time.Time); ok {
		query = query.Where("created_at <= ?", to)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*billing.Invoice]{}, fmt.Errorf("failed to count invoices: %w", err)
	}

	sortBy, _ := filter.Filters["sort_by"].(string)
	sortOrder, _ := filter.Filters["sort_order"].(string)
	orderClause := ValidateSortField(sortBy, InvoiceSortFields, "created_at") + " " + ValidateSortOrder(sortOrder)

	var modelList []models.InvoiceModel
	err := query.
		Order(orderClause).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&modelList).Error
	if err != nil {
		return shared.Paginated[*billing.Invoice]{}, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]*billing.Invoice, len(modelList))
	for i := range modelList {
		invoices[i] = modelList[i].ToDomain()
	}
	return shared.NewPaginated(invoices, total, filter.Page, filter.Limit()), nil
}

// FindAllByContract retrieves every invoice for a contract, oldest first
func (r *GormInvoiceRepository) FindAllByContract(ctx context.Context, contractID uuid.UUID) ([]*billing.Invoice, error) {
	var modelList []models.InvoiceModel
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("created_at ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for contract: %w", err)
	}

	invoices := make([]*billing.Invoice, len(modelList))
	for i := range modelList {
		invoices[i] = modelList[i].ToDomain()
	}
	return invoices, nil
}

// LastSequenceForMonth returns the highest invoice-number sequence the
// tenant has been issued in the given month, 0 when none exists yet.
// The row is read FOR UPDATE so concurrent allocations in the same
// tenant and month serialize on the latest issued invoice; the unique
// index on invoice_number backstops the first allocation of a month,
// which has no row to lock. As in FindByIDForUpdate, the clause is
// skipped on sqlite.
func (r *GormInvoiceRepository) LastSequenceForMonth(ctx context.Context, tenantID int64, monthKey string) (int, error) {
	prefix := billing.NumberPrefix(tenantID, monthKey)

	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model models.InvoiceModel
	err := query.
		Scopes(tenant.TenantScope(tenantID)).
		Where("invoice_number LIKE ?", prefix+"%").
		Order("invoice_number DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to find last invoice sequence: %w", err)
	}
	return billing.SequenceFromNumber(model.InvoiceNumber), nil
}
