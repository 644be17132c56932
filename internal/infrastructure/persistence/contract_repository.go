package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentora/backend/internal/domain/billing"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/infrastructure/persistence/models"
	"github.com/rentora/backend/internal/infrastructure/persistence/tenant"
)

// GormContractRepository implements billing.ContractRepository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GORM-based contract repository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// Save persists a contract (create or update)
func (r *GormContractRepository) Save(ctx context.Context, contract *billing.Contract) error {
	model := &models.ContractModel{}
	model.FromDomain(contract)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save contract: %w", err)
	}
	return nil
}

// FindByID retrieves a contract by its ID
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Contract, error) {
	var model models.ContractModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant retrieves a contract by ID scoped to a tenant
func (r *GormContractRepository) FindByIDForTenant(ctx context.Context, id uuid.UUID, tenantID int64) (*billing.Contract, error) {
	var model models.ContractModel
	err := r.db.WithContext(ctx).
		Scopes(tenant.TenantScope(tenantID)).
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contract for tenant: %w", err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant retrieves a paginated list of contracts for a tenant
func (r *GormContractRepository) FindAllForTenant(ctx context.Context, tenantID int64, filter shared.Filter) (shared.Paginated[*billing.Contract], error) {
	query := r.db.WithContext(ctx).
		Model(&models.ContractModel{}).
		Scopes(tenant.TenantScope(tenantID))

	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*billing.Contract]{}, fmt.Errorf("failed to count contracts: %w", err)
	}

	sortBy, _ := filter.Filters["sort_by"].(string)
	sortOrder, _ := filter.Filters["sort_order"].(string)
	orderClause := ValidateSortField(sortBy, ContractSortFields, "created_at") + " " + ValidateSortOrder(sortOrder)

	var modelList []models.ContractModel
	err := query.
		Order(orderClause).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&modelList).Error
	if err != nil {
		return shared.Paginated[*billing.Contract]{}, fmt.Errorf("failed to list contracts: %w", err)
	}

	contracts := make([]*billing.Contract, len(modelList))
	for i := range modelList {
		contracts[i] = modelList[i].ToDomain()
	}
	return shared.NewPaginated(contracts, total, filter.Page, filter.Limit()), nil
}
