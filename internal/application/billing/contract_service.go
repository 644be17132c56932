package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rentora/backend/internal/domain/billing"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/infrastructure/logger"
)

// ContractService implements rental contract management use cases
type ContractService struct {
	repos billing.RepositorySet
}

// NewContractService creates a new contract service
func NewContractService(repos billing.RepositorySet) *ContractService {
	return &ContractService{repos: repos}
}

// CreateContractRequest carries the inputs for contract creation
type CreateContractRequest struct {
	TenantID     int64
	UnitName     string
	CustomerName string
	RentAmount   decimal.Decimal
}

// CreateContract registers a new active rental contract
func (s *ContractService) CreateContract(ctx context.Context, req CreateContractRequest) (*billing.Contract, error) {
	contract, err := billing.NewContract(req.TenantID, req.UnitName, req.CustomerName, req.RentAmount)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Contracts.Save(ctx, contract); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("contract created",
		zap.String("contract_id", contract.ID.String()),
		zap.String("unit_name", contract.UnitName))
	return contract, nil
}

// GetContract retrieves a contract owned by the tenant
func (s *ContractService) GetContract(ctx context.Context, contractID uuid.UUID, tenantID int64) (*billing.Contract, error) {
	contract, err := s.repos.Contracts.FindByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if !contract.BelongsTo(tenantID) {
		logger.L(ctx).Warn("cross-tenant contract access rejected",
			zap.String("contract_id", contract.ID.String()),
			zap.Int64("owner_tenant_id", contract.TenantID),
			zap.Int64("request_tenant_id", tenantID))
		return nil, shared.ErrForbidden
	}
	return contract, nil
}

// ListContracts retrieves a paginated list of the tenant's contracts
func (s *ContractService) ListContracts(ctx context.Context, tenantID int64, filter shared.Filter) (shared.Paginated[*billing.Contract], error) {
	return s.repos.Contracts.FindAllForTenant(ctx, tenantID, filter)
}

// TerminateContract marks a contract as terminated. Terminated
// contracts keep their invoices but can no longer be billed.
func (s *ContractService) TerminateContract(ctx context.Context, contractID uuid.UUID, tenantID int64) (*billing.Contract, error) {
	contract, err := s.GetContract(ctx, contractID, tenantID)
	if err != nil {
		return nil, err
	}
	if err := contract.Terminate(); err != nil {
		return nil, err
	}
	if err := s.repos.Contracts.Save(ctx, contract); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("contract terminated",
		zap.String("contract_id", contract.ID.String()))
	return contract, nil
}
