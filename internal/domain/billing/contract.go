package billing

import (
	"github.com/shopspring/decimal"

	"github.com/rentora/backend/internal/domain/shared"
)

// ContractStatus represents the lifecycle status of a rental contract
type ContractStatus string

// Contracts are created active; draft and expired rows arrive through
// administrative data loads. Only active contracts are invoiceable.
const (
	ContractStatusDraft      ContractStatus = "draft"
	ContractStatusActive     ContractStatus = "active"
	ContractStatusExpired    ContractStatus = "expired"
	ContractStatusTerminated ContractStatus = "terminated"
)

// Contract represents a rental agreement between a tenant (landlord
// organization) and a customer for a specific unit. Unit and customer
// details are denormalized onto the contract: the billing core never
// joins to a unit or customer table.
type Contract struct {
	shared.TenantAggregateRoot
	UnitName     string
	CustomerName string
	RentAmount   decimal.Decimal
	Status       ContractStatus
}

// NewContract creates a new active rental contract
func NewContract(tenantID int64, unitName, customerName string, rentAmount decimal.Decimal) (*Contract, error) {
	if unitName == "" {
		return nil, shared.NewDomainError("INVALID_ARGUMENT", "Unit name is required")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_ARGUMENT", "Customer name is required")
	}
	if rentAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_ARGUMENT", "Rent amount cannot be negative")
	}
	return &Contract{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		UnitName:            unitName,
		CustomerName:        customerName,
		RentAmount:          rentAmount,
		Status:              ContractStatusActive,
	}, nil
}

// IsActive reports whether the contract can still be invoiced
func (c *Contract) IsActive() bool {
	return c.Status == ContractStatusActive
}

// Terminate marks the contract as terminated. Existing invoices are
// unaffected; only new invoice generation stops.
func (c *Contract) Terminate() error {
	if c.Status == ContractStatusTerminated {
		return shared.NewDomainError("INVALID_STATE", "Contract is already terminated")
	}
	c.Status = ContractStatusTerminated
	c.IncrementVersion()
	return nil
}
