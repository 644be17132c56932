package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentora/backend/internal/domain/shared"
)

func TestNewContract(t *testing.T) {
	contract, err := NewContract(1, "Unit 4B", "Acme Trading", decimal.NewFromInt(1000))

	require.NoError(t, err)
	assert.Equal(t, ContractStatusActive, contract.Status)
	assert.True(t, contract.IsActive())
	assert.True(t, contract.BelongsTo(1))
	assert.False(t, contract.BelongsTo(2))
}

func TestNewContractValidation(t *testing.T) {
	tests := []struct {
		name         string
		unitName     string
		customerName string
		rent         decimal.Decimal
	}{
		{"empty unit name", "", "Acme", decimal.NewFromInt(100)},
		{"empty customer name", "Unit 1", "", decimal.NewFromInt(100)},
		{"negative rent", "Unit 1", "Acme", decimal.NewFromInt(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewContract(1, tt.unitName, tt.customerName, tt.rent)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "INVALID_ARGUMENT", domainErr.Code)
		})
	}
}

func TestContractOnlyActiveIsInvoiceable(t *testing.T) {
	contract, err := NewContract(1, "Unit 4B", "Acme Trading", decimal.NewFromInt(1000))
	require.NoError(t, err)

	for _, status := range []ContractStatus{ContractStatusDraft, ContractStatusExpired, ContractStatusTerminated} {
		contract.Status = status
		assert.False(t, contract.IsActive(), "status %s", status)
	}
	contract.Status = ContractStatusActive
	assert.True(t, contract.IsActive())
}

func TestContractTerminate(t *testing.T) {
	contract, err := NewContract(1, "Unit 4B", "Acme Trading", decimal.NewFromInt(1000))
	require.NoError(t, err)

	require.NoError(t, contract.Terminate())
	assert.False(t, contract.IsActive())

	err = contract.Terminate()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}
