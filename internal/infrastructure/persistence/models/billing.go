package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentora/backend/internal/domain/billing"
)

// ContractModel is the persistence model for rental contracts
type ContractModel struct {
	TenantAggregateModel
	UnitName     string          `gorm:"type:varchar(255);not null"`
	CustomerName string          `gorm:"type:varchar(255);not null"`
	RentAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status       string          `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for ContractModel
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts ContractModel to domain Contract
func (m *ContractModel) ToDomain() *billing.Contract {
	contract := &billing.Contract{
		UnitName:     m.UnitName,
		CustomerName: m.CustomerName,
		RentAmount:   m.RentAmount,
		Status:       billing.ContractStatus(m.Status),
	}
	m.PopulateTenantAggregateRoot(&contract.TenantAggregateRoot)
	return contract
}

// FromDomain populates ContractModel from domain Contract
func (m *ContractModel) FromDomain(c *billing.Contract) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.UnitName = c.UnitName
	m.CustomerName = c.CustomerName
	m.RentAmount = c.RentAmount
	m.Status = string(c.Status)
}

// InvoiceModel is the persistence model for invoices.
// InvoiceNumber carries a global unique index; it backstops the
// per-tenant-month sequence allocation under concurrent creation.
type InvoiceModel struct {
	TenantAggregateModel
	ContractID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceNumber string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TaxAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pending';index"`
	DueDate       time.Time       `gorm:"not null"`
	PaidAt        *time.Time
}

// TableName returns the table name for InvoiceModel
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts InvoiceModel to domain Invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	invoice := &billing.Invoice{
		ContractID:    m.ContractID,
		InvoiceNumber: m.InvoiceNumber,
		Subtotal:      m.Subtotal,
		TaxAmount:     m.TaxAmount,
		Total:         m.Total,
		Status:        billing.InvoiceStatus(m.Status),
		DueDate:       m.DueDate,
		PaidAt:        m.PaidAt,
	}
	m.PopulateTenantAggregateRoot(&invoice.TenantAggregateRoot)
	return invoice
}

// FromDomain populates InvoiceModel from domain Invoice
func (m *InvoiceModel) FromDomain(i *billing.Invoice) {
	m.FromDomainTenantAggregateRoot(i.TenantAggregateRoot)
	m.ContractID = i.ContractID
	m.InvoiceNumber = i.InvoiceNumber
	m.Subtotal = i.Subtotal
	m.TaxAmount = i.TaxAmount
	m.Total = i.Total
	m.Status = string(i.Status)
	m.DueDate = i.DueDate
	m.PaidAt = i.PaidAt
}

// PaymentModel is the persistence model for payments. Rows are
// append-only; an invoice's paid total is always derived by summing
// its payment rows.
type PaymentModel struct {
	BaseModel
	TenantID  int64           `gorm:"not null;index"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Method    string          `gorm:"type:varchar(50)"`
	Reference string          `gorm:"type:varchar(100)"`
	PaidAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for PaymentModel
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts PaymentModel to domain Payment
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		InvoiceID:  m.InvoiceID,
		Amount:     m.Amount,
		Method:     m.Method,
		Reference:  m.Reference,
		PaidAt:     m.PaidAt,
	}
}

// FromDomain populates PaymentModel from domain Payment
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.TenantID = p.TenantID
	m.InvoiceID = p.InvoiceID
	m.Amount = p.Amount
	m.Method = p.Method
	m.Reference = p.Reference
	m.PaidAt = p.PaidAt
}
