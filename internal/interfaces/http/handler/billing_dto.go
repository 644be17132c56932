package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentora/backend/internal/domain/billing"
)

// CreateContractRequest is the payload for registering a rental contract
type CreateContractRequest struct {
	UnitName     string  `json:"unit_name" binding:"required,max=255"`
	CustomerName string  `json:"customer_name" binding:"required,max=255"`
	RentAmount   float64 `json:"rent_amount" binding:"required,gt=0"`
}

// ContractResponse is the API view of a rental contract
type ContractResponse struct {
	ID           uuid.UUID       `json:"id"`
	UnitName     string          `json:"unit_name"`
	CustomerName string          `json:"customer_name"`
	RentAmount   decimal.Decimal `json:"rent_amount"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewContractResponse builds a ContractResponse from a domain contract
func NewContractResponse(contract *billing.Contract) ContractResponse {
	return ContractResponse{
		ID:           contract.ID,
		UnitName:     contract.UnitName,
		CustomerName: contract.CustomerName,
		RentAmount:   contract.RentAmount,
		Status:       string(contract.Status),
		CreatedAt:    contract.CreatedAt,
		UpdatedAt:    contract.UpdatedAt,
	}
}

// CreateInvoiceRequest is the payload for generating an invoice
type CreateInvoiceRequest struct {
	// DueDate is the invoice due date in YYYY-MM-DD form
	DueDate string `json:"due_date" binding:"required,datetime=2006-01-02"`
}

// InvoiceResponse is the API view of a freshly created invoice
type InvoiceResponse struct {
	ID            uuid.UUID       `json:"id"`
	ContractID    uuid.UUID       `json:"contract_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	// DueDate is a calendar date, rendered YYYY-MM-DD
	DueDate   string    `json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
}

// NewInvoiceResponse builds an InvoiceResponse from a domain invoice
func NewInvoiceResponse(invoice *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            invoice.ID,
		ContractID:    invoice.ContractID,
		InvoiceNumber: invoice.InvoiceNumber,
		Subtotal:      invoice.Subtotal,
		TaxAmount:     invoice.TaxAmount,
		Total:         invoice.Total,
		Status:        string(invoice.Status),
		DueDate:       invoice.DueDate.Format("2006-01-02"),
		CreatedAt:     invoice.CreatedAt,
	}
}

// RecordPaymentRequest is the payload for recording a payment
type RecordPaymentRequest struct {
	Amount          float64 `json:"amount" binding:"required"`
	PaymentMethod   string  `json:"payment_method" binding:"required,oneof=cash bank_transfer credit_card"`
	ReferenceNumber string  `json:"reference_number" binding:"max=100"`
}

// PaymentResponse is the API view of a recorded payment
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Reference     string          `json:"reference_number,omitempty"`
	PaidAt        time.Time       `json:"paid_at"`
}

// NewPaymentResponse builds a PaymentResponse from a domain payment
func NewPaymentResponse(payment *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID,
		InvoiceID:     payment.InvoiceID,
		Amount:        payment.Amount,
		PaymentMethod: payment.Method,
		Reference:     payment.Reference,
		PaidAt:        payment.PaidAt,
	}
}
