package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rentora/backend/internal/domain/billing"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/infrastructure/logger"
)

// InvoiceService implements the billing use cases: generating monthly
// invoices for contracts, recording payments against them, and
// aggregating contract financial summaries. All mutations run inside a
// single transaction via the unit of work.
type InvoiceService struct {
	uow            billing.UnitOfWork
	repos          billing.RepositorySet
	taxEngine      *billing.TaxEngine
	clock          shared.Clock
	idempotency    shared.IdempotencyStore
	idempotencyCfg shared.IdempotencyConfig
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	uow billing.UnitOfWork,
	repos billing.RepositorySet,
	taxEngine *billing.TaxEngine,
	clock shared.Clock,
	idempotency shared.IdempotencyStore,
	idempotencyCfg shared.IdempotencyConfig,
) *InvoiceService {
	return &InvoiceService{
		uow:            uow,
		repos:          repos,
		taxEngine:      taxEngine,
		clock:          clock,
		idempotency:    idempotency,
		idempotencyCfg: idempotencyCfg,
	}
}

// CreateInvoiceRequest carries the inputs for invoice generation
type CreateInvoiceRequest struct {
	TenantID   int64
	ContractID uuid.UUID
	DueDate    time.Time
}

// CreateInvoice generates a pending invoice for an active contract.
// Number allocation and the invoice insert commit atomically; a
// number collision from a concurrent creation is retried once with a
// freshly allocated sequence before the conflict surfaces.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*billing.Invoice, error) {
	invoice, err := s.createInvoiceOnce(ctx, req)
	if err != nil && errors.Is(err, shared.ErrConflict) {
		logger.L(ctx).Warn("invoice number collision, retrying allocation",
			zap.String("contract_id", req.ContractID.String()))
		invoice, err = s.createInvoiceOnce(ctx, req)
	}
	return invoice, err
}

func (s *InvoiceService) createInvoiceOnce(ctx context.Context, req CreateInvoiceRequest) (*billing.Invoice, error) {
	var invoice *billing.Invoice
	err := s.uow.InTransaction(ctx, func(repos billing.RepositorySet) error {
		contract, err := repos.Contracts.FindByID(ctx, req.ContractID)
		if err != nil {
			return err
		}
		if !contract.IsActive() {
			return shared.NewDomainError("INVALID_STATE",
				"Cannot create invoice for "+string(contract.Status)+" contract")
		}
		if !contract.BelongsTo(req.TenantID) {
			logger.L(ctx).Warn("cross-tenant contract access rejected",
				zap.String("contract_id", contract.ID.String()),
				zap.Int64("owner_tenant_id", contract.TenantID),
				zap.Int64("request_tenant_id", req.TenantID))
			return shared.ErrForbidden
		}

		subtotal := contract.RentAmount
		taxAmount := s.taxEngine.CalculateTotal(subtotal)

		monthKey := billing.MonthKey(s.clock.Now())
		lastSeq, err := repos.Invoices.LastSequenceForMonth(ctx, req.TenantID, monthKey)
		if err != nil {
			return err
		}
		number := billing.FormatInvoiceNumber(req.TenantID, monthKey, lastSeq+1)

		invoice = billing.NewInvoice(req.TenantID, contract.ID, number, subtotal, taxAmount, req.DueDate)
		return repos.Invoices.Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}
	logger.L(ctx).Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("total", invoice.Total.StringFixed(2)))
	return invoice, nil
}

// RecordPaymentRequest carries the inputs for payment recording
type RecordPaymentRequest struct {
	TenantID  int64
	InvoiceID uuid.UUID
	Amount    decimal.Decimal
	Method    string
	Reference string
	// IdempotencyKey deduplicates client retries when non-empty
	IdempotencyKey string
}

// RecordPayment records a payment against an invoice and advances its
// status. The invoice row is locked for the transaction so that
// concurrent payments cannot both pass the remaining-balance check.
func (s *InvoiceService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*billing.Payment, error) {
	if req.IdempotencyKey != "" && s.idempotencyCfg.Enabled && s.idempotency != nil {
		processed, err := s.idempotency.IsProcessed(ctx, req.IdempotencyKey)
		if err != nil {
			logger.L(ctx).Warn("idempotency check failed, continuing without dedup", zap.Error(err))
		} else if processed {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Payment request already processed")
		}
	}

	var payment *billing.Payment
	err := s.uow.InTransaction(ctx, func(repos billing.RepositorySet) error {
		invoice, err := repos.Invoices.FindByIDForUpdate(ctx, req.InvoiceID)
		if err != nil {
			return err
		}
		if !invoice.BelongsTo(req.TenantID) {
			logger.L(ctx).Warn("cross-tenant invoice access rejected",
				zap.String("invoice_id", invoice.ID.String()),
				zap.Int64("owner_tenant_id", invoice.TenantID),
				zap.Int64("request_tenant_id", req.TenantID))
			return shared.ErrForbidden
		}

		totalPaidBefore, err := repos.Payments.SumAmountForInvoice(ctx, invoice.ID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		if err := invoice.ApplyPayment(req.Amount, totalPaidBefore, now); err != nil {
			return err
		}

		payment = &billing.Payment{
			BaseEntity: shared.NewBaseEntityAt(now),
			TenantID:   req.TenantID,
			InvoiceID:  invoice.ID,
			Amount:     req.Amount,
			Method:     req.Method,
			Reference:  req.Reference,
			PaidAt:     now,
		}
		if err := repos.Payments.Save(ctx, payment); err != nil {
			return err
		}
		return repos.Invoices.Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" && s.idempotencyCfg.Enabled && s.idempotency != nil {
		if _, err := s.idempotency.MarkProcessed(ctx, req.IdempotencyKey, s.idempotencyCfg.TTL); err != nil {
			logger.L(ctx).Warn("failed to mark payment request processed", zap.Error(err))
		}
	}

	logger.L(ctx).Info("payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("invoice_id", payment.InvoiceID.String()),
		zap.String("amount", payment.Amount.StringFixed(2)))
	return payment, nil
}

// GetContractSummary computes the financial rollup of a contract's
// invoices after verifying tenant ownership of the contract itself.
func (s *InvoiceService) GetContractSummary(ctx context.Context, contractID uuid.UUID, tenantID int64) (*ContractSummaryResult, error) {
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

	invoices, err := s.repos.Invoices.FindAllByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	withPaid := make([]billing.InvoiceWithPaid, 0, len(invoices))
	for _, invoice := range invoices {
		paid, err := s.repos.Payments.SumAmountForInvoice(ctx, invoice.ID)
		if err != nil {
			return nil, err
		}
		withPaid = append(withPaid, billing.InvoiceWithPaid{Invoice: invoice, TotalPaid: paid})
	}
	summary := billing.Summarize(withPaid)
	return NewContractSummaryResult(contract, summary), nil
}

// GetInvoice fetches a single invoice with its paid total and
// remaining balance, verifying tenant ownership.
func (s *InvoiceService) GetInvoice(ctx context.Context, invoiceID uuid.UUID, tenantID int64) (*InvoiceResult, error) {
	invoice, err := s.repos.Invoices.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.BelongsTo(tenantID) {
		return nil, shared.ErrForbidden
	}
	totalPaid, err := s.repos.Payments.SumAmountForInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	return NewInvoiceResult(invoice, totalPaid, s.clock.Now()), nil
}

// ListInvoices returns a page of a contract's invoices, newest first,
// verifying tenant ownership of the contract.
func (s *InvoiceService) ListInvoices(ctx context.Context, contractID uuid.UUID, tenantID int64, filter shared.Filter) (shared.Paginated[*InvoiceResult], error) {
	var empty shared.Paginated[*InvoiceResult]
	contract, err := s.repos.Contracts.FindByID(ctx, contractID)
	if err != nil {
		return empty, err
	}
	if !contract.BelongsTo(tenantID) {
		return empty, shared.ErrForbidden
	}

	page, err := s.repos.Invoices.FindByContract(ctx, contractID, filter)
	if err != nil {
		return empty, err
	}
	now := s.clock.Now()
	results := make([]*InvoiceResult, 0, len(page.Items))
	for _, invoice := range page.Items {
		totalPaid, err := s.repos.Payments.SumAmountForInvoice(ctx, invoice.ID)
		if err != nil {
			return empty, err
		}
		results = append(results, NewInvoiceResult(invoice, totalPaid, now))
	}
	return shared.Paginated[*InvoiceResult]{
		Items:      results,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// GetInvoiceDetail fetches an invoice together with its payment
// history, verifying tenant ownership. The paid total is derived from
// the returned payments so the view is internally consistent.
func (s *InvoiceService) GetInvoiceDetail(ctx context.Context, invoiceID uuid.UUID, tenantID int64) (*InvoiceDetailResult, error) {
	invoice, err := s.repos.Invoices.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.BelongsTo(tenantID) {
		return nil, shared.ErrForbidden
	}

	payments, err := s.repos.Payments.FindByInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}

	totalPaid := decimal.Zero
	results := make([]*PaymentResult, 0, len(payments))
	for _, payment := range payments {
		totalPaid = totalPaid.Add(payment.Amount)
		results = append(results, NewPaymentResult(payment))
	}
	return &InvoiceDetailResult{
		InvoiceResult: *NewInvoiceResult(invoice, totalPaid, s.clock.Now()),
		Payments:      results,
	}, nil
}
