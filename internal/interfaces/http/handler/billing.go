package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appbilling "github.com/rentora/backend/internal/application/billing"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/interfaces/http/dto"
)

// ContractHandler serves rental contract endpoints, including invoice
// issuance and the per-contract billing summary.
type ContractHandler struct {
	BaseHandler
	contracts *appbilling.ContractService
	invoices  *appbilling.InvoiceService
}

// NewContractHandler creates a new contract handler
func NewContractHandler(contracts *appbilling.ContractService, invoices *appbilling.InvoiceService) *ContractHandler {
	return &ContractHandler{contracts: contracts, invoices: invoices}
}

// RegisterRoutes registers contract routes on the given router group
func (h *ContractHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contracts := rg.Group("/contracts")
	{
		contracts.POST("", h.Create)
		contracts.GET("", h.List)
		contracts.GET("/:id", h.Get)
		contracts.POST("/:id/terminate", h.Terminate)
		contracts.POST("/:id/invoices", h.CreateInvoice)
		contracts.GET("/:id/invoices", h.ListInvoices)
		contracts.GET("/:id/summary", h.Summary)
	}
}

// Create registers a new rental contract for the caller's tenant
func (h *ContractHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity is required")
		return
	}

	var req CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contract, err := h.contracts.CreateContract(c.Request.Context(), appbilling.CreateContractRequest{
		TenantID:     tenantID,
		UnitName:     req.UnitName,
		CustomerName: req.CustomerName,
		RentAmount:   decimal.NewFromFloat(req.RentAmount),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, NewContractResponse(contract))
}

// Get returns a single contract owned by the caller's tenant
func (h *ContractHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity is required")
		return
	}
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	contract, err := h.contracts.GetContract(c.Request.Context(), contractID, tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, NewContractResponse(contract))
}

// List returns the tenant's contracts, paginated
func (h *ContractHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity is required")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.contracts.ListContracts(c.Request.Context(), tenantID, listFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]ContractResponse, 0, len(page.Items))
	for _, contract := range page.Items {
		items = append(items, NewContractResponse(contract))
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// Terminate ends an active contract
func (h *ContractHandler) Terminate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity is required")
		return
	}
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	contract, err := h.contracts.TerminateContract(c.Request.Context(), contractID, tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, NewContractResponse(contract))
}

// CreateInvoice issues a new invoice against an active contract
func (h *ContractHandler) CreateInvoice(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity is required")
		return
	}
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		h.BadRequest(c, "Due date must be in YYYY-MM-DD form")
		return
	}

	invoice, err := h.invoices.CreateInvoice(c.Request.Context(), appbilling.CreateInvoiceRequest{
		TenantID:   tenantID,
		ContractID: contractID,
		DueDate:    dueDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, NewInvoiceResponse(invoice))
}

// ListInvoices returns a contract's invoices, paginated and optionally
// filtered by status
func (h *ContractHandler) ListInvoices(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity is required")
		return
	}
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.invoices.ListInvoices(c.Request.Context(), contractID, tenantID, listFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Summary returns aggregate billing figures for a contract
func (h *ContractHandler) Summary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity is required")
		return
	}
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	summary, err := h.invoices.GetContractSummary(c.Request.Context(), contractID, tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// InvoiceHandler serves invoice detail and payment endpoints
type InvoiceHandler struct {
	BaseHandler
	invoices *appbilling.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoices *appbilling.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// RegisterRoutes registers invoice routes on the given router group
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.GET("/:id", h.Get)
		invoices.POST("/:id/payments", h.RecordPayment)
	}
}

// Get returns an invoice with its payment history and paid totals
func (h *InvoiceHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity is required")
		return
	}
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	detail, err := h.invoices.GetInvoiceDetail(c.Request.Context(), invoiceID, tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, detail)
}

// RecordPayment records a payment against an invoice. Clients may send
// an Idempotency-Key header to make retries safe.
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identity is required")
		return
	}
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.invoices.RecordPayment(c.Request.Context(), appbilling.RecordPaymentRequest{
		TenantID:       tenantID,
		InvoiceID:      invoiceID,
		Amount:         decimal.NewFromFloat(req.Amount),
		Method:         req.PaymentMethod,
		Reference:      req.ReferenceNumber,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, NewPaymentResponse(payment))
}

// listFilter converts a bound list request into a repository filter
func listFilter(req dto.ListRequest) shared.Filter {
	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Filters:  make(map[string]interface{}),
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.OrderBy != "" {
		filter.Filters["sort_by"] = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.Filters["sort_order"] = req.OrderDir
	}
	if from, err := time.Parse("2006-01-02", req.DateFrom); err == nil {
		filter.Filters["date_from"] = from
	}
	if to, err := time.Parse("2006-01-02", req.DateTo); err == nil {
		filter.Filters["date_to"] = to
	}
	return filter
}
