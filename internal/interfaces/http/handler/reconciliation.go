package handler

import (
	ledgerapp "github.com/bookkeep/backend/internal/application/ledger"
	recapp "github.com/bookkeep/backend/internal/application/reconciliation"
	"github.com/bookkeep/backend/internal/domain/ledger"
	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/bookkeep/backend/internal/interfaces/http/dto"
	"github.com/bookkeep/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReconciliationHandler serves bank reconciliation endpoints
type ReconciliationHandler struct {
	BaseHandler
	service      *recapp.Service
	queryService *ledgerapp.QueryService
}

// NewReconciliationHandler creates a new ReconciliationHandler
func NewReconciliationHandler(service *recapp.Service, queryService *ledgerapp.QueryService) *ReconciliationHandler {
	return &ReconciliationHandler{
		service:      service,
		queryService: queryService,
	}
}

// Start handles POST /api/v1/reconciliations
func (h *ReconciliationHandler) Start(c *gin.Context) {
	var req recapp.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rec, err := h.service.Start(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rec)
}

// Get handles GET /api/v1/reconciliations/:id
func (h *ReconciliationHandler) Get(c *gin.Context) {
	recID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid reconciliation ID")
		return
	}

	rec, items, err := h.service.Get(c.Request.Context(), middleware.GetTenantID(c), recID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"reconciliation": rec, "items": items})
}

// List handles GET /api/v1/reconciliations
func (h *ReconciliationHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	listReq.Normalize()

	recs, err := h.service.List(c.Request.Context(), middleware.GetTenantID(c), shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, recs)
}

// SelectionRequest carries the line selection for save and finish
type SelectionRequest struct {
	LineIDs []uuid.UUID `json:"line_ids"`
}

// Save handles PUT /api/v1/reconciliations/:id/selection
func (h *ReconciliationHandler) Save(c *gin.Context) {
	recID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid reconciliation ID")
		return
	}
	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	progress, err := h.service.SaveProgress(c.Request.Context(), middleware.GetTenantID(c), recID, req.LineIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, progress)
}

// Finish handles POST /api/v1/reconciliations/:id/finish
func (h *ReconciliationHandler) Finish(c *gin.Context) {
	recID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid reconciliation ID")
		return
	}
	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rec, err := h.service.Finish(c.Request.Context(), middleware.GetTenantID(c), recID, req.LineIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rec)
}

// Candidates handles GET /api/v1/bank-accounts/:id/reconciliation-candidates
func (h *ReconciliationHandler) Candidates(c *gin.Context) {
	bankAccountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bank account ID")
		return
	}

	filter := ledger.LineFilter{Search: c.Query("search")}
	switch c.Query("direction") {
	case "DEBIT":
		direction := ledger.LineTypeDebit
		filter.Direction = &direction
	case "CREDIT":
		direction := ledger.LineTypeCredit
		filter.Direction = &direction
	}

	lines, err := h.queryService.AvailableForReconciliation(c.Request.Context(), middleware.GetTenantID(c), bankAccountID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lines)
}
