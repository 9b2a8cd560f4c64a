package handler

import (
	auditapp "github.com/bookkeep/backend/internal/application/audit"
	"github.com/bookkeep/backend/internal/domain/audit"
	"github.com/bookkeep/backend/internal/interfaces/http/dto"
	"github.com/bookkeep/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditHandler serves audit trail and chain verification endpoints
type AuditHandler struct {
	BaseHandler
	queryService *auditapp.QueryService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(queryService *auditapp.QueryService) *AuditHandler {
	return &AuditHandler{queryService: queryService}
}

// List handles GET /api/v1/audit-entries
func (h *AuditHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	listReq.Normalize()

	filter := audit.Filter{
		EntityType: c.Query("entity_type"),
		Limit:      listReq.PageSize,
		Offset:     listReq.Offset(),
	}
	if raw := c.Query("entity_id"); raw != "" {
		entityID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid entity ID")
			return
		}
		filter.EntityID = &entityID
	}
	if raw := c.Query("batch_id"); raw != "" {
		batchID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid batch ID")
			return
		}
		filter.BatchID = &batchID
	}
	if raw := c.Query("event"); raw != "" {
		event := audit.Event(raw)
		if !event.IsValid() {
			h.BadRequest(c, "Invalid audit event")
			return
		}
		filter.Event = &event
	}

	entries, err := h.queryService.List(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// VerifyChain handles GET /api/v1/audit-entries/verify
func (h *AuditHandler) VerifyChain(c *gin.Context) {
	result, err := h.queryService.VerifyChain(c.Request.Context(), middleware.GetTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
