package handler

import (
	ledgerapp "github.com/bookkeep/backend/internal/application/ledger"
	"github.com/bookkeep/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JournalHandler serves journal entry endpoints
type JournalHandler struct {
	BaseHandler
	journalService *ledgerapp.JournalService
	queryService   *ledgerapp.QueryService
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(journalService *ledgerapp.JournalService, queryService *ledgerapp.QueryService) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
		queryService:   queryService,
	}
}

// Create handles POST /api/v1/journal-entries
func (h *JournalHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// Get handles GET /api/v1/journal-entries/:id
func (h *JournalHandler) Get(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid journal entry ID")
		return
	}

	entry, err := h.queryService.GetEntry(c.Request.Context(), middleware.GetTenantID(c), entryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Post handles POST /api/v1/journal-entries/:id/post
func (h *JournalHandler) Post(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid journal entry ID")
		return
	}

	entry, err := h.journalService.PostEntry(c.Request.Context(), middleware.GetTenantID(c), entryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Void handles POST /api/v1/journal-entries/:id/void
func (h *JournalHandler) Void(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid journal entry ID")
		return
	}

	entry, err := h.journalService.VoidEntry(c.Request.Context(), middleware.GetTenantID(c), entryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Reverse handles POST /api/v1/journal-entries/:id/reverse
func (h *JournalHandler) Reverse(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid journal entry ID")
		return
	}
	var req ledgerapp.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), middleware.GetTenantID(c), entryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, reversal)
}
