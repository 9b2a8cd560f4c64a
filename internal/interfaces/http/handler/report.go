package handler

import (
	reportapp "github.com/bookkeep/backend/internal/application/report"
	"github.com/bookkeep/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves financial report endpoints
type ReportHandler struct {
	BaseHandler
	service *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *reportapp.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// TrialBalance handles GET /api/v1/reports/trial-balance?as_of=YYYY-MM-DD
func (h *ReportHandler) TrialBalance(c *gin.Context) {
	asOf, err := parseDateQueryRequired(c, "as_of")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tb, err := h.service.TrialBalance(c.Request.Context(), middleware.GetTenantID(c), asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tb)
}

// ProfitAndLoss handles GET /api/v1/reports/profit-and-loss?from=...&to=...
func (h *ReportHandler) ProfitAndLoss(c *gin.Context) {
	from, err := parseDateQueryRequired(c, "from")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	to, err := parseDateQueryRequired(c, "to")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	pl, err := h.service.ProfitAndLoss(c.Request.Context(), middleware.GetTenantID(c), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pl)
}

// BalanceSheet handles GET /api/v1/reports/balance-sheet?as_of=YYYY-MM-DD
func (h *ReportHandler) BalanceSheet(c *gin.Context) {
	asOf, err := parseDateQueryRequired(c, "as_of")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bs, err := h.service.BalanceSheet(c.Request.Context(), middleware.GetTenantID(c), asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bs)
}
