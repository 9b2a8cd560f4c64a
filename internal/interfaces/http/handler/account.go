package handler

import (
	ledgerapp "github.com/bookkeep/backend/internal/application/ledger"
	"github.com/bookkeep/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountHandler serves chart-of-accounts and bank account endpoints
type AccountHandler struct {
	BaseHandler
	accountService *ledgerapp.AccountService
	queryService   *ledgerapp.QueryService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *ledgerapp.AccountService, queryService *ledgerapp.QueryService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		queryService:   queryService,
	}
}

// Create handles POST /api/v1/accounts
func (h *AccountHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

// Get handles GET /api/v1/accounts/:id
func (h *AccountHandler) Get(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.queryService.GetAccount(c.Request.Context(), middleware.GetTenantID(c), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// List handles GET /api/v1/accounts
func (h *AccountHandler) List(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"

	accounts, err := h.queryService.ListAccounts(c.Request.Context(), middleware.GetTenantID(c), activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, accounts)
}

// Update handles PATCH /api/v1/accounts/:id
func (h *AccountHandler) Update(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	var req ledgerapp.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), middleware.GetTenantID(c), accountID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// Deactivate handles POST /api/v1/accounts/:id/deactivate
func (h *AccountHandler) Deactivate(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.accountService.DeactivateAccount(c.Request.Context(), middleware.GetTenantID(c), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// Activate handles POST /api/v1/accounts/:id/activate
func (h *AccountHandler) Activate(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.accountService.ActivateAccount(c.Request.Context(), middleware.GetTenantID(c), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// Balance handles GET /api/v1/accounts/:id/balance
func (h *AccountHandler) Balance(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	balance, err := h.queryService.Balance(c.Request.Context(), middleware.GetTenantID(c), accountID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balance)
}

// Lines handles GET /api/v1/accounts/:id/lines
func (h *AccountHandler) Lines(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lines, err := h.queryService.PostedLines(c.Request.Context(), middleware.GetTenantID(c), accountID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lines)
}

// CreateBankAccount handles POST /api/v1/bank-accounts
func (h *AccountHandler) CreateBankAccount(c *gin.Context) {
	var req ledgerapp.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bankAccount, err := h.accountService.CreateBankAccount(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, bankAccount)
}

// ListBankAccounts handles GET /api/v1/bank-accounts
func (h *AccountHandler) ListBankAccounts(c *gin.Context) {
	bankAccounts, err := h.queryService.ListBankAccounts(c.Request.Context(), middleware.GetTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bankAccounts)
}
