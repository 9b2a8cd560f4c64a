package router

import (
	"github.com/bookkeep/backend/internal/interfaces/http/handler"
	"github.com/bookkeep/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	System         *handler.SystemHandler
	Account        *handler.AccountHandler
	Journal        *handler.JournalHandler
	Reconciliation *handler.ReconciliationHandler
	Report         *handler.ReportHandler
	Audit          *handler.AuditHandler
}

// New builds the gin engine with all middleware and routes mounted
func New(log *zap.Logger, h Handlers) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(),
		middleware.Tenant(),
		middleware.Actor(),
	)

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	v1 := engine.Group("/api/v1")
	{
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", h.Account.Create)
			accounts.GET("", h.Account.List)
			accounts.GET("/:id", h.Account.Get)
			accounts.PATCH("/:id", h.Account.Update)
			accounts.POST("/:id/activate", h.Account.Activate)
			accounts.POST("/:id/deactivate", h.Account.Deactivate)
			accounts.GET("/:id/balance", h.Account.Balance)
			accounts.GET("/:id/lines", h.Account.Lines)
		}

		bankAccounts := v1.Group("/bank-accounts")
		{
			bankAccounts.POST("", h.Account.CreateBankAccount)
			bankAccounts.GET("", h.Account.ListBankAccounts)
			bankAccounts.GET("/:id/reconciliation-candidates", h.Reconciliation.Candidates)
		}

		entries := v1.Group("/journal-entries")
		{
			entries.POST("", h.Journal.Create)
			entries.GET("/:id", h.Journal.Get)
			entries.POST("/:id/post", h.Journal.Post)
			entries.POST("/:id/void", h.Journal.Void)
			entries.POST("/:id/reverse", h.Journal.Reverse)
		}

		reconciliations := v1.Group("/reconciliations")
		{
			reconciliations.POST("", h.Reconciliation.Start)
			reconciliations.GET("", h.Reconciliation.List)
			reconciliations.GET("/:id", h.Reconciliation.Get)
			reconciliations.PUT("/:id/selection", h.Reconciliation.Save)
			reconciliations.POST("/:id/finish", h.Reconciliation.Finish)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/trial-balance", h.Report.TrialBalance)
			reports.GET("/profit-and-loss", h.Report.ProfitAndLoss)
			reports.GET("/balance-sheet", h.Report.BalanceSheet)
		}

		auditEntries := v1.Group("/audit-entries")
		{
			auditEntries.GET("", h.Audit.List)
			auditEntries.GET("/verify", h.Audit.VerifyChain)
		}
	}

	return engine
}
