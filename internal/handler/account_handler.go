package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stocktrade-simulator/internal/middleware"
	"github.com/stocktrade-simulator/internal/service"
	"github.com/stocktrade-simulator/pkg/response"
)

// AccountHandler handles profile and dashboard requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// GetProfile returns the signed-in user's profile and balance
// GET /api/v1/account/me
func (h *AccountHandler) GetProfile(c *gin.Context) {
	profile, err := h.accountService.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, profile)
}

// GetDashboardSummary returns balance, net invested amount, and counts
// GET /api/v1/dashboard/summary
func (h *AccountHandler) GetDashboardSummary(c *gin.Context) {
	summary, err := h.accountService.GetDashboardSummary(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, summary)
}

// RegisterRoutes registers account routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	account := rg.Group("/account")
	account.Use(authMiddleware)
	{
		account.GET("/me", h.GetProfile)
	}

	dashboard := rg.Group("/dashboard")
	dashboard.Use(authMiddleware)
	{
		dashboard.GET("/summary", h.GetDashboardSummary)
	}
}
