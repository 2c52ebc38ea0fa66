package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stocktrade-simulator/internal/middleware"
	"github.com/stocktrade-simulator/internal/service"
	"github.com/stocktrade-simulator/pkg/response"
)

// PortfolioHandler handles holdings requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// GetPortfolio returns open holdings and the portfolio summary
// GET /api/v1/portfolio
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	p, err := h.portfolioService.ComputePortfolio(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, p)
}

// GetPosition returns the position in one instrument
// GET /api/v1/portfolio/:instrumentId
func (h *PortfolioHandler) GetPosition(c *gin.Context) {
	instrumentID, err := uintParam(c, "instrumentId")
	if err != nil {
		response.FromError(c, err)
		return
	}

	holding, err := h.portfolioService.ComputePosition(c.Request.Context(), middleware.GetUserID(c), instrumentID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, holding)
}

// RegisterRoutes registers portfolio routes
func (h *PortfolioHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	portfolio := rg.Group("/portfolio")
	portfolio.Use(authMiddleware)
	{
		portfolio.GET("", h.GetPortfolio)
		portfolio.GET("/:instrumentId", h.GetPosition)
	}
}
