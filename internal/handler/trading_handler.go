package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stocktrade-simulator/internal/middleware"
	"github.com/stocktrade-simulator/internal/service"
	"github.com/stocktrade-simulator/pkg/response"
)

// TradingHandler handles buy and sell requests
type TradingHandler struct {
	tradingService *service.TradingService
}

// NewTradingHandler creates a new TradingHandler
func NewTradingHandler(tradingService *service.TradingService) *TradingHandler {
	return &TradingHandler{
		tradingService: tradingService,
	}
}

type tradeFunc func(*gin.Context, *service.TradeRequest) (*service.TradeResult, error)

func (h *TradingHandler) handle(c *gin.Context, fn tradeFunc) {
	var req service.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.UserID = middleware.GetUserID(c)

	result, err := fn(c, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, result)
}

// Buy buys shares at the current price
// POST /api/v1/trades/buy
func (h *TradingHandler) Buy(c *gin.Context) {
	h.handle(c, func(c *gin.Context, req *service.TradeRequest) (*service.TradeResult, error) {
		return h.tradingService.Buy(c.Request.Context(), req)
	})
}

// Sell sells owned shares at the current price
// POST /api/v1/trades/sell
func (h *TradingHandler) Sell(c *gin.Context) {
	h.handle(c, func(c *gin.Context, req *service.TradeRequest) (*service.TradeResult, error) {
		return h.tradingService.Sell(c.Request.Context(), req)
	})
}

// RegisterRoutes registers trading routes
func (h *TradingHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	trades := rg.Group("/trades")
	trades.Use(authMiddleware, middleware.TradingLoggerMiddleware())
	{
		trades.POST("/buy", h.Buy)
		trades.POST("/sell", h.Sell)
	}
}
