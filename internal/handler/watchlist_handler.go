package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stocktrade-simulator/internal/middleware"
	"github.com/stocktrade-simulator/internal/service"
	"github.com/stocktrade-simulator/pkg/response"
)

// WatchlistHandler handles watchlist requests
type WatchlistHandler struct {
	watchlistService *service.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler
func NewWatchlistHandler(watchlistService *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistService: watchlistService,
	}
}

type listWatchlistQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// List returns the user's watchlist
// GET /api/v1/watchlist?page=1&limit=50
func (h *WatchlistHandler) List(c *gin.Context) {
	var q listWatchlistQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, total, page, size, err := h.watchlistService.List(c.Request.Context(), middleware.GetUserID(c), q.Page, q.Limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessPaginated(c, items, total, page, size)
}

// Add puts a stock on the watchlist
// POST /api/v1/watchlist
func (h *WatchlistHandler) Add(c *gin.Context) {
	var req service.AddWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.watchlistService.Add(c.Request.Context(), middleware.GetUserID(c), req.InstrumentID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, entry)
}

// Remove deletes a watchlist entry
// DELETE /api/v1/watchlist/:id
func (h *WatchlistHandler) Remove(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.watchlistService.Remove(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

// RegisterRoutes registers watchlist routes
func (h *WatchlistHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	watchlist := rg.Group("/watchlist")
	watchlist.Use(authMiddleware)
	{
		watchlist.GET("", h.List)
		watchlist.POST("", h.Add)
		watchlist.DELETE("/:id", h.Remove)
	}
}
