package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stocktrade-simulator/internal/service"
	"github.com/stocktrade-simulator/pkg/response"
)

// StockHandler handles catalog and quote requests
type StockHandler struct {
	instrumentService *service.InstrumentService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(instrumentService *service.InstrumentService) *StockHandler {
	return &StockHandler{
		instrumentService: instrumentService,
	}
}

// List returns a page of the catalog
// GET /api/v1/stocks?page=1&limit=10&search=app&sector=Technology&sortBy=price&order=desc
func (h *StockHandler) List(c *gin.Context) {
	var req service.ListStocksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	insts, total, err := h.instrumentService.List(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessPaginated(c, insts, total, req.Page, req.Limit)
}

// ListSectors returns the distinct sectors
// GET /api/v1/stocks/sectors
func (h *StockHandler) ListSectors(c *gin.Context) {
	sectors, err := h.instrumentService.ListSectors(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, sectors)
}

// Get returns an instrument with its price history
// GET /api/v1/stocks/:id
func (h *StockHandler) Get(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	inst, err := h.instrumentService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, inst)
}

// GetQuote returns the latest quote
// GET /api/v1/stocks/:id/quote
func (h *StockHandler) GetQuote(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	quote, err := h.instrumentService.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, quote)
}

// RegisterRoutes registers catalog routes
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stocks := rg.Group("/stocks")
	{
		stocks.GET("", h.List)
		stocks.GET("/sectors", h.ListSectors)
		stocks.GET("/:id", h.Get)
		stocks.GET("/:id/quote", h.GetQuote)
	}
}
