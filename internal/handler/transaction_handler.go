package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stocktrade-simulator/internal/middleware"
	"github.com/stocktrade-simulator/internal/service"
	"github.com/stocktrade-simulator/pkg/response"
)

// TransactionHandler handles ledger history and export requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// List returns the user's filtered transaction history, newest first
// GET /api/v1/transactions?type=BUY&instrumentId=1&search=app&fromDate=2024-01-01&toDate=2024-01-31&page=1&limit=20
func (h *TransactionHandler) List(c *gin.Context) {
	var req service.ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	page, err := h.transactionService.List(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessPaginated(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ExportCSV downloads the filtered history as CSV
// GET /api/v1/transactions/export.csv
func (h *TransactionHandler) ExportCSV(c *gin.Context) {
	h.export(c, "csv", "text/csv; charset=utf-8", h.transactionService.ExportCSV)
}

// ExportPDF downloads the filtered history as a PDF statement
// GET /api/v1/transactions/export.pdf
func (h *TransactionHandler) ExportPDF(c *gin.Context) {
	h.export(c, "pdf", "application/pdf", h.transactionService.ExportPDF)
}

type exportFunc func(ctx context.Context, userID uint, req *service.ListTransactionsRequest, w io.Writer) error

// export renders the whole document before writing so failures still get a JSON error
func (h *TransactionHandler) export(c *gin.Context, ext, contentType string, render exportFunc) {
	var req service.ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := render(c.Request.Context(), middleware.GetUserID(c), &req, &buf); err != nil {
		response.FromError(c, err)
		return
	}

	filename := fmt.Sprintf("transactions-%s.%s", time.Now().UTC().Format("20060102"), ext)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// RegisterRoutes registers transaction routes
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	transactions := rg.Group("/transactions")
	transactions.Use(authMiddleware)
	{
		transactions.GET("", h.List)
		transactions.GET("/export.csv", h.ExportCSV)
		transactions.GET("/export.pdf", h.ExportPDF)
	}
}
