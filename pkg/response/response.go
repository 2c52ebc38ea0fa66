package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stocktrade-simulator/pkg/apperror"
)

// Response is the standard API response structure
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Error codes returned in the envelope
const (
	CodeOK                   = 0
	CodeBadRequest           = -1
	CodeUnauthorized         = -1001
	CodeForbidden            = -1002
	CodeNotFound             = -1003
	CodeConflict             = -1004
	CodeInsufficientFunds    = -2019
	CodeInsufficientHoldings = -2022
	CodeInternal             = -1
)

// Success sends a successful response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    CodeOK,
		Message: "created",
		Data:    data,
	})
}

// Error sends an error response
func Error(c *gin.Context, statusCode int, code int, message string) {
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest sends a 400 error response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeBadRequest, message)
}

// Unauthorized sends a 401 error response
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

// Forbidden sends a 403 error response
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, CodeForbidden, message)
}

// NotFound sends a 404 error response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

// Conflict sends a 409 error response
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, CodeConflict, message)
}

// InternalError sends a 500 error response
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeInternal, message)
}

// FromError maps a service error onto the matching HTTP response.
// Unclassified errors are reported as internal without their cause.
func FromError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		_ = c.Error(err)
		InternalError(c, "internal server error")
		return
	}

	msg := appErr.PublicMessage()
	switch appErr.Kind {
	case apperror.KindInvalidArgument:
		BadRequest(c, msg)
	case apperror.KindNotFound:
		NotFound(c, msg)
	case apperror.KindInsufficientFunds:
		Error(c, http.StatusBadRequest, CodeInsufficientFunds, msg)
	case apperror.KindInsufficientHoldings:
		Error(c, http.StatusBadRequest, CodeInsufficientHoldings, msg)
	case apperror.KindConflict:
		Conflict(c, msg)
	case apperror.KindUnauthorized:
		Unauthorized(c, msg)
	default:
		_ = c.Error(err)
		InternalError(c, msg)
	}
}

// Paginated is the paginated response structure
type Paginated struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// TotalPages returns the number of pages needed for total items
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return totalPages
}

// SuccessPaginated sends a successful paginated response
func SuccessPaginated(c *gin.Context, items interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeOK,
		Message: "success",
		Data: Paginated{
			Items:      items,
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: TotalPages(total, pageSize),
		},
	})
}
