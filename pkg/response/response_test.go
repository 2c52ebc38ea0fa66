package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stocktrade-simulator/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFromErrorMapsKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   int
	}{
		{"invalid argument", apperror.InvalidArgument("quantity must be a positive integer"), http.StatusBadRequest, CodeBadRequest},
		{"not found", apperror.NotFound("stock not found"), http.StatusNotFound, CodeNotFound},
		{"funds", apperror.InsufficientFunds("10.00", "5.00"), http.StatusBadRequest, CodeInsufficientFunds},
		{"holdings", apperror.InsufficientHoldings(1, 2), http.StatusBadRequest, CodeInsufficientHoldings},
		{"conflict", apperror.Conflict("stock already in watchlist"), http.StatusConflict, CodeConflict},
		{"plain", errors.New("driver: bad connection"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotContains(t, body.Message, "driver")
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 0, TotalPages(5, 0))
}
