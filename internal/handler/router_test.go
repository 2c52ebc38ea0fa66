package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stocktrade-simulator/internal/config"
	"github.com/stocktrade-simulator/internal/models"
	"github.com/stocktrade-simulator/internal/repository"
	"github.com/stocktrade-simulator/internal/testutil"
	"github.com/stocktrade-simulator/pkg/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewTestDB(t)
	cfg := config.Default()
	cfg.JWT.Secret = "test-secret-that-is-long-enough-for-hs256"

	svc := NewServices(repository.New(db), nil, cfg)
	return &testServer{
		t:      t,
		db:     db,
		router: NewRouter(db, svc, nil, BuildInfo{Version: "test"}),
	}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}

func (s *testServer) signUp(email string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Test Trader",
		"email":    email,
		"mobile":   "9876543210",
		"password": "secret123",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": "secret123"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var token struct {
		AccessToken string `json:"access_token"`
	}
	decode(s.t, w, &token)
	require.NotEmpty(s.t, token.AccessToken)
	return token.AccessToken
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp("auth@example.com")

	w := s.do(http.MethodGet, "/api/v1/account/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile models.UserProfile
	decode(t, w, &profile)
	assert.Equal(t, "auth@example.com", profile.Email)
	assert.True(t, profile.Balance.Equal(decimal.NewFromInt(100000)), profile.Balance.String())

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "auth@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "Again", "email": "auth@example.com", "mobile": "9876543210", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"token": token})
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/account/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(http.MethodGet, "/api/v1/account/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStockRoutes(t *testing.T) {
	s := newTestServer(t)
	aapl := testutil.CreateInstrument(t, s.db, "AAPL", "Apple Inc.", "Technology", "180")
	testutil.CreateInstrument(t, s.db, "JPM", "JPMorgan Chase", "Banking", "150")

	w := s.do(http.MethodGet, "/api/v1/stocks?search=app&limit=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page struct {
		Items      []models.Instrument `json:"items"`
		Total      int64               `json:"total"`
		PageSize   int                 `json:"page_size"`
		TotalPages int                 `json:"total_pages"`
	}
	decode(t, w, &page)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 5, page.PageSize)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "AAPL", page.Items[0].Symbol)

	w = s.do(http.MethodGet, "/api/v1/stocks?sortBy=secret", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/stocks/sectors", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sectors []string
	decode(t, w, &sectors)
	assert.ElementsMatch(t, []string{"Banking", "Technology"}, sectors)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/v1/stocks/%d/quote", aapl.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var quote models.Quote
	decode(t, w, &quote)
	assert.True(t, quote.Price.Equal(decimal.NewFromInt(180)))

	w = s.do(http.MethodGet, "/api/v1/stocks/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.CodeNotFound, decode(t, w, nil).Code)

	w = s.do(http.MethodGet, "/api/v1/stocks/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTradingFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp("trader@example.com")
	inst := testutil.CreateInstrument(t, s.db, "AAPL", "Apple Inc.", "Technology", "100")

	w := s.do(http.MethodPost, "/api/v1/trades/buy", token, gin.H{"instrument_id": inst.ID, "quantity": 10, "notes": "first"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var result struct {
		Transaction models.LedgerEntry `json:"transaction"`
		Balance     decimal.Decimal    `json:"balance"`
	}
	decode(t, w, &result)
	assert.Equal(t, models.TradeSideBuy, result.Transaction.Side)
	assert.True(t, result.Balance.Equal(decimal.NewFromInt(99000)), result.Balance.String())
	assert.Len(t, result.Transaction.Reference, 26)

	w = s.do(http.MethodPost, "/api/v1/trades/sell", token, gin.H{"instrument_id": inst.ID, "quantity": 20})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w, nil)
	assert.Equal(t, response.CodeInsufficientHoldings, env.Code)
	assert.Equal(t, "insufficient holdings: you own 10 shares, trying to sell 20", env.Message)

	w = s.do(http.MethodPost, "/api/v1/trades/buy", token, gin.H{"instrument_id": inst.ID, "quantity": 5000})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeInsufficientFunds, decode(t, w, nil).Code)

	w = s.do(http.MethodPost, "/api/v1/trades/buy", token, gin.H{"instrument_id": inst.ID, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/trades/buy", token, gin.H{"instrument_id": 9999, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/v1/trades/sell", token, gin.H{"instrument_id": inst.ID, "quantity": 4})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/portfolio", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var portfolio struct {
		Holdings []struct {
			Symbol      string `json:"symbol"`
			NetQuantity int64  `json:"net_quantity"`
		} `json:"holdings"`
	}
	decode(t, w, &portfolio)
	require.Len(t, portfolio.Holdings, 1)
	assert.Equal(t, "AAPL", portfolio.Holdings[0].Symbol)
	assert.Equal(t, int64(6), portfolio.Holdings[0].NetQuantity)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/v1/portfolio/%d", inst.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/dashboard/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		NetInvestedAmount decimal.Decimal `json:"net_invested_amount"`
		HoldingsCount     int             `json:"holdings_count"`
	}
	decode(t, w, &summary)
	assert.True(t, summary.NetInvestedAmount.Equal(decimal.NewFromInt(600)), summary.NetInvestedAmount.String())
	assert.Equal(t, 1, summary.HoldingsCount)
}

func TestTransactionRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp("history@example.com")
	inst := testutil.CreateInstrument(t, s.db, "AAPL", "Apple Inc.", "Technology", "100")

	for _, path := range []string{"/api/v1/trades/buy", "/api/v1/trades/buy", "/api/v1/trades/sell"} {
		w := s.do(http.MethodPost, path, token, gin.H{"instrument_id": inst.ID, "quantity": 1})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(http.MethodGet, "/api/v1/transactions?type=buy&limit=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page struct {
		Items      []models.LedgerEntry `json:"items"`
		Total      int64                `json:"total"`
		TotalPages int                  `json:"total_pages"`
	}
	decode(t, w, &page)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "AAPL", page.Items[0].Instrument.Symbol)

	w = s.do(http.MethodGet, "/api/v1/transactions?type=HOLD", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/transactions/export.csv", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment;")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "Date,Reference,Stock,Type,Quantity,Price,TotalAmount,Notes", strings.TrimSpace(lines[0]))

	w = s.do(http.MethodGet, "/api/v1/transactions/export.pdf?type=SELL", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
}

func TestWatchlistRoutes(t *testing.T) {
	s := newTestServer(t)
	alice := s.signUp("alice@example.com")
	bob := s.signUp("bob@example.com")
	inst := testutil.CreateInstrument(t, s.db, "AAPL", "Apple Inc.", "Technology", "100")

	w := s.do(http.MethodPost, "/api/v1/watchlist", alice, gin.H{"instrument_id": inst.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var entry models.WatchlistEntry
	decode(t, w, &entry)

	w = s.do(http.MethodPost, "/api/v1/watchlist", alice, gin.H{"instrument_id": inst.ID})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodGet, "/api/v1/watchlist", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Total    int64 `json:"total"`
		PageSize int   `json:"page_size"`
	}
	decode(t, w, &page)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 50, page.PageSize)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/watchlist/%d", entry.ID), bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/watchlist/%d", entry.ID), alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthAndRequestID(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"test"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stocktrade_http_requests_total")
}
