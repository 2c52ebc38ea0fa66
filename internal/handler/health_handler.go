package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BuildInfo identifies the running binary
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

// HealthHandler reports liveness and database reachability
type HealthHandler struct {
	db    *gorm.DB
	build BuildInfo
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *gorm.DB, build BuildInfo) *HealthHandler {
	return &HealthHandler{db: db, build: build}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	status, dbStatus, code := "ok", "ok", http.StatusOK
	if err := h.ping(c.Request.Context()); err != nil {
		status, dbStatus, code = "degraded", err.Error(), http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":     status,
		"database":   dbStatus,
		"version":    h.build.Version,
		"commit":     h.build.Commit,
		"build_time": h.build.BuildTime,
		"time":       time.Now().Unix(),
	})
}

func (h *HealthHandler) ping(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
