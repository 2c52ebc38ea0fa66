package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stocktrade-simulator/internal/cache"
	"github.com/stocktrade-simulator/internal/config"
	"github.com/stocktrade-simulator/internal/metrics"
	"github.com/stocktrade-simulator/internal/middleware"
	"github.com/stocktrade-simulator/internal/repository"
	"github.com/stocktrade-simulator/internal/service"
	"github.com/stocktrade-simulator/internal/stream"
	"gorm.io/gorm"
)

// Services bundles everything the HTTP layer calls into
type Services struct {
	Auth         *service.AuthService
	Account      *service.AccountService
	Instruments  *service.InstrumentService
	Trading      *service.TradingService
	Portfolio    *service.PortfolioService
	Transactions *service.TransactionService
	Watchlist    *service.WatchlistService
}

// NewServices wires the service layer over one set of repositories.
// priceCache may be nil.
func NewServices(repos *repository.Repositories, priceCache cache.PriceCache, cfg *config.Config) *Services {
	portfolio := service.NewPortfolioService(repos.Ledger, repos.Instruments)
	watchlist := service.NewWatchlistService(repos.Watchlist, repos.Instruments)

	return &Services{
		Auth:         service.NewAuthService(repos.Users, cfg.JWT, cfg.Trading),
		Account:      service.NewAccountService(repos.Users, repos.Ledger, portfolio, watchlist),
		Instruments:  service.NewInstrumentService(repos.Instruments, priceCache),
		Trading:      service.NewTradingService(repos, cfg.Trading),
		Portfolio:    portfolio,
		Transactions: service.NewTransactionService(repos.Ledger, repos.Users),
		Watchlist:    watchlist,
	}
}

// NewRouter builds the gin engine with every route mounted.
// hub may be nil, in which case /ws/prices is not served.
func NewRouter(db *gorm.DB, svc *Services, hub *stream.Hub, build BuildInfo) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLoggerMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(metrics.Middleware())

	health := NewHealthHandler(db, build)
	router.GET("/health", health.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	authMiddleware := middleware.AuthMiddleware(svc.Auth)

	v1 := router.Group("/api/v1")
	{
		// Public routes
		NewAuthHandler(svc.Auth).RegisterRoutes(v1)
		NewStockHandler(svc.Instruments).RegisterRoutes(v1)

		// Protected routes
		NewAccountHandler(svc.Account).RegisterRoutes(v1, authMiddleware)
		NewTradingHandler(svc.Trading).RegisterRoutes(v1, authMiddleware)
		NewPortfolioHandler(svc.Portfolio).RegisterRoutes(v1, authMiddleware)
		NewTransactionHandler(svc.Transactions).RegisterRoutes(v1, authMiddleware)
		NewWatchlistHandler(svc.Watchlist).RegisterRoutes(v1, authMiddleware)

		if hub != nil {
			v1.GET("/ws/prices", gin.WrapF(hub.ServeWS))
		}
	}

	return router
}
