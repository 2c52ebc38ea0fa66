package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/stocktrade-simulator/internal/cache"
	"github.com/stocktrade-simulator/internal/handler"
	"github.com/stocktrade-simulator/internal/middleware"
	"github.com/stocktrade-simulator/internal/repository"
	"github.com/stocktrade-simulator/internal/seed"
	"github.com/stocktrade-simulator/internal/stream"
	"github.com/stocktrade-simulator/internal/worker"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the price simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(parent context.Context, opts *rootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	if err := middleware.InitLogger(cfg.Log.Dir); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)
	if gin.IsDebugging() {
		middleware.LogDebug("config: database=%s redis=%t simulator=%t interval=%s volatility=%g workers=%d",
			describeDatabase(cfg), cfg.Redis.Enabled, cfg.Simulator.Enabled,
			cfg.Simulator.Interval, cfg.Simulator.Volatility, cfg.Simulator.Workers)
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := initDatabase(cfg)
	if err != nil {
		return fmt.Errorf("connect database %s: %w", describeDatabase(cfg), err)
	}
	defer closeDatabase(db)

	if err := repository.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	repos := repository.New(db)

	if cfg.Seed.OnStartup {
		if _, err := seed.New(repos.Instruments).SeedIfEmpty(ctx); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	hub := stream.NewHub()
	go hub.Run(ctx)

	simulator := worker.NewMarketSimulator(repos.Instruments, cfg.Simulator)
	priceTTL := 3 * cfg.Simulator.Interval

	// With Redis, every cached tick is also published and the hub listens on the
	// channel, so clients on any instance see the same stream.
	var priceCache cache.PriceCache
	rdb := initRedis(ctx, cfg)
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Printf("Error closing Redis connection: %v", err)
			}
		}()
		redisCache := cache.NewRedisPriceCache(rdb, priceTTL)
		priceCache = redisCache
		go func() {
			if err := redisCache.Subscribe(ctx, hub); err != nil && ctx.Err() == nil {
				log.Printf("Price stream subscription ended: %v", err)
			}
		}()
	} else {
		priceCache = cache.NewMemoryPriceCache(priceTTL)
		simulator.Subscribe(hub)
	}

	services := handler.NewServices(repos, priceCache, cfg)
	simulator.Subscribe(services.Instruments)

	if cfg.Simulator.Enabled {
		go simulator.Start(ctx)
	}

	router := handler.NewRouter(db, services, hub, handler.BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	simulator.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited properly")
	return nil
}
