package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/adhamoui/splitpal/docs"
	"github.com/adhamoui/splitpal/internal/activity"
	"github.com/adhamoui/splitpal/internal/auth"
	"github.com/adhamoui/splitpal/internal/config"
	"github.com/adhamoui/splitpal/internal/database"
	"github.com/adhamoui/splitpal/internal/exchange"
	"github.com/adhamoui/splitpal/internal/friend"
	"github.com/adhamoui/splitpal/internal/settlement"
	"github.com/adhamoui/splitpal/internal/transaction"
	"github.com/adhamoui/splitpal/internal/transaction/split"
	"github.com/adhamoui/splitpal/internal/user"
	"github.com/adhamoui/splitpal/pkg/logging"
	mw "github.com/adhamoui/splitpal/pkg/middleware"
)

// @title           SplitPal API
// @version         1.0
// @description     Bill splitting with multi-currency balances, FIFO settlements and activity feeds.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	logging.Setup()
	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("connected to database")

	// Exchange rates: live fetching is optional, the cache backend
	// depends on whether Redis is configured.
	var fetcher exchange.Fetcher
	if cfg.RatesAPIURL != "" {
		fetcher = exchange.NewClient(cfg.RatesAPIURL)
	}
	var cache exchange.Cache
	if cfg.RedisAddr != "" {
		redisCache := exchange.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer redisCache.Close()
		cache = redisCache
		slog.Info("using redis rate cache", "addr", cfg.RedisAddr)
	} else {
		cache = exchange.NewInMemoryCache()
	}
	rates := exchange.NewProvider(fetcher, cache, cfg.RatesTTL)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	// Split strategy factory
	splitFactory := split.NewFactory()

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, jwtManager)
	userHandler := user.NewHandler(userService)

	// Transaction feature (with split factory and rate provider injected)
	transactionRepo := transaction.NewRepository(db)
	transactionService := transaction.NewService(transactionRepo, splitFactory, rates)
	transactionHandler := transaction.NewHandler(transactionService)

	// Friend feature
	friendRepo := friend.NewRepository(db)
	friendService := friend.NewService(friendRepo, userRepo, transactionRepo)
	friendHandler := friend.NewHandler(friendService)

	// Settlement feature
	settlementRepo := settlement.NewRepository(db)
	settlementService := settlement.NewService(settlementRepo, friendRepo, rates)
	settlementHandler := settlement.NewHandler(settlementService)

	// Activity feature
	activityService := activity.NewService(friendRepo, transactionRepo, settlementRepo)
	activityHandler := activity.NewHandler(activityService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", userHandler.AuthRoutes())

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(jwtManager))

			r.Mount("/users", userHandler.Routes())
			r.Mount("/friends", friendHandler.Routes())
			r.Mount("/transactions", transactionHandler.Routes())
			r.Mount("/settlements", settlementHandler.Routes())
			r.Mount("/activity", activityHandler.Routes())
		})
	})

	slog.Info("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
