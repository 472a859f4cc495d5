package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"product-management/internal/cache"
	"product-management/internal/config"
	"product-management/internal/metrics"
	custommiddleware "product-management/internal/middleware"
	"product-management/internal/repository"
	"product-management/internal/service"
	"product-management/internal/transport"
	"product-management/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

// NewServer assembles the router and wires the creation pipeline. A nil db
// selects the volatile in-memory store.
func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) *Server {
	// Create router
	router := chi.NewRouter()

	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize the product store
	var productRepo repository.ProductRepository
	if db != nil {
		productRepo = repository.NewProductRepository(db)
	} else {
		productRepo = repository.NewMemoryProductRepository()
	}

	// Redis backs the listing cache and rate limiting; both degrade
	// gracefully when it is unreachable.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	listingTTL := time.Duration(cfg.Redis.ListingTTLSec) * time.Second
	listingCache := cache.NewListingCache(redisClient, listingTTL, logger)

	// Initialize the validation pipeline
	keywords := cfg.Rules.Keywords()
	limits := cfg.Rules.Limits()
	businessRules := validation.NewBusinessRules(productRepo, keywords, limits, logger)
	requestValidator := validation.NewRequestValidator(productRepo, businessRules, keywords, logger)

	// Initialize services
	metricsSink := metrics.NewZapSink(logger)
	productService := service.NewProductService(productRepo, requestValidator, listingCache, metricsSink, logger)

	// Initialize handlers
	productHandler := transport.NewProductHandler(productService, logger)

	rateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.RequestsPerMinute,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit:products",
	}, logger)

	// Register routes
	productHandler.RegisterRoutes(router, rateLimit)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
