package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"product-management/internal/cache"
	"product-management/internal/domain"
	"product-management/internal/metrics"
	"product-management/internal/repository"
	"product-management/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService defines the product business operations.
type ProductService interface {
	// Create runs the full creation pipeline: validate, persist, enrich.
	// A non-nil Result means the request was rejected by validation or a
	// duplicate conflict; a non-nil error means the store failed.
	Create(ctx context.Context, req *domain.CreateProductRequest) (*domain.EnrichedProduct, *validation.Result, error)

	// List returns the full product listing, served from the cache when warm.
	List(ctx context.Context) ([]*domain.Product, error)
}

type productService struct {
	repo      repository.ProductRepository
	validator *validation.RequestValidator
	listing   *cache.ListingCache
	sink      metrics.Sink
	logger    *zap.Logger
	now       func() time.Time
}

// NewProductService creates a new instance of ProductService.
func NewProductService(
	repo repository.ProductRepository,
	validator *validation.RequestValidator,
	listing *cache.ListingCache,
	sink metrics.Sink,
	logger *zap.Logger,
) ProductService {
	return &productService{
		repo:      repo,
		validator: validator,
		listing:   listing,
		sink:      sink,
		logger:    logger,
		now:       time.Now,
	}
}

// Create orchestrates one creation attempt. Exactly one metrics record is
// emitted per attempt, success or failure.
func (s *productService) Create(ctx context.Context, req *domain.CreateProductRequest) (*domain.EnrichedProduct, *validation.Result, error) {
	operationID := uuid.New().String()
	start := s.now()

	s.logger.Info("Creating product",
		zap.String("operation_id", operationID),
		zap.String("name", req.Name),
		zap.String("brand", req.Brand),
		zap.String("category", string(req.Category)),
		zap.String("sku", req.SKU),
	)

	result, err := s.validator.Validate(ctx, req)
	validationDuration := s.now().Sub(start)

	if err != nil {
		s.recordFailure(operationID, req, validationDuration, 0, s.now().Sub(start), err)
		return nil, nil, err
	}

	if !result.Valid() {
		s.record(metrics.CreationMetrics{
			OperationID:        operationID,
			ProductName:        req.Name,
			SKU:                req.SKU,
			Category:           req.Category,
			ValidationDuration: validationDuration,
			TotalDuration:      s.now().Sub(start),
			Success:            false,
			ErrorReason:        "validation failed",
		})
		return nil, result, nil
	}

	// Re-check just before the write: a concurrent request with the same sku
	// may have passed validation independently. The database constraint is
	// the final arbiter; this check merely shortens the window.
	exists, err := s.repo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		s.recordFailure(operationID, req, validationDuration, 0, s.now().Sub(start), err)
		return nil, nil, err
	}
	if exists {
		s.recordFailure(operationID, req, validationDuration, 0, s.now().Sub(start), repository.ErrDuplicateSKU)
		return nil, s.conflictResult(req), nil
	}

	createdAt := s.now().UTC()
	product := &domain.Product{
		ID:            uuid.New(),
		Name:          req.Name,
		Brand:         req.Brand,
		SKU:           req.SKU,
		Category:      req.Category,
		Price:         req.Price,
		ReleaseDate:   req.ReleaseDate,
		ImageURL:      req.ImageURL,
		IsAvailable:   req.Stock() > 0,
		StockQuantity: req.Stock(),
		CreatedAt:     createdAt,
	}

	persistStart := s.now()
	err = s.repo.Create(ctx, product)
	persistenceDuration := s.now().Sub(persistStart)

	if err != nil {
		s.recordFailure(operationID, req, validationDuration, persistenceDuration, s.now().Sub(start), err)

		// The constraint fired after our pre-write check: same conflict
		// shape as if the duplicate had been caught up front.
		if errors.Is(err, repository.ErrDuplicateSKU) || errors.Is(err, repository.ErrDuplicateName) {
			s.logger.Warn("Product creation lost uniqueness race",
				zap.String("operation_id", operationID),
				zap.String("sku", req.SKU),
			)
			return nil, s.conflictResult(req), nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.logger.Info("Product creation canceled",
				zap.String("operation_id", operationID),
				zap.String("sku", req.SKU),
			)
		} else {
			s.logger.Error("Product creation failed",
				zap.String("operation_id", operationID),
				zap.String("sku", req.SKU),
				zap.Error(err),
			)
		}
		return nil, nil, err
	}

	s.logger.Info("Product created successfully",
		zap.String("operation_id", operationID),
		zap.String("product_id", product.ID.String()),
	)

	// Best-effort: a stale listing until the next invalidation is acceptable.
	s.listing.Invalidate(ctx, cache.AllProductsKey)

	view := domain.Enrich(product, s.now())

	s.record(metrics.CreationMetrics{
		OperationID:         operationID,
		ProductName:         product.Name,
		SKU:                 product.SKU,
		Category:            product.Category,
		ValidationDuration:  validationDuration,
		PersistenceDuration: persistenceDuration,
		TotalDuration:       s.now().Sub(start),
		Success:             true,
	})

	return &view, nil, nil
}

// List serves the product listing, reading through the cache.
func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	if products, ok := s.listing.GetProducts(ctx); ok {
		return products, nil
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.listing.SetProducts(ctx, products)
	return products, nil
}

// conflictResult builds the duplicate-sku rejection. Pre-write checks and the
// database constraint both funnel through here so the user-visible shape is
// identical on either path.
func (s *productService) conflictResult(req *domain.CreateProductRequest) *validation.Result {
	result := &validation.Result{}
	result.Add("sku", fmt.Sprintf("Product with SKU '%s' already exists.", req.SKU))
	return result
}

func (s *productService) record(m metrics.CreationMetrics) {
	s.sink.Record(m)
}

func (s *productService) recordFailure(
	operationID string,
	req *domain.CreateProductRequest,
	validationDuration, persistenceDuration, totalDuration time.Duration,
	err error,
) {
	s.record(metrics.CreationMetrics{
		OperationID:         operationID,
		ProductName:         req.Name,
		SKU:                 req.SKU,
		Category:            req.Category,
		ValidationDuration:  validationDuration,
		PersistenceDuration: persistenceDuration,
		TotalDuration:       totalDuration,
		Success:             false,
		ErrorReason:         err.Error(),
	})
}
