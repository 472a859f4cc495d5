package validation

import (
	"context"
	"fmt"
	"time"

	"product-management/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RuleStore is the subset of the product store the business rules consult.
type RuleStore interface {
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
}

// Limits holds the tunable thresholds for the business rules.
type Limits struct {
	DailyCreationCap    int
	ElectronicsMinPrice decimal.Decimal
	HomeMaxPrice        decimal.Decimal
	HighValuePrice      decimal.Decimal
	HighValueMaxStock   int
}

// DefaultLimits returns the production thresholds.
func DefaultLimits() Limits {
	return Limits{
		DailyCreationCap:    500,
		ElectronicsMinPrice: decimal.NewFromInt(50),
		HomeMaxPrice:        decimal.NewFromInt(200),
		HighValuePrice:      decimal.NewFromInt(500),
		HighValueMaxStock:   10,
	}
}

// BusinessRules evaluates the stateful creation checks against the store.
// Checks run in a fixed order and stop at the first failure.
type BusinessRules struct {
	store    RuleStore
	keywords Keywords
	limits   Limits
	logger   *zap.Logger
}

// NewBusinessRules creates a new rules engine.
func NewBusinessRules(store RuleStore, keywords Keywords, limits Limits, logger *zap.Logger) *BusinessRules {
	return &BusinessRules{
		store:    store,
		keywords: keywords,
		limits:   limits,
		logger:   logger,
	}
}

// Evaluate runs all business rules for a creation request. It returns the
// first failing rule's message, or ok=true if every rule passes. A non-nil
// error means a store query failed, not that a rule was violated.
func (b *BusinessRules) Evaluate(ctx context.Context, req *domain.CreateProductRequest, now time.Time) (ok bool, message string, err error) {
	ok, message, err = b.checkDailyCreationCap(ctx, now)
	if err != nil || !ok {
		return ok, message, err
	}

	if ok, message = b.checkElectronicsPriceFloor(req); !ok {
		return false, message, nil
	}

	if ok, message = b.checkHomeContentRestriction(req); !ok {
		return false, message, nil
	}

	if ok, message = b.checkHighValueStockCap(req); !ok {
		return false, message, nil
	}

	return true, "", nil
}

func (b *BusinessRules) checkDailyCreationCap(ctx context.Context, now time.Time) (bool, string, error) {
	today := now.UTC().Truncate(24 * time.Hour)
	tomorrow := today.AddDate(0, 0, 1)

	count, err := b.store.CountCreatedBetween(ctx, today, tomorrow)
	if err != nil {
		return false, "", fmt.Errorf("failed to count today's products: %w", err)
	}

	b.logger.Info("Daily product count",
		zap.Int("count", count),
		zap.Int("limit", b.limits.DailyCreationCap),
	)

	if count >= b.limits.DailyCreationCap {
		b.logger.Warn("Daily product limit reached", zap.Int("count", count))
		return false, fmt.Sprintf(
			"Daily product creation limit of %d has been reached. Please try again tomorrow.",
			b.limits.DailyCreationCap,
		), nil
	}

	return true, "", nil
}

func (b *BusinessRules) checkElectronicsPriceFloor(req *domain.CreateProductRequest) (bool, string) {
	if req.Category == domain.CategoryElectronics && req.Price.LessThan(b.limits.ElectronicsMinPrice) {
		b.logger.Warn("Electronics product price too low", zap.String("price", req.Price.String()))
		return false, fmt.Sprintf("Electronics products must have a minimum price of %s",
			domain.FormatPrice(b.limits.ElectronicsMinPrice))
	}
	return true, ""
}

func (b *BusinessRules) checkHomeContentRestriction(req *domain.CreateProductRequest) (bool, string) {
	if req.Category == domain.CategoryHome && !b.keywords.IsHomeAppropriate(req.Name) {
		b.logger.Warn("Home product contains restricted words", zap.String("name", req.Name))
		return false, "Home product name contains inappropriate content"
	}
	return true, ""
}

func (b *BusinessRules) checkHighValueStockCap(req *domain.CreateProductRequest) (bool, string) {
	if req.Price.GreaterThan(b.limits.HighValuePrice) && req.Stock() > b.limits.HighValueMaxStock {
		b.logger.Warn("High-value product stock exceeds limit",
			zap.String("price", req.Price.String()),
			zap.Int("stock", req.Stock()),
		)
		return false, fmt.Sprintf("Products valued over $%s cannot have more than %d units in stock",
			b.limits.HighValuePrice.String(), b.limits.HighValueMaxStock)
	}
	return true, ""
}
