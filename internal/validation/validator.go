package validation

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"product-management/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	minReleaseDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	maxPrice       = decimal.NewFromInt(10000)
)

// Store is the subset of the product store the validator queries for
// uniqueness checks.
type Store interface {
	RuleStore
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	ExistsByNameAndBrand(ctx context.Context, name, brand string) (bool, error)
}

// RequestValidator validates creation requests. Violations across all fields
// are collected rather than short-circuited, so the caller gets the complete
// picture in one pass.
type RequestValidator struct {
	store    Store
	rules    *BusinessRules
	keywords Keywords
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewRequestValidator creates a validator backed by the given store and
// business rules engine.
func NewRequestValidator(store Store, rules *BusinessRules, keywords Keywords, logger *zap.Logger) *RequestValidator {
	v := validator.New()

	// Report violations under the json field name rather than the Go name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return &RequestValidator{
		store:    store,
		rules:    rules,
		keywords: keywords,
		validate: v,
		logger:   logger,
		now:      time.Now,
	}
}

// Validate runs structural, pattern, uniqueness, category-conditional,
// cross-field and business rules over the request. A non-nil error means a
// store lookup failed; rule violations are returned in the Result instead.
func (rv *RequestValidator) Validate(ctx context.Context, req *domain.CreateProductRequest) (*Result, error) {
	res := &Result{}
	now := rv.now().UTC()

	rv.applyStructuralRules(req, res)
	rv.applyPatternRules(req, res)

	if err := rv.applyUniquenessRules(ctx, req, res); err != nil {
		return nil, err
	}

	rv.applyCategoryRules(req, res, now)

	if !ExpensiveStockRule(req.Price, req.Stock(), req.Category, req.ReleaseDate, now) {
		res.Add(CrossFieldKey, "Expensive products (>$100) must have limited stock (<=20 units)")
	}

	ok, message, err := rv.rules.Evaluate(ctx, req, now)
	if err != nil {
		return nil, fmt.Errorf("business rule evaluation failed: %w", err)
	}
	if !ok {
		res.Add(CrossFieldKey, message)
	}

	if !res.Valid() {
		rv.logger.Warn("Product creation request failed validation",
			zap.String("sku", req.SKU),
			zap.Strings("fields", res.Fields()),
		)
	}

	return res, nil
}

// applyStructuralRules covers required fields and length/range bounds. The
// tag-driven checks handle the string and integer fields; price, date and
// category need explicit checks because their types carry no usable tags.
func (rv *RequestValidator) applyStructuralRules(req *domain.CreateProductRequest, res *Result) {
	if err := rv.validate.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				res.Add(fe.Field(), structuralMessage(fe))
			}
		}
	}

	if req.Category != "" && !req.Category.Valid() {
		res.Add("category", "Invalid product category")
	}

	if req.Price.LessThanOrEqual(decimal.Zero) {
		res.Add("price", "Price must be greater than 0")
	} else if req.Price.GreaterThanOrEqual(maxPrice) {
		res.Add("price", "Price must be less than $10,000")
	}

	if !req.ReleaseDate.IsZero() {
		if req.ReleaseDate.After(rv.now().UTC()) {
			res.Add("release_date", "Release date cannot be in the future")
		}
		if !req.ReleaseDate.After(minReleaseDate) {
			res.Add("release_date", "Release date cannot be before 1900")
		}
	}
}

func (rv *RequestValidator) applyPatternRules(req *domain.CreateProductRequest, res *Result) {
	if req.Name != "" && rv.keywords.ContainsInappropriateWord(req.Name) {
		res.Add("name", "Name contains inappropriate words")
	}

	if req.Brand != "" && !IsValidBrandCharset(req.Brand) {
		res.Add("brand", "Brand contains invalid characters")
	}

	if req.SKU != "" && !IsValidSKU(req.SKU) {
		res.Add("sku", "Invalid SKU format (5-20 alphanumeric characters with hyphens)")
	}

	if req.ImageURL != "" && !IsValidImageURL(req.ImageURL) {
		res.Add("image_url", "Invalid image URL format")
	}
}

func (rv *RequestValidator) applyUniquenessRules(ctx context.Context, req *domain.CreateProductRequest, res *Result) error {
	if req.Name != "" && req.Brand != "" {
		exists, err := rv.store.ExistsByNameAndBrand(ctx, req.Name, req.Brand)
		if err != nil {
			return fmt.Errorf("failed to check name uniqueness: %w", err)
		}
		if exists {
			rv.logger.Warn("Duplicate product name found",
				zap.String("name", req.Name),
				zap.String("brand", req.Brand),
			)
			res.Add("name", "Name must be unique per brand")
		}
	}

	if req.SKU != "" {
		exists, err := rv.store.ExistsBySKU(ctx, req.SKU)
		if err != nil {
			return fmt.Errorf("failed to check sku uniqueness: %w", err)
		}
		if exists {
			rv.logger.Warn("Duplicate SKU found", zap.String("sku", req.SKU))
			res.Add("sku", "SKU already exists")
		}
	}

	return nil
}

func (rv *RequestValidator) applyCategoryRules(req *domain.CreateProductRequest, res *Result, now time.Time) {
	switch req.Category {
	case domain.CategoryElectronics:
		if req.Price.LessThan(rv.rules.limits.ElectronicsMinPrice) {
			res.Add("price", "Electronics must cost at least $50.00")
		}
		if !rv.keywords.ContainsTechnologyKeyword(req.Name) {
			res.Add("name", "Electronics products must contain technology-related keywords")
		}
		if !req.ReleaseDate.After(now.AddDate(-5, 0, 0)) {
			res.Add("release_date", "Electronics must be released within the last 5 years")
		}

	case domain.CategoryHome:
		if req.Price.GreaterThan(rv.rules.limits.HomeMaxPrice) {
			res.Add("price", "Home products cannot exceed $200")
		}
		if !rv.keywords.IsHomeAppropriate(req.Name) {
			res.Add("name", "Home product name contains inappropriate content")
		}

	case domain.CategoryClothing:
		if len(req.Brand) > 0 && len(req.Brand) < 3 {
			res.Add("brand", "Clothing brand must be at least 3 characters")
		}
	}
}

func structuralMessage(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		switch fe.Field() {
		case "name":
			return "Product name is required"
		case "brand":
			return "Brand is required"
		case "sku":
			return "SKU is required"
		case "category":
			return "Product category is required"
		case "release_date":
			return "Release date is required"
		}
		return "This field is required"
	}

	switch fe.Tag() {
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "gte":
		return "Value must be greater than or equal to " + fe.Param()
	case "lte":
		return "Value must be less than or equal to " + fe.Param()
	default:
		return "Invalid value"
	}
}
