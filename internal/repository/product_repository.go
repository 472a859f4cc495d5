package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"product-management/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateSKU    = errors.New("product with this sku already exists")
	ErrDuplicateName   = errors.New("product with this name already exists for the brand")
)

// ProductRepository defines the interface for product data access. All calls
// honor the passed context's cancellation and deadline.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	ExistsByNameAndBrand(ctx context.Context, name, brand string) (bool, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a postgres-backed ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product. Unique-constraint violations on sku or
// (name, brand) are surfaced as ErrDuplicateSKU / ErrDuplicateName so two
// concurrent requests that both passed validation resolve to exactly one
// persisted product.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, brand, sku, category, price, release_date,
		                      image_url, is_available, stock_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Brand,
		product.SKU,
		product.Category,
		product.Price,
		product.ReleaseDate,
		nullString(product.ImageURL),
		product.IsAvailable,
		product.StockQuantity,
		product.CreatedAt,
		nullTime(product.UpdatedAt),
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "products_name_brand_key" {
				return ErrDuplicateName
			}
			return ErrDuplicateSKU
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// FindByID retrieves a product by ID.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, name, brand, sku, category, price, release_date,
		       image_url, is_available, stock_quantity, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves all products, newest first.
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, brand, sku, category, price, release_date,
		       image_url, is_available, stock_quantity, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// ExistsBySKU reports whether any product carries the given sku.
func (r *productRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE sku = $1)`, sku,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check sku existence: %w", err)
	}
	return exists, nil
}

// ExistsByNameAndBrand reports whether the brand already has a product with
// the given name.
func (r *productRepository) ExistsByNameAndBrand(ctx context.Context, name, brand string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE name = $1 AND brand = $2)`, name, brand,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check name existence: %w", err)
	}
	return exists, nil
}

// CountCreatedBetween counts products created in the half-open interval
// [from, to).
func (r *productRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE created_at >= $1 AND created_at < $2`, from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	var imageURL sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Brand,
		&product.SKU,
		&product.Category,
		&product.Price,
		&product.ReleaseDate,
		&imageURL,
		&product.IsAvailable,
		&product.StockQuantity,
		&product.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.ImageURL = imageURL.String
	if updatedAt.Valid {
		t := updatedAt.Time
		product.UpdatedAt = &t
	}

	return product, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
