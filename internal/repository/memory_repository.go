package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"product-management/internal/domain"

	"github.com/google/uuid"
)

// memoryProductRepository is a volatile in-memory ProductRepository. It backs
// the memory store driver and the unit tests; it enforces the same sku and
// name-per-brand uniqueness the postgres schema does.
type memoryProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*domain.Product
}

// NewMemoryProductRepository creates an empty in-memory ProductRepository.
func NewMemoryProductRepository() ProductRepository {
	return &memoryProductRepository{
		products: make(map[uuid.UUID]*domain.Product),
	}
}

func (r *memoryProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.SKU == product.SKU {
			return ErrDuplicateSKU
		}
		if p.Name == product.Name && p.Brand == product.Brand {
			return ErrDuplicateName
		}
	}

	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *memoryProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *memoryProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		clone := *p
		products = append(products, &clone)
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})

	return products, nil
}

func (r *memoryProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryProductRepository) ExistsByNameAndBrand(ctx context.Context, name, brand string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.Name == name && p.Brand == brand {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryProductRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, p := range r.products {
		if !p.CreatedAt.Before(from) && p.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}
