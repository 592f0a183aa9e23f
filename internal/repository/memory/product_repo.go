package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/DRSN-tech/pricing-api/internal/domain"
)

// ProductRepo — хранилище продуктов в памяти процесса, ключ — ID.
// Мьютекс защищает только карту: последовательность чтение-изменение-сохранение
// одного продукта не сериализуется.
type ProductRepo struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
}

func NewProductRepo(products ...*domain.Product) *ProductRepo {
	repo := &ProductRepo{
		products: make(map[int64]*domain.Product, len(products)),
	}
	for _, p := range products {
		repo.products[p.ID] = p.Clone()
	}

	return repo
}

// GetAll возвращает копии всех продуктов, упорядоченные по ID.
func (r *ProductRepo) GetAll(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, p.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

// GetByID возвращает копию продукта или (nil, nil), если его нет.
func (r *ProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}

	return p.Clone(), nil
}

// Save заменяет сохранённое состояние продукта.
func (r *ProductRepo) Save(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[product.ID] = product.Clone()
	return nil
}
