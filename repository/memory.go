package repository

import (
	"context"
	"fmt"
	"sync"

	"auction-backend/auctionerrors"
	"auction-backend/bidding"
	"auction-backend/models"
	"auction-backend/utils"
)

// MemoryRepo is a concurrency-safe in-memory ProductRepository.
type MemoryRepo struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

// NewMemoryRepo creates an empty in-memory repository.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		products: make(map[string]models.Product),
	}
}

func (r *MemoryRepo) Create(_ context.Context, product models.Product) (models.Product, error) {
	product = product.Clone()
	product.ID = utils.GenerateID()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = product
	return product.Clone(), nil
}

func (r *MemoryRepo) GetByID(_ context.Context, id string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return models.Product{}, fmt.Errorf("get product %s: %w", id, auctionerrors.ErrProductNotFound)
	}
	return p.Clone(), nil
}

func (r *MemoryRepo) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (r *MemoryRepo) Update(_ context.Context, id string, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.products[id]
	if !ok {
		return models.Product{}, fmt.Errorf("update product %s: %w", id, auctionerrors.ErrProductNotFound)
	}
	if len(stored.BidHistory) != len(product.BidHistory) {
		return models.Product{}, fmt.Errorf("update product %s: %w", id, auctionerrors.ErrUpdateConflict)
	}
	product = product.Clone()
	product.ID = id
	r.products[id] = product
	return product.Clone(), nil
}

func (r *MemoryRepo) SetApproval(_ context.Context, id string, approved bool) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return models.Product{}, fmt.Errorf("approve product %s: %w", id, auctionerrors.ErrProductNotFound)
	}
	p.IsApproved = approved
	r.products[id] = p
	return p.Clone(), nil
}

func (r *MemoryRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)
	return true, nil
}

func (r *MemoryRepo) AddBid(_ context.Context, id string, bid models.Bid) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return models.Product{}, fmt.Errorf("add bid to product %s: %w", id, auctionerrors.ErrProductNotFound)
	}
	if err := bidding.Validate(p, bid.BidAmount, bid.BidTime); err != nil {
		return models.Product{}, fmt.Errorf("add bid to product %s: %w", id, err)
	}

	p = p.Clone()
	bidding.Apply(&p, bid)
	r.products[id] = p
	return p.Clone(), nil
}
