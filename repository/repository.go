package repository

import (
	"context"

	"auction-backend/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// ProductRepository is the storage contract for products and their bids.
// Every method addresses a single product document.
type ProductRepository interface {
	// Create assigns a fresh id, overwriting any caller-supplied one.
	Create(ctx context.Context, product models.Product) (models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	// Update replaces the whole record stored at id.
	Update(ctx context.Context, id string, product models.Product) (models.Product, error)
	// SetApproval flips only the approval flag, leaving bids untouched.
	SetApproval(ctx context.Context, id string, approved bool) (models.Product, error)
	// Delete reports whether a record existed.
	Delete(ctx context.Context, id string) (bool, error)
	// AddBid appends bid and moves the current-bid fields in one atomic step,
	// only if the bid still beats the stored minimum and the auction is open
	// at bid.BidTime.
	AddBid(ctx context.Context, id string, bid models.Bid) (models.Product, error)
}
