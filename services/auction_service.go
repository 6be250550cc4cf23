package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"auction-backend/auctionerrors"
	"auction-backend/bidding"
	"auction-backend/models"
	"auction-backend/repository"
	"auction-backend/storage"
)

// AuctionService implements the product and bidding operations on top of a
// ProductRepository and a FileStore.
type AuctionService struct {
	repo  repository.ProductRepository
	files storage.FileStore
	now   func() time.Time
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(repo repository.ProductRepository, files storage.FileStore) *AuctionService {
	return &AuctionService{
		repo:  repo,
		files: files,
		now:   time.Now,
	}
}

// WithClock replaces the time source; tests use it to move past the end of an auction.
func (s *AuctionService) WithClock(now func() time.Time) *AuctionService {
	s.now = now
	return s
}

// Create stores a new product. The server owns the approval flag, the
// auction end and the bid fields; whatever the caller sent for them is dropped.
func (s *AuctionService) Create(ctx context.Context, in models.ProductInput, image *models.ImageUpload) (models.Product, error) {
	product := in.ToProduct()
	product.IsApproved = false
	product.EndOfAuction = s.now().UTC().Add(models.AuctionDuration)
	product.BidHistory = []models.Bid{}
	product.CurrentBid = nil
	product.CurrentBidderID = ""

	if err := bidding.CheckInvariants(product); err != nil {
		return models.Product{}, fmt.Errorf("service: %w", err)
	}

	ref, err := s.storeImage(ctx, in.ImageBase64, image)
	if err != nil {
		return models.Product{}, err
	}
	if ref != "" {
		product.Image = ref
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return models.Product{}, fmt.Errorf("service: failed to create product: %w", err)
	}
	return created, nil
}

// Get returns a single product.
func (s *AuctionService) Get(ctx context.Context, id string) (models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, fmt.Errorf("service: %w", err)
	}
	return product, nil
}

// List returns every stored product, approved or not.
func (s *AuctionService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}
	return products, nil
}

// ListOpen returns the public catalog: approved products whose auction has
// not ended, soonest ending first.
func (s *AuctionService) ListOpen(ctx context.Context) ([]models.Product, error) {
	return s.filter(ctx, func(p models.Product, now time.Time) bool {
		return bidding.State(p, now) == models.StateOpen
	}, func(a, b models.Product) bool {
		return a.EndOfAuction.Before(b.EndOfAuction)
	})
}

// ListLeading returns the products on which userID currently holds the highest bid.
func (s *AuctionService) ListLeading(ctx context.Context, userID string) ([]models.Product, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidBid)
	}
	return s.filter(ctx, func(p models.Product, _ time.Time) bool {
		return p.CurrentBidderID == userID
	}, func(a, b models.Product) bool {
		return a.EndOfAuction.Before(b.EndOfAuction)
	})
}

func (s *AuctionService) filter(ctx context.Context, keep func(models.Product, time.Time) bool, less func(a, b models.Product) bool) ([]models.Product, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]models.Product, 0, len(all))
	for _, p := range all {
		if keep(p, now) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out, nil
}

// Update replaces the product stored at id. The path id wins, the start
// price may not change, and the record has to be internally consistent.
func (s *AuctionService) Update(ctx context.Context, id string, in models.ProductInput, image *models.ImageUpload) (models.Product, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, fmt.Errorf("service: %w", err)
	}

	product := in.ToProduct()
	product.ID = id
	if product.BidHistory == nil {
		product.BidHistory = []models.Bid{}
	}
	if product.StartPrice != current.StartPrice {
		return models.Product{}, fmt.Errorf("service: %w - start price cannot change", auctionerrors.ErrInvalidProduct)
	}
	if product.EndOfAuction.IsZero() {
		return models.Product{}, fmt.Errorf("service: %w - end of auction is required", auctionerrors.ErrInvalidProduct)
	}
	if err := bidding.CheckInvariants(product); err != nil {
		return models.Product{}, fmt.Errorf("service: %w", err)
	}
	// Bids are only added through PlaceBid; a history of a different length
	// was read before a bid landed or tries to rewrite the history.
	if len(product.BidHistory) != len(current.BidHistory) {
		return models.Product{}, fmt.Errorf("service: %w", auctionerrors.ErrUpdateConflict)
	}

	ref, err := s.storeImage(ctx, in.ImageBase64, image)
	if err != nil {
		return models.Product{}, err
	}
	if ref != "" {
		product.Image = ref
	}

	updated, err := s.repo.Update(ctx, id, product)
	if err != nil {
		return models.Product{}, fmt.Errorf("service: failed to update product %s: %w", id, err)
	}
	return updated, nil
}

// SetApproval opens or withdraws a product for bidding.
func (s *AuctionService) SetApproval(ctx context.Context, id string, approved bool) (models.Product, error) {
	product, err := s.repo.SetApproval(ctx, id, approved)
	if err != nil {
		return models.Product{}, fmt.Errorf("service: failed to set approval on product %s: %w", id, err)
	}
	return product, nil
}

// Delete removes a product.
func (s *AuctionService) Delete(ctx context.Context, id string) error {
	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("service: failed to delete product %s: %w", id, err)
	}
	if !existed {
		return fmt.Errorf("service: delete product %s: %w", id, auctionerrors.ErrProductNotFound)
	}
	return nil
}

// PlaceBid validates amount against the product's current state, stamps the
// bid with the server time and hands it to the repository's atomic AddBid.
func (s *AuctionService) PlaceBid(ctx context.Context, id, bidderID string, amount float64) (models.Product, error) {
	if bidderID == "" {
		return models.Product{}, fmt.Errorf("service: %w - missing bidder", auctionerrors.ErrInvalidBid)
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, fmt.Errorf("service: %w", err)
	}

	now := s.now().UTC()
	if err := bidding.Validate(product, amount, now); err != nil {
		return models.Product{}, fmt.Errorf("service: %w", err)
	}

	bid := models.Bid{
		BidderID:  bidderID,
		BidAmount: amount,
		BidTime:   now,
	}
	updated, err := s.repo.AddBid(ctx, id, bid)
	if err != nil {
		return models.Product{}, fmt.Errorf("service: failed to record bid on product %s by %s: %w", id, bidderID, err)
	}
	return updated, nil
}

// Stats counts products per auction state and bids overall.
func (s *AuctionService) Stats(ctx context.Context) (models.Stats, error) {
	all, err := s.List(ctx)
	if err != nil {
		return models.Stats{}, err
	}

	now := s.now()
	stats := models.Stats{TotalProducts: len(all)}
	for _, p := range all {
		switch bidding.State(p, now) {
		case models.StatePending:
			stats.PendingAuctions++
		case models.StateOpen:
			stats.OpenAuctions++
		case models.StateClosed:
			stats.ClosedAuctions++
		}
		stats.TotalBids += len(p.BidHistory)
	}
	return stats, nil
}

func (s *AuctionService) storeImage(ctx context.Context, encoded string, image *models.ImageUpload) (string, error) {
	var (
		data     []byte
		filename string
		err      error
	)
	switch {
	case image != nil:
		data, filename = image.Data, image.Filename
		if err = storage.CheckImage(data); err != nil {
			return "", fmt.Errorf("service: %w", err)
		}
	case encoded != "":
		if data, err = storage.DecodeBase64Image(encoded); err != nil {
			return "", fmt.Errorf("service: %w", err)
		}
	default:
		return "", nil
	}

	ref, err := s.files.Upload(ctx, filename, data)
	if err != nil {
		return "", fmt.Errorf("service: %w", err)
	}
	return ref, nil
}
