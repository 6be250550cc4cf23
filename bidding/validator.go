// Package bidding holds the bid acceptance rule. It has no I/O so every
// storage adapter can run the same check inside its atomic update.
package bidding

import (
	"fmt"
	"math"
	"time"

	"auction-backend/auctionerrors"
	"auction-backend/models"
)

// MinimumAllowed is the amount a new bid has to exceed: the larger of the
// start price and the current highest bid.
func MinimumAllowed(p models.Product) float64 {
	minimum := p.StartPrice
	if p.CurrentBid != nil && *p.CurrentBid > minimum {
		minimum = *p.CurrentBid
	}
	return minimum
}

// State derives the auction lifecycle state at the given instant.
func State(p models.Product, now time.Time) models.AuctionState {
	switch {
	case !now.Before(p.EndOfAuction):
		return models.StateClosed
	case !p.IsApproved:
		return models.StatePending
	default:
		return models.StateOpen
	}
}

// Validate decides whether amount may be bid on p at time now.
func Validate(p models.Product, amount float64, now time.Time) error {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: amount must be a positive number", auctionerrors.ErrInvalidBid)
	}

	switch State(p, now) {
	case models.StateClosed:
		return fmt.Errorf("%w: ended at %s", auctionerrors.ErrAuctionClosed, p.EndOfAuction.UTC().Format(time.RFC3339))
	case models.StatePending:
		return auctionerrors.ErrAuctionNotOpen
	}

	if minimum := MinimumAllowed(p); amount <= minimum {
		return &auctionerrors.InsufficientBidError{Minimum: minimum}
	}
	return nil
}

// Apply appends bid to p and moves the current-bid fields along with it.
// Callers must have validated the bid first.
func Apply(p *models.Product, bid models.Bid) {
	amount := bid.BidAmount
	p.BidHistory = append(p.BidHistory, bid)
	p.CurrentBid = &amount
	p.CurrentBidderID = bid.BidderID
}

// CheckInvariants verifies that a full product record is self-consistent.
func CheckInvariants(p models.Product) error {
	if p.StartPrice < 0 || math.IsNaN(p.StartPrice) || math.IsInf(p.StartPrice, 0) {
		return fmt.Errorf("%w: start price must be non-negative", auctionerrors.ErrInvalidProduct)
	}
	for i, b := range p.BidHistory {
		if b.BidAmount <= 0 {
			return fmt.Errorf("%w: bid %d has a non-positive amount", auctionerrors.ErrInvalidProduct, i)
		}
	}

	if len(p.BidHistory) == 0 {
		if p.CurrentBid != nil || p.CurrentBidderID != "" {
			return fmt.Errorf("%w: current bid set without bid history", auctionerrors.ErrInvalidProduct)
		}
		return nil
	}

	last := p.BidHistory[len(p.BidHistory)-1]
	if p.CurrentBid == nil || *p.CurrentBid != last.BidAmount || p.CurrentBidderID != last.BidderID {
		return fmt.Errorf("%w: current bid must match the last bid in history", auctionerrors.ErrInvalidProduct)
	}
	if *p.CurrentBid <= p.StartPrice {
		return fmt.Errorf("%w: current bid must exceed the start price", auctionerrors.ErrInvalidProduct)
	}
	return nil
}
