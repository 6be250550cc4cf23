package models

import (
	"time"
)

// AuctionDuration is how long an auction stays open after the product is created.
const AuctionDuration = 30 * 24 * time.Hour

// Product is an auction lot together with its full bid history.
//
// CurrentBid and CurrentBidderID mirror the last element of BidHistory and are
// absent until the first bid is accepted.
type Product struct {
	ID              string    `json:"id" bson:"_id"`
	Name            string    `json:"name,omitempty" bson:"name,omitempty"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty"`
	Brand           string    `json:"brand,omitempty" bson:"brand,omitempty"`
	StartPrice      float64   `json:"start_price" bson:"start_price"`
	CurrentBid      *float64  `json:"current_bid,omitempty" bson:"current_bid,omitempty"`
	CurrentBidderID string    `json:"current_bidder_id,omitempty" bson:"current_bidder_id,omitempty"`
	Image           string    `json:"image,omitempty" bson:"image,omitempty"`
	EndOfAuction    time.Time `json:"end_of_auction" bson:"end_of_auction"`
	IsApproved      bool      `json:"is_approved" bson:"is_approved"`
	BidHistory      []Bid     `json:"bid_history" bson:"bid_history"`
}

// Bid is a single accepted offer. BidTime is always assigned by the server.
type Bid struct {
	BidderID  string    `json:"bidder_id" bson:"bidder_id"`
	BidAmount float64   `json:"bid_amount" bson:"bid_amount"`
	BidTime   time.Time `json:"bid_time" bson:"bid_time"`
}

// AuctionState is the derived lifecycle state of a product.
type AuctionState string

const (
	StatePending AuctionState = "pending"
	StateOpen    AuctionState = "open"
	StateClosed  AuctionState = "closed"
)

// Clone returns a deep copy so callers cannot alias a stored bid history.
func (p Product) Clone() Product {
	out := p
	if p.CurrentBid != nil {
		v := *p.CurrentBid
		out.CurrentBid = &v
	}
	out.BidHistory = append([]Bid{}, p.BidHistory...)
	return out
}

// ProductInput is the payload accepted on create and update.
type ProductInput struct {
	Name            string    `json:"name" form:"name"`
	Description     string    `json:"description" form:"description"`
	Brand           string    `json:"brand" form:"brand"`
	StartPrice      float64   `json:"start_price" form:"start_price" binding:"gte=0"`
	CurrentBid      *float64  `json:"current_bid,omitempty" form:"-"`
	CurrentBidderID string    `json:"current_bidder_id,omitempty" form:"-"`
	Image           string    `json:"image,omitempty" form:"-"`
	ImageBase64     string    `json:"image_base64,omitempty" form:"-"`
	EndOfAuction    time.Time `json:"end_of_auction" form:"-"`
	IsApproved      bool      `json:"is_approved" form:"-"`
	BidHistory      []Bid     `json:"bid_history" form:"-"`
}

// ToProduct copies the input into a Product. The image payload is not carried over.
func (in ProductInput) ToProduct() Product {
	return Product{
		Name:            in.Name,
		Description:     in.Description,
		Brand:           in.Brand,
		StartPrice:      in.StartPrice,
		CurrentBid:      in.CurrentBid,
		CurrentBidderID: in.CurrentBidderID,
		Image:           in.Image,
		EndOfAuction:    in.EndOfAuction,
		IsApproved:      in.IsApproved,
		BidHistory:      in.BidHistory,
	}
}

// ImageUpload carries raw image bytes from the HTTP layer to the file store.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// PlaceBidRequest is the body of POST /products/:id/bids.
type PlaceBidRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// ApprovalRequest is the body of PATCH /products/:id/approval.
type ApprovalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// Stats summarises the product collection.
type Stats struct {
	TotalProducts   int `json:"total_products"`
	PendingAuctions int `json:"pending_auctions"`
	OpenAuctions    int `json:"open_auctions"`
	ClosedAuctions  int `json:"closed_auctions"`
	TotalBids       int `json:"total_bids"`
}
