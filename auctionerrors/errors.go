package auctionerrors

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// business logic errors
var (
	ErrInvalidProduct = errors.New("invalid product")
	ErrInvalidBid     = errors.New("invalid bid")
	ErrBidTooLow      = errors.New("bid amount too low")
	ErrAuctionClosed  = errors.New("auction closed")
	ErrAuctionNotOpen = errors.New("auction not open for bidding")
	ErrUpload         = errors.New("image upload failed")
	ErrUpdateConflict = errors.New("product changed since it was read")
)

// auth errors
var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)

// InsufficientBidError reports a bid at or below the minimum allowed amount.
type InsufficientBidError struct {
	Minimum float64
}

func (e *InsufficientBidError) Error() string {
	return fmt.Sprintf("%s: must exceed %.2f", ErrBidTooLow, e.Minimum)
}

// Is makes errors.Is(err, ErrBidTooLow) match.
func (e *InsufficientBidError) Is(target error) bool {
	return target == ErrBidTooLow
}
