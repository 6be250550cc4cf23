package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"auction-backend/auctionerrors"
	"auction-backend/utils"

	"github.com/gin-gonic/gin"
)

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, auctionerrors.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusBadRequest, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrInvalidProduct):
		return http.StatusBadRequest, "invalid product details"
	case errors.Is(err, auctionerrors.ErrAuctionClosed):
		return http.StatusConflict, "auction has ended"
	case errors.Is(err, auctionerrors.ErrAuctionNotOpen):
		return http.StatusConflict, "auction is not open for bidding"
	case errors.Is(err, auctionerrors.ErrUpdateConflict):
		return http.StatusConflict, "product was modified concurrently"
	case errors.Is(err, auctionerrors.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, auctionerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, auctionerrors.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, auctionerrors.ErrForbidden):
		return http.StatusForbidden, "admin rights required"
	case errors.Is(err, auctionerrors.ErrUpload):
		return http.StatusInternalServerError, "image upload failed"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// respondError writes the error envelope and logs the failure. Server errors
// never leak their cause to the client.
func respondError(c *gin.Context, handler string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)

	var extra []gin.H
	var low *auctionerrors.InsufficientBidError
	if errors.As(err, &low) {
		extra = append(extra, gin.H{"minimum_allowed": low.Minimum})
	}

	public := err
	if status >= http.StatusInternalServerError {
		public = errors.New(message)
	}
	utils.JSONError(c, status, public, message, extra...)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handler
	fields["status"] = status
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handler+": request failed", fields)
	} else {
		utils.Warn(handler+": request rejected", fields)
	}
}

// handleBindError sends a standardized JSON error for binding failures
func handleBindError(c *gin.Context, handler string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handler+": binding error", map[string]any{"error": err.Error()})
}

func logSuccess(handler, message string, fields map[string]any) {
	utils.Info(handler+": "+message, fields)
}
