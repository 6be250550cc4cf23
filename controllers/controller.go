package controllers

import (
	"context"
	"time"

	"auction-backend/models"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=controller.go -destination=mock_controller.go -package=controllers

// AuctionService is what the product handlers need from the service layer.
type AuctionService interface {
	Create(ctx context.Context, in models.ProductInput, image *models.ImageUpload) (models.Product, error)
	Get(ctx context.Context, id string) (models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	ListOpen(ctx context.Context) ([]models.Product, error)
	ListLeading(ctx context.Context, userID string) ([]models.Product, error)
	Update(ctx context.Context, id string, in models.ProductInput, image *models.ImageUpload) (models.Product, error)
	SetApproval(ctx context.Context, id string, approved bool) (models.Product, error)
	Delete(ctx context.Context, id string) error
	PlaceBid(ctx context.Context, id, bidderID string, amount float64) (models.Product, error)
	Stats(ctx context.Context) (models.Stats, error)
}

// AuthService is what the auth handlers and middleware need.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.Session, error)
	Authenticate(ctx context.Context, token string) (models.Claims, error)
	Logout(ctx context.Context, claims models.Claims) error
	Profile(ctx context.Context, userID string) (models.User, error)
}

const defaultTimeout = 10 * time.Second

// Controller holds the dependencies shared by every handler.
type Controller struct {
	Auctions AuctionService
	Auth     AuthService
	// Ping reports whether the backing store is reachable. Nil means there is
	// no external store to check.
	Ping    func(ctx context.Context) error
	Version string
	Timeout time.Duration
}

func (ctrl *Controller) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	timeout := ctrl.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}
