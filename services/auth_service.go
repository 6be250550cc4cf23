package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-backend/auctionerrors"
	"auction-backend/auth"
	"auction-backend/models"
	"auction-backend/utils"
)

// AuthService is the credential gateway: it registers users, exchanges
// credentials for bearer tokens and verifies those tokens on later requests.
type AuthService struct {
	users   auth.UserStore
	tokens  *auth.TokenMaker
	revoked auth.RevocationStore
	now     func() time.Time
}

func NewAuthService(users auth.UserStore, tokens *auth.TokenMaker, revoked auth.RevocationStore) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  tokens,
		revoked: revoked,
		now:     time.Now,
	}
}

// Register creates a regular user account.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return s.createUser(ctx, req, models.RoleUser)
}

func (s *AuthService) createUser(ctx context.Context, req models.RegisterRequest, role string) (models.User, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("auth: failed to hash password: %w", err)
	}

	user := models.User{
		ID:           utils.GenerateID(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		PasswordHash: hashed,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("auth: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// Login checks the credentials and issues a bearer token. Unknown emails and
// wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrUserNotFound) {
			return models.Session{}, auctionerrors.ErrInvalidCredentials
		}
		return models.Session{}, fmt.Errorf("auth: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return models.Session{}, auctionerrors.ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Create(user, s.now())
	if err != nil {
		return models.Session{}, fmt.Errorf("auth: %w", err)
	}
	return models.Session{
		Token:     token,
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// Authenticate verifies a bearer token and that it has not been logged out.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Claims, error) {
	claims, err := s.tokens.Verify(token, s.now())
	if err != nil {
		return models.Claims{}, err
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return models.Claims{}, fmt.Errorf("auth: %w", err)
	}
	if revoked {
		return models.Claims{}, fmt.Errorf("%w: token has been revoked", auctionerrors.ErrUnauthorized)
	}
	return claims, nil
}

// Logout revokes the token described by claims.
func (s *AuthService) Logout(ctx context.Context, claims models.Claims) error {
	if err := s.revoked.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
}

// Profile returns the user without its password hash.
func (s *AuthService) Profile(ctx context.Context, userID string) (models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("auth: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

// EnsureAdmin creates the administrator account if it does not exist yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.Role == models.RoleAdmin:
		return nil
	case err == nil:
		return fmt.Errorf("auth: %s is registered without admin rights", email)
	case !errors.Is(err, auctionerrors.ErrUserNotFound):
		return fmt.Errorf("auth: %w", err)
	}

	admin, err := s.createUser(ctx, models.RegisterRequest{Email: email, Password: password}, models.RoleAdmin)
	if err != nil {
		return err
	}
	utils.Info("administrator account created", map[string]any{"user_id": admin.ID, "email": admin.Email})
	return nil
}
