package auth

import (
	"fmt"
	"time"

	"auction-backend/auctionerrors"
	"auction-backend/models"
	"auction-backend/utils"

	"github.com/o1egl/paseto"
)

const tokenFooter = "auction-backend"

// TokenMaker issues and verifies PASETO v2 local tokens.
type TokenMaker struct {
	v2  *paseto.V2
	key []byte
	ttl time.Duration
}

func NewTokenMaker(key []byte, ttl time.Duration) (*TokenMaker, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("paseto key must be 32 bytes, got %d", len(key))
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &TokenMaker{v2: paseto.NewV2(), key: key, ttl: ttl}, nil
}

// Create issues a token for user that is valid from now for the configured TTL.
func (m *TokenMaker) Create(user models.User, now time.Time) (string, models.Claims, error) {
	claims := models.Claims{
		TokenID:   utils.GenerateID(),
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: now.Add(m.ttl),
	}

	jsonToken := paseto.JSONToken{
		Jti:        claims.TokenID,
		Subject:    user.ID,
		IssuedAt:   now,
		NotBefore:  now,
		Expiration: claims.ExpiresAt,
	}
	jsonToken.Set("role", user.Role)

	token, err := m.v2.Encrypt(m.key, jsonToken, tokenFooter)
	if err != nil {
		return "", models.Claims{}, fmt.Errorf("encrypt token: %w", err)
	}
	return token, claims, nil
}

// Verify decrypts token and checks it is valid at now.
func (m *TokenMaker) Verify(token string, now time.Time) (models.Claims, error) {
	var jsonToken paseto.JSONToken
	var footer string
	if err := m.v2.Decrypt(token, m.key, &jsonToken, &footer); err != nil {
		return models.Claims{}, fmt.Errorf("%w: %v", auctionerrors.ErrUnauthorized, err)
	}
	if footer != tokenFooter {
		return models.Claims{}, fmt.Errorf("%w: unexpected token footer", auctionerrors.ErrUnauthorized)
	}
	if err := jsonToken.Validate(paseto.ValidAt(now)); err != nil {
		return models.Claims{}, fmt.Errorf("%w: %v", auctionerrors.ErrUnauthorized, err)
	}
	if jsonToken.Subject == "" || !utils.IsValidID(jsonToken.Jti) {
		return models.Claims{}, fmt.Errorf("%w: token has no subject or id", auctionerrors.ErrUnauthorized)
	}

	return models.Claims{
		TokenID:   jsonToken.Jti,
		UserID:    jsonToken.Subject,
		Role:      jsonToken.Get("role"),
		ExpiresAt: jsonToken.Expiration,
	}, nil
}
