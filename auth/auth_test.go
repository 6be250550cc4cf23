package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"auction-backend/auctionerrors"
	"auction-backend/models"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestNewTokenMaker_Validation(t *testing.T) {
	_, err := NewTokenMaker([]byte("short"), time.Hour)
	require.Error(t, err)

	_, err = NewTokenMaker(testKey, 0)
	require.Error(t, err)
}

func TestTokenMaker_RoundTrip(t *testing.T) {
	maker, err := NewTokenMaker(testKey, time.Hour)
	require.NoError(t, err)

	now := time.Now()
	user := models.User{ID: "u1", Role: models.RoleAdmin}
	token, issued, err := maker.Create(user, now)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(token, "v2.local."))

	claims, err := maker.Verify(token, now.Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, models.RoleAdmin, claims.Role)
	require.Equal(t, issued.TokenID, claims.TokenID)
}

func TestTokenMaker_Rejects(t *testing.T) {
	maker, err := NewTokenMaker(testKey, time.Hour)
	require.NoError(t, err)
	other, err := NewTokenMaker([]byte("abcdef0123456789abcdef0123456789"), time.Hour)
	require.NoError(t, err)

	now := time.Now()
	token, _, err := maker.Create(models.User{ID: "u1", Role: models.RoleUser}, now)
	require.NoError(t, err)

	tests := []struct {
		name  string
		maker *TokenMaker
		token string
		at    time.Time
	}{
		{name: "expired", maker: maker, token: token, at: now.Add(2 * time.Hour)},
		{name: "wrong_key", maker: other, token: token, at: now},
		{name: "garbage", maker: maker, token: "v2.local.garbage", at: now},
		{name: "empty", maker: maker, token: "", at: now},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.maker.Verify(tc.token, tc.at)
			require.ErrorIs(t, err, auctionerrors.ErrUnauthorized)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)
	require.True(t, CheckPassword(hash, "s3cret-pass"))
	require.False(t, CheckPassword(hash, "wrong"))
}

func TestMemoryUserStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	require.NoError(t, store.Create(ctx, models.User{ID: "u1", Email: "Alice@Example.com"}))
	err := store.Create(ctx, models.User{ID: "u2", Email: "alice@example.com "})
	require.ErrorIs(t, err, auctionerrors.ErrUserExists)

	byEmail, err := store.FindByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	require.Equal(t, "u1", byEmail.ID)

	byID, err := store.FindByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", byID.Email)

	_, err = store.FindByID(ctx, "missing")
	require.ErrorIs(t, err, auctionerrors.ErrUserNotFound)
}

func TestMemoryRevocationStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Revoke(ctx, "t1", now.Add(time.Hour)))
	require.NoError(t, store.Revoke(ctx, "t-old", now.Add(-time.Hour)))

	revoked, err := store.IsRevoked(ctx, "t1")
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "t-old")
	require.NoError(t, err)
	require.False(t, revoked)

	// once the token would have expired the entry no longer matters
	now = now.Add(2 * time.Hour)
	revoked, err = store.IsRevoked(ctx, "t1")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestRedisRevocationStore_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	store := NewRedisRevocationStore(client)
	ctx := context.Background()

	// already-expired tokens never hit the network
	require.NoError(t, store.Revoke(ctx, "t1", time.Now().Add(-time.Second)))

	_, err := store.IsRevoked(ctx, "t1")
	require.ErrorIs(t, err, auctionerrors.ErrStorageUnavailable)

	err = store.Revoke(ctx, "t1", time.Now().Add(time.Hour))
	require.ErrorIs(t, err, auctionerrors.ErrStorageUnavailable)
}
