package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"auction-backend/auctionerrors"
	"auction-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserStore persists registered users. Emails are compared case-insensitively.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
}

// MongoUserStore keeps users in their own collection.
type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(coll *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{coll: coll}
}

// EnsureIndexes creates the unique email index.
func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoUserStore) Create(ctx context.Context, user models.User) error {
	user.Email = normalizeEmail(user.Email)

	var existing models.User
	if err := s.coll.FindOne(ctx, bson.M{"email": user.Email}).Decode(&existing); err == nil {
		return fmt.Errorf("create user %s: %w", user.Email, auctionerrors.ErrUserExists)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("create user %s: %w", user.Email, auctionerrors.ErrUserExists)
		}
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}
	return nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findOne(ctx, bson.M{"email": normalizeEmail(email)})
}

func (s *MongoUserStore) FindByID(ctx context.Context, id string) (models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	var user models.User
	if err := s.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, auctionerrors.ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// MemoryUserStore is a UserStore for tests and local runs.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byID    map[string]models.User
	byEmail map[string]string
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

func (s *MemoryUserStore) Create(_ context.Context, user models.User) error {
	user.Email = normalizeEmail(user.Email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[user.Email]; ok {
		return fmt.Errorf("create user %s: %w", user.Email, auctionerrors.ErrUserExists)
	}
	s.byID[user.ID] = user
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return models.User{}, auctionerrors.ErrUserNotFound
	}
	return s.byID[id], nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byID[id]
	if !ok {
		return models.User{}, auctionerrors.ErrUserNotFound
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
