package repository

import (
	"context"
	"errors"
	"fmt"

	"auction-backend/auctionerrors"
	"auction-backend/bidding"
	"auction-backend/models"
	"auction-backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo stores one product per document in a single collection.
type MongoRepo struct {
	coll *mongo.Collection
}

// NewMongoRepo wraps an existing collection handle. The client lifecycle is owned by the caller.
func NewMongoRepo(coll *mongo.Collection) *MongoRepo {
	return &MongoRepo{coll: coll}
}

func (r *MongoRepo) Create(ctx context.Context, product models.Product) (models.Product, error) {
	product.ID = utils.GenerateID()
	if product.BidHistory == nil {
		product.BidHistory = []models.Bid{}
	}

	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return models.Product{}, storageError("create", product.ID, err)
	}
	return product, nil
}

func (r *MongoRepo) GetByID(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Product{}, fmt.Errorf("get product %s: %w", id, auctionerrors.ErrProductNotFound)
		}
		return models.Product{}, storageError("get", id, err)
	}
	return product, nil
}

func (r *MongoRepo) GetAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, storageError("list", "*", err)
	}
	defer cursor.Close(ctx)

	productList := []models.Product{}
	if err = cursor.All(ctx, &productList); err != nil {
		return nil, storageError("list", "*", err)
	}
	return productList, nil
}

func (r *MongoRepo) Update(ctx context.Context, id string, product models.Product) (models.Product, error) {
	product.ID = id
	if product.BidHistory == nil {
		product.BidHistory = []models.Bid{}
	}

	// Misses when a bid landed after the caller read the product.
	filter := bson.M{
		"_id":         id,
		"bid_history": bson.M{"$size": int32(len(product.BidHistory))},
	}
	result, err := r.coll.ReplaceOne(ctx, filter, product)
	if err != nil {
		return models.Product{}, storageError("update", id, err)
	}
	if result.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return models.Product{}, fmt.Errorf("update product %s: %w", id, err)
		}
		return models.Product{}, fmt.Errorf("update product %s: %w", id, auctionerrors.ErrUpdateConflict)
	}
	return product, nil
}

func (r *MongoRepo) SetApproval(ctx context.Context, id string, approved bool) (models.Product, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Product
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_approved": approved}}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Product{}, fmt.Errorf("approve product %s: %w", id, auctionerrors.ErrProductNotFound)
		}
		return models.Product{}, storageError("approve", id, err)
	}
	return updated, nil
}

func (r *MongoRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, storageError("delete", id, err)
	}
	return result.DeletedCount > 0, nil
}

// AddBid is a single findAndModify whose filter encodes the acceptance rule,
// so two racing bidders cannot both win against the same minimum.
func (r *MongoRepo) AddBid(ctx context.Context, id string, bid models.Bid) (models.Product, error) {
	filter := bson.M{
		"_id":            id,
		"is_approved":    true,
		"end_of_auction": bson.M{"$gt": bid.BidTime},
		"start_price":    bson.M{"$lt": bid.BidAmount},
		"$or": bson.A{
			bson.M{"current_bid": nil},
			bson.M{"current_bid": bson.M{"$lt": bid.BidAmount}},
		},
	}
	update := bson.M{
		"$push": bson.M{"bid_history": bid},
		"$set": bson.M{
			"current_bid":       bid.BidAmount,
			"current_bidder_id": bid.BidderID,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Product
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, storageError("add bid to", id, err)
	}

	// Nothing matched: re-read to tell the caller why.
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	utils.Debug("conditional bid update matched nothing", map[string]any{
		"product_id": id,
		"bidder_id":  bid.BidderID,
		"amount":     bid.BidAmount,
	})
	if err := bidding.Validate(current, bid.BidAmount, bid.BidTime); err != nil {
		return models.Product{}, fmt.Errorf("add bid to product %s: %w", id, err)
	}
	return models.Product{}, fmt.Errorf("add bid to product %s: %w",
		id, &auctionerrors.InsufficientBidError{Minimum: bidding.MinimumAllowed(current)})
}

func storageError(op, id string, err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%s product %s: %w: %w", op, id, auctionerrors.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s product %s: %w", op, id, err)
}
