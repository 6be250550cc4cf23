package config

import (
	"context"
	"fmt"
	"time"

	"auction-backend/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB opens the MongoDB client and checks it with a ping.
func ConnectDB(uri string, mode string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("error connecting to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("error pinging MongoDB: %w", err)
	}

	if mode == "atlas" {
		utils.Info("Successfully connected to MongoDB Atlas", nil)
	} else {
		utils.Info("Successfully connected to local MongoDB", nil)
	}

	return client, nil
}

// DisconnectDB closes the client, waiting at most 10 seconds.
func DisconnectDB(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		utils.Error("error disconnecting from MongoDB", map[string]any{"error": err.Error()})
		return
	}
	utils.Info("Disconnected from MongoDB", nil)
}

// ConnectRedis returns a client for the token revocation list, or nil when
// no address is configured.
func ConnectRedis(cfg *AppConfig) (*redis.Client, error) {
	if cfg.RedisAddress == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error pinging Redis at %s: %w", cfg.RedisAddress, err)
	}

	utils.Info("Successfully connected to Redis", map[string]any{"address": cfg.RedisAddress})
	return client, nil
}
