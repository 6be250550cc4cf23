package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-backend/auth"
	"auction-backend/config"
	"auction-backend/controllers"
	"auction-backend/repository"
	"auction-backend/routes"
	"auction-backend/services"
	"auction-backend/storage"
	"auction-backend/utils"
)

const (
	usersCollection = "users"
	imageFolder     = "auction/products"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("Failed to load config", map[string]any{"error": err.Error()})
	}
	if err := utils.ConfigureLogger(cfg.LogLevel); err != nil {
		utils.Fatal("Invalid LOG_LEVEL", map[string]any{"error": err.Error()})
	}

	client, err := config.ConnectDB(cfg.MongoURI, cfg.MongoMode)
	if err != nil {
		utils.Fatal("Failed to connect to MongoDB", map[string]any{"error": err.Error()})
	}
	defer config.DisconnectDB(client)
	db := client.Database(cfg.MongoDatabase)

	products := repository.NewMongoRepo(db.Collection(cfg.MongoCollection))

	users := auth.NewMongoUserStore(db.Collection(usersCollection))
	if err := users.EnsureIndexes(context.Background()); err != nil {
		utils.Fatal("Failed to create user indexes", map[string]any{"error": err.Error()})
	}

	var files storage.FileStore = storage.NewInlineStore()
	if cfg.CloudinaryURL != "" {
		cld, err := storage.NewCloudinaryStore(cfg.CloudinaryURL, imageFolder)
		if err != nil {
			utils.Fatal("Failed to initialise Cloudinary", map[string]any{"error": err.Error()})
		}
		files = cld
		utils.Info("Images are uploaded to Cloudinary", map[string]any{"folder": imageFolder})
	} else {
		utils.Warn("CLOUDINARY_URL not set, images are stored inline", nil)
	}

	var revoked auth.RevocationStore = auth.NewMemoryRevocationStore()
	rdb, err := config.ConnectRedis(cfg)
	if err != nil {
		utils.Fatal("Failed to connect to Redis", map[string]any{"error": err.Error()})
	}
	if rdb != nil {
		defer rdb.Close()
		revoked = auth.NewRedisRevocationStore(rdb)
	}

	tokens, err := auth.NewTokenMaker(cfg.PasetoSecretKey, cfg.TokenTTL)
	if err != nil {
		utils.Fatal("Failed to create token maker", map[string]any{"error": err.Error()})
	}

	auctionSvc := services.NewAuctionService(products, files)
	authSvc := services.NewAuthService(users, tokens, revoked)

	if cfg.AdminEmail != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		err := authSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
		cancel()
		if err != nil {
			utils.Fatal("Failed to seed administrator", map[string]any{"error": err.Error()})
		}
	}

	ctrl := &controllers.Controller{
		Auctions: auctionSvc,
		Auth:     authSvc,
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		Version: cfg.Version,
		Timeout: cfg.RequestTimeout,
	}
	router := routes.Setup(ctrl, cfg.Env, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Info("Starting auction server", map[string]any{"port": cfg.Port, "environment": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("Server failed to start", map[string]any{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Info("Shutting down auction server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}

	utils.Info("Auction server stopped", nil)
}
