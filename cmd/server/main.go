package main

import (
	"alcyxob/fitness-market/internal/api"
	"alcyxob/fitness-market/internal/config"
	"alcyxob/fitness-market/internal/credential"
	"alcyxob/fitness-market/internal/identity"
	"alcyxob/fitness-market/internal/logger"
	"alcyxob/fitness-market/internal/oauth"
	"alcyxob/fitness-market/internal/repository"
	"alcyxob/fitness-market/internal/repository/memory"
	"alcyxob/fitness-market/internal/repository/mongo"
	"alcyxob/fitness-market/internal/service"
	"alcyxob/fitness-market/internal/session"
	"alcyxob/fitness-market/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// @title Fitness Market API
// @version 1.0
// @description Trainers, clients and gyms with local and Facebook login.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	configPath := pflag.String("config", ".", "directory holding config.yaml and .env")
	pflag.Parse()

	// --- Configuration ---
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logrus.Fatalf("Could not load config: %v", err)
	}
	logCloser, err := logger.Setup(cfg.Log)
	if err != nil {
		logrus.Fatalf("Could not set up logging: %v", err)
	}
	defer logCloser.Close()
	logrus.Info("Starting Fitness Market server...")

	// --- Storage backend ---
	store, closeStore, err := openStore(cfg.Database)
	if err != nil {
		logrus.Fatalf("Could not open %s store: %v", cfg.Database.Driver, err)
	}
	defer closeStore()

	// --- File storage (optional) ---
	var files storage.FileStorage
	if cfg.S3.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		files, err = storage.NewS3Storage(ctx, cfg.S3)
		cancel()
		if err != nil {
			logrus.Fatalf("Failed to initialize S3 storage: %v", err)
		}
	} else {
		logrus.Warn("S3 bucket not configured, media uploads disabled")
	}

	// --- Facebook login (optional) ---
	var facebook oauth.Provider
	if cfg.Facebook.Enabled() {
		facebook = oauth.NewFacebook(cfg.Facebook)
	} else {
		logrus.Info("Facebook client id not configured, Facebook login disabled")
	}

	// --- Services ---
	deps := api.Dependencies{
		Auth:      service.NewAuthService(store, credential.NewBcryptHasher(credential.DefaultCost)),
		Profiles:  service.NewProfileService(store),
		Directory: service.NewDirectoryService(store),
		Gyms:      service.NewGymService(store),
		Media:     service.NewMediaService(files, cfg.S3.URLExpiry),
		Resolver:  identity.NewResolver(store),
		Sessions:  session.NewManager(cfg.Session),
		Tokens:    api.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration),
		Facebook:  facebook,
	}

	// --- Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, deps)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logrus.Infof("Server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}
	logrus.Info("Server exiting.")
}

// openStore connects the configured backend and returns its cleanup.
func openStore(cfg config.DatabaseConfig) (repository.Store, func(), error) {
	if cfg.Driver == config.DriverMemory {
		logrus.Warn("Using the in-memory store, data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}

	client, err := mongo.ConnectDB(cfg.URI)
	if err != nil {
		return repository.Store{}, nil, err
	}
	db := client.Database(cfg.Name)
	logrus.WithField("database", cfg.Name).Info("Database connection established")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	mongo.EnsureIndexes(ctx, db)
	cancel()

	closeFn := func() {
		if err := mongo.DisconnectDB(client); err != nil {
			logrus.WithError(err).Error("Failed to disconnect MongoDB")
		}
	}
	store := mongo.NewStore(client, db, mongo.StoreOptions{
		Timeout:      cfg.Timeout,
		Transactions: cfg.Transactions,
	})
	return store, closeFn, nil
}
