// Command seedadmin creates an administrator account.
package main

import (
	"alcyxob/fitness-market/internal/config"
	"alcyxob/fitness-market/internal/credential"
	"alcyxob/fitness-market/internal/repository/mongo"
	"alcyxob/fitness-market/internal/service"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.String("config", ".", "directory holding config.yaml and .env")
	email := pflag.String("email", "", "administrator email (required)")
	name := pflag.String("name", "", "administrator name (required)")
	password := pflag.String("password", "", "administrator password, at least 6 characters (required)")
	pflag.Parse()

	if err := run(*configPath, service.AdministratorRequest{Email: *email, Name: *name, Password: *password}); err != nil {
		fmt.Fprintf(os.Stderr, "seedadmin: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, req service.AdministratorRequest) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Database.Driver != config.DriverMongo {
		return fmt.Errorf("database driver %q keeps no data between runs", cfg.Database.Driver)
	}

	client, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		return err
	}
	defer mongo.DisconnectDB(client)
	db := client.Database(cfg.Database.Name)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	mongo.EnsureIndexes(ctx, db)

	store := mongo.NewStore(client, db, mongo.StoreOptions{Timeout: cfg.Database.Timeout})
	auth := service.NewAuthService(store, credential.NewBcryptHasher(credential.DefaultCost))
	admin, err := auth.CreateAdministrator(ctx, req)
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		return fmt.Errorf("an administrator with email %s already exists", req.Email)
	case err != nil:
		return err
	}
	logrus.WithFields(logrus.Fields{"id": admin.ID.Hex(), "email": admin.Email}).Info("Administrator created")
	return nil
}
