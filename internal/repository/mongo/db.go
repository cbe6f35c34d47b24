package mongo

import (
	"alcyxob/fitness-market/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// DefaultOperationTimeout bounds every repository call when no timeout is configured.
const DefaultOperationTimeout = 5 * time.Second

// Collection names
const (
	administratorCollectionName = "administrators"
	clientCollectionName        = "clients"
	trainerCollectionName       = "trainers"
	gymCollectionName           = "gyms"
)

// ConnectDB establishes a connection to MongoDB using the provided URI.
// It returns the mongo.Client which can be used to access databases and collections.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping the primary node to verify the connection.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}
	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// StoreOptions tunes the repositories returned by NewStore.
type StoreOptions struct {
	// Timeout bounds each repository call; expiry surfaces as ErrStoreUnavailable.
	Timeout time.Duration
	// Transactions enables multi-document transactions (replica set or sharded cluster required).
	Transactions bool
}

// NewStore wires every repository against db.
func NewStore(client *mongo.Client, db *mongo.Database, opts StoreOptions) repository.Store {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOperationTimeout
	}
	return repository.Store{
		Administrators: NewMongoAdministratorRepository(db, opts.Timeout),
		Clients:        NewMongoClientRepository(db, opts.Timeout),
		Trainers:       NewMongoTrainerRepository(db, opts.Timeout),
		Gyms:           NewMongoGymRepository(db, opts.Timeout),
		Tx:             NewTransactor(client, opts.Transactions),
	}
}

// EnsureIndexes creates the indexes of every collection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	EnsureAdministratorIndexes(ctx, db.Collection(administratorCollectionName))
	EnsureClientIndexes(ctx, db.Collection(clientCollectionName))
	EnsureTrainerIndexes(ctx, db.Collection(trainerCollectionName))
	EnsureGymIndexes(ctx, db.Collection(gymCollectionName))
}

// timeouts is embedded by every repository to bound store calls.
type timeouts struct {
	timeout time.Duration
}

func (t timeouts) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, t.timeout)
}

// translateError maps driver errors onto the repository taxonomy.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var repoErr repository.RepositoryError
	if errors.As(err, &repoErr) {
		return err
	}
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", repository.ErrDuplicateKey, err)
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, mongo.ErrClientDisconnected),
		mongo.IsTimeout(err),
		mongo.IsNetworkError(err):
		return fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}
	return err
}

func ensureIndexes(ctx context.Context, collection *mongo.Collection, indexes []mongo.IndexModel) {
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logrus.WithError(err).WithField("collection", collection.Name()).Warn("failed to create indexes")
	}
}
