package mongo

import (
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoClientRepository implements the repository.ClientRepository interface using MongoDB.
type mongoClientRepository struct {
	timeouts
	collection *mongo.Collection
}

// NewMongoClientRepository creates a new instance of mongoClientRepository.
func NewMongoClientRepository(db *mongo.Database, timeout time.Duration) repository.ClientRepository {
	return &mongoClientRepository{
		timeouts:   timeouts{timeout: timeout},
		collection: db.Collection(clientCollectionName),
	}
}

// Create inserts a new client into the database.
func (r *mongoClientRepository) Create(ctx context.Context, client *domain.Client) (primitive.ObjectID, error) {
	if client.Auth == nil {
		return primitive.NilObjectID, errors.New("client auth method is required")
	}
	ctx, cancel := r.bound(ctx)
	defer cancel()

	client.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, newClientDocument(client)); err != nil {
		client.ID = primitive.NilObjectID
		return primitive.NilObjectID, translateError(err)
	}
	return client.ID, nil
}

// Save replaces the stored document, inserting it if it does not exist yet.
func (r *mongoClientRepository) Save(ctx context.Context, client *domain.Client) error {
	if client.ID == primitive.NilObjectID {
		return errors.New("client ID is required for save")
	}
	ctx, cancel := r.bound(ctx)
	defer cancel()

	client.UpdatedAt = time.Now().UTC()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = client.UpdatedAt
	}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": client.ID}, newClientDocument(client), options.Replace().SetUpsert(true))
	return translateError(err)
}

// FindByID retrieves a client by its ObjectID.
func (r *mongoClientRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Client, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByEmail matches the local email only.
func (r *mongoClientRepository) FindByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.findOne(ctx, bson.M{"local.email": strings.ToLower(strings.TrimSpace(email))})
}

// FindByOAuthID retrieves a client by provider identity.
func (r *mongoClientRepository) FindByOAuthID(ctx context.Context, provider domain.Provider, providerID string) (*domain.Client, error) {
	if providerID == "" {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{oauthField(provider): providerID})
}

func (r *mongoClientRepository) findOne(ctx context.Context, filter bson.M) (*domain.Client, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var doc clientDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	client := doc.toDomain()
	return &client, nil
}

// FindAll lists clients in creation order, redacted by projection.
func (r *mongoClientRepository) FindAll(ctx context.Context, filter repository.ClientFilter, projection repository.Projection) ([]domain.Client, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := bson.M{}
	if len(filter.IDs) > 0 {
		query["_id"] = bson.M{"$in": filter.IDs}
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if p := accountProjection(projection.OmitCredentials, projection.OmitRoleFlag, "isClient"); p != nil {
		findOptions.SetProjection(p)
	}

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	var docs []clientDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, translateError(err)
	}

	clients := make([]domain.Client, 0, len(docs))
	for _, doc := range docs {
		c := doc.toDomain()
		projection.Client(&c)
		clients = append(clients, c)
	}
	return clients, nil
}

// UpdateProfile sets the local profile fields and returns the stored client.
func (r *mongoClientRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.ClientProfile) (*domain.Client, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	set := clientProfileSet(profile)
	set["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc clientDocument
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	client := doc.toDomain()
	return &client, nil
}

// EnsureClientIndexes creates necessary indexes for the clients collection.
func EnsureClientIndexes(ctx context.Context, collection *mongo.Collection) {
	ensureIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "local.email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "facebook.id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "google.id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
}
