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

type mongoAdministratorRepository struct {
	timeouts
	collection *mongo.Collection
}

// NewMongoAdministratorRepository creates a new administrator repository backed by MongoDB.
func NewMongoAdministratorRepository(db *mongo.Database, timeout time.Duration) repository.AdministratorRepository {
	return &mongoAdministratorRepository{
		timeouts:   timeouts{timeout: timeout},
		collection: db.Collection(administratorCollectionName),
	}
}

func (r *mongoAdministratorRepository) Create(ctx context.Context, admin *domain.Administrator) (primitive.ObjectID, error) {
	if admin.Email == "" || admin.PasswordHash == "" || admin.Name == "" {
		return primitive.NilObjectID, errors.New("administrator email, password hash, and name are required")
	}
	ctx, cancel := r.bound(ctx)
	defer cancel()

	admin.ID = primitive.NewObjectID()
	admin.CreatedAt = time.Now().UTC()
	doc := administratorDocument{
		ID:        admin.ID,
		Email:     strings.ToLower(strings.TrimSpace(admin.Email)),
		Password:  admin.PasswordHash,
		Name:      admin.Name,
		IsAdmin:   admin.IsAdmin,
		CreatedAt: admin.CreatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		admin.ID = primitive.NilObjectID
		return primitive.NilObjectID, translateError(err)
	}
	return admin.ID, nil
}

func (r *mongoAdministratorRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Administrator, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoAdministratorRepository) FindByEmail(ctx context.Context, email string) (*domain.Administrator, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *mongoAdministratorRepository) findOne(ctx context.Context, filter bson.M) (*domain.Administrator, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var doc administratorDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	return &domain.Administrator{
		ID:           doc.ID,
		Email:        doc.Email,
		PasswordHash: doc.Password,
		Name:         doc.Name,
		IsAdmin:      doc.IsAdmin,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

// EnsureAdministratorIndexes creates necessary indexes for the administrators collection.
func EnsureAdministratorIndexes(ctx context.Context, collection *mongo.Collection) {
	ensureIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
