package mongo

import (
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoGymRepository implements repository.GymRepository
type mongoGymRepository struct {
	timeouts
	collection *mongo.Collection
}

// NewMongoGymRepository creates a new Gym repository backed by MongoDB.
func NewMongoGymRepository(db *mongo.Database, timeout time.Duration) repository.GymRepository {
	return &mongoGymRepository{
		timeouts:   timeouts{timeout: timeout},
		collection: db.Collection(gymCollectionName),
	}
}

// Create inserts a new gym. The owner cannot be changed afterwards.
func (r *mongoGymRepository) Create(ctx context.Context, gym *domain.Gym) (primitive.ObjectID, error) {
	if gym.TrainerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("gym owner is required")
	}
	ctx, cancel := r.bound(ctx)
	defer cancel()

	gym.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	gym.CreatedAt = now
	gym.UpdatedAt = now

	doc := gymDocument{
		ID:          gym.ID,
		Name:        gym.Name,
		Description: gym.Description,
		Location:    gym.Location,
		Images:      gym.Images,
		Trainer:     gym.TrainerID,
		CreatedAt:   gym.CreatedAt,
		UpdatedAt:   gym.UpdatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		gym.ID = primitive.NilObjectID
		return primitive.NilObjectID, translateError(err)
	}
	return doc.ID, nil
}

// FindByID retrieves a gym by its ID.
func (r *mongoGymRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Gym, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var doc gymDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	gym := doc.toDomain()
	return &gym, nil
}

// FindAll lists gyms in creation order.
func (r *mongoGymRepository) FindAll(ctx context.Context, filter repository.GymFilter) ([]domain.Gym, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := bson.M{}
	if filter.TrainerID != nil {
		query["trainer"] = *filter.TrainerID
	}
	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	var docs []gymDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, translateError(err)
	}
	gyms := make([]domain.Gym, 0, len(docs))
	for _, doc := range docs {
		gyms = append(gyms, doc.toDomain())
	}
	return gyms, nil
}

func (d gymDocument) toDomain() domain.Gym {
	return domain.Gym{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Location:    d.Location,
		Images:      d.Images,
		TrainerID:   d.Trainer,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// EnsureGymIndexes creates necessary indexes for the gyms collection.
func EnsureGymIndexes(ctx context.Context, collection *mongo.Collection) {
	ensureIndexes(ctx, collection, []mongo.IndexModel{
		{
			// A trainer owns at most one gym.
			Keys:    bson.D{{Key: "trainer", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
