package mongo

import (
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoTrainerRepository implements the repository.TrainerRepository interface using MongoDB.
type mongoTrainerRepository struct {
	timeouts
	collection *mongo.Collection
}

// NewMongoTrainerRepository creates a new instance of mongoTrainerRepository.
func NewMongoTrainerRepository(db *mongo.Database, timeout time.Duration) repository.TrainerRepository {
	return &mongoTrainerRepository{
		timeouts:   timeouts{timeout: timeout},
		collection: db.Collection(trainerCollectionName),
	}
}

// Create inserts a new trainer into the database.
func (r *mongoTrainerRepository) Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	if trainer.Auth == nil {
		return primitive.NilObjectID, errors.New("trainer auth method is required")
	}
	ctx, cancel := r.bound(ctx)
	defer cancel()

	trainer.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	trainer.CreatedAt = now
	trainer.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, newTrainerDocument(trainer)); err != nil {
		trainer.ID = primitive.NilObjectID
		return primitive.NilObjectID, translateError(err)
	}
	return trainer.ID, nil
}

// Save replaces the stored document, inserting it if it does not exist yet.
func (r *mongoTrainerRepository) Save(ctx context.Context, trainer *domain.Trainer) error {
	if trainer.ID == primitive.NilObjectID {
		return errors.New("trainer ID is required for save")
	}
	ctx, cancel := r.bound(ctx)
	defer cancel()

	trainer.UpdatedAt = time.Now().UTC()
	if trainer.CreatedAt.IsZero() {
		trainer.CreatedAt = trainer.UpdatedAt
	}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": trainer.ID}, newTrainerDocument(trainer), options.Replace().SetUpsert(true))
	return translateError(err)
}

// FindByID retrieves a trainer by its ObjectID.
func (r *mongoTrainerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByEmail matches the local email only; OAuth emails are not login names.
func (r *mongoTrainerRepository) FindByEmail(ctx context.Context, email string) (*domain.Trainer, error) {
	return r.findOne(ctx, bson.M{"local.email": strings.ToLower(strings.TrimSpace(email))})
}

// FindByOAuthID retrieves a trainer by provider identity.
func (r *mongoTrainerRepository) FindByOAuthID(ctx context.Context, provider domain.Provider, providerID string) (*domain.Trainer, error) {
	if providerID == "" {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{oauthField(provider): providerID})
}

func (r *mongoTrainerRepository) findOne(ctx context.Context, filter bson.M) (*domain.Trainer, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var doc trainerDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	trainer := doc.toDomain()
	return &trainer, nil
}

// FindAll lists trainers in creation order, redacted by projection.
func (r *mongoTrainerRepository) FindAll(ctx context.Context, filter repository.TrainerFilter, projection repository.Projection) ([]domain.Trainer, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := bson.M{}
	if len(filter.IDs) > 0 {
		query["_id"] = bson.M{"$in": filter.IDs}
	}
	if filter.Specialization != "" {
		query["local.specialization"] = primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(filter.Specialization) + "$",
			Options: "i",
		}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if p := accountProjection(projection.OmitCredentials, projection.OmitRoleFlag, "isTrainer"); p != nil {
		findOptions.SetProjection(p)
	}

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	var docs []trainerDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, translateError(err)
	}

	trainers := make([]domain.Trainer, 0, len(docs))
	for _, doc := range docs {
		t := doc.toDomain()
		projection.Trainer(&t)
		trainers = append(trainers, t)
	}
	return trainers, nil
}

// UpdateProfile sets the local profile fields and returns the stored trainer.
func (r *mongoTrainerRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.TrainerProfile) (*domain.Trainer, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	set := trainerProfileSet(profile)
	set["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc trainerDocument
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	trainer := doc.toDomain()
	return &trainer, nil
}

// SetGym points the trainer's gymInfo at gymID.
func (r *mongoTrainerRepository) SetGym(ctx context.Context, trainerID, gymID primitive.ObjectID) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"local.gymInfo": gymID,
			"updatedAt":     time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": trainerID}, update)
	if err != nil {
		return translateError(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTrainerIndexes creates necessary indexes for the trainers collection.
// Call this once during application startup.
func EnsureTrainerIndexes(ctx context.Context, collection *mongo.Collection) {
	ensureIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "local.email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			// Lets a concurrent second OAuth provisioning fail instead of duplicating.
			Keys:    bson.D{{Key: "facebook.id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "google.id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "local.specialization", Value: 1}},
			Options: options.Index(),
		},
	})
}
