package mongo

import (
	"context"
	"errors"
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const gymCollectionName = "gyms"

// mongoGymRepository implements repository.GymRepository
type mongoGymRepository struct {
	collection *mongo.Collection
	log        *logger.Logger
}

// NewMongoGymRepository creates a new Gym repository backed by MongoDB.
func NewMongoGymRepository(db *mongo.Database, log *logger.Logger) repository.GymRepository {
	return &mongoGymRepository{
		collection: db.Collection(gymCollectionName),
		log:        log,
	}
}

// GetByID retrieves a gym by its ID.
func (r *mongoGymRepository) GetByID(ctx context.Context, id string) (*domain.Gym, error) {
	res := r.collection.FindOne(ctx, bson.M{"_id": id})
	if err := res.Err(); err != nil {
		return nil, wrapErr(err)
	}
	var gym domain.Gym
	if err := res.Decode(&gym); err != nil {
		return nil, decodeErr(err)
	}
	gym.ApplyDefaults()
	return &gym, nil
}

// List returns every gym, sorted by name.
func (r *mongoGymRepository) List(ctx context.Context) ([]domain.Gym, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, wrapErr(err)
	}
	gyms, err := decodeAll[domain.Gym](ctx, cursor, r.log, gymCollectionName)
	if err != nil {
		return nil, err
	}
	for i := range gyms {
		gyms[i].ApplyDefaults()
	}
	return gyms, nil
}

// Create inserts a new gym.
func (r *mongoGymRepository) Create(ctx context.Context, gym *domain.Gym) error {
	if gym.ID == "" || gym.Name == "" {
		return errors.New("gym ID and name are required")
	}
	_, err := r.collection.InsertOne(ctx, gym)
	return wrapErr(err)
}
