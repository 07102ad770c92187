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

const gymMachineCollectionName = "gym_machines"

// mongoGymMachineRepository implements repository.GymMachineRepository
type mongoGymMachineRepository struct {
	collection *mongo.Collection
	log        *logger.Logger
}

// NewMongoGymMachineRepository creates a new link repository backed by MongoDB.
func NewMongoGymMachineRepository(db *mongo.Database, log *logger.Logger) repository.GymMachineRepository {
	return &mongoGymMachineRepository{
		collection: db.Collection(gymMachineCollectionName),
		log:        log,
	}
}

// GetByGymID returns all link records for the gym in insertion order.
func (r *mongoGymMachineRepository) GetByGymID(ctx context.Context, gymID string) ([]domain.GymMachine, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"gymId": gymID}, findOptions)
	if err != nil {
		return nil, wrapErr(err)
	}
	return decodeAll[domain.GymMachine](ctx, cursor, r.log, gymMachineCollectionName)
}

// Link creates the (gymId, machineId) record if it does not exist yet.
func (r *mongoGymMachineRepository) Link(ctx context.Context, gymID, machineID string) error {
	if gymID == "" || machineID == "" {
		return errors.New("gym ID and machine ID are required")
	}
	filter := bson.M{"gymId": gymID, "machineId": machineID}
	update := bson.M{"$setOnInsert": bson.M{"gymId": gymID, "machineId": machineID}}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		// Concurrent upserts of the same link race on the unique index; the link exists either way.
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return wrapErr(err)
	}
	return nil
}

func ensureGymMachineIndexes(ctx context.Context, collection *mongo.Collection, log *logger.Logger) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "gymId", Value: 1}, {Key: "machineId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn("failed to create indexes", "collection", collection.Name(), "error", err)
	}
}
