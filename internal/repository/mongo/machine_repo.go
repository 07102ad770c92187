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

const machineCollectionName = "machines"

// mongoMachineRepository implements repository.MachineRepository
type mongoMachineRepository struct {
	collection *mongo.Collection
	log        *logger.Logger
}

// NewMongoMachineRepository creates a new Machine repository backed by MongoDB.
func NewMongoMachineRepository(db *mongo.Database, log *logger.Logger) repository.MachineRepository {
	return &mongoMachineRepository{
		collection: db.Collection(machineCollectionName),
		log:        log,
	}
}

// GetByID retrieves a machine by its ID.
func (r *mongoMachineRepository) GetByID(ctx context.Context, id string) (*domain.Machine, error) {
	res := r.collection.FindOne(ctx, bson.M{"_id": id})
	if err := res.Err(); err != nil {
		return nil, wrapErr(err)
	}
	var machine domain.Machine
	if err := res.Decode(&machine); err != nil {
		return nil, decodeErr(err)
	}
	return &machine, nil
}

// GetByIDs batch-fetches machines whose _id is in ids.
func (r *mongoMachineRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Machine, error) {
	if len(ids) == 0 {
		return []domain.Machine{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, wrapErr(err)
	}
	return decodeAll[domain.Machine](ctx, cursor, r.log, machineCollectionName)
}

// GetByGymID returns machines that reference the gym through their own gymId field.
func (r *mongoMachineRepository) GetByGymID(ctx context.Context, gymID string) ([]domain.Machine, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"gymId": gymID}, findOptions)
	if err != nil {
		return nil, wrapErr(err)
	}
	return decodeAll[domain.Machine](ctx, cursor, r.log, machineCollectionName)
}

// Create inserts a new machine.
func (r *mongoMachineRepository) Create(ctx context.Context, machine *domain.Machine) error {
	if machine.ID == "" || machine.Name == "" {
		return errors.New("machine ID and name are required")
	}
	_, err := r.collection.InsertOne(ctx, machine)
	return wrapErr(err)
}

func ensureMachineIndexes(ctx context.Context, collection *mongo.Collection, log *logger.Logger) {
	indexes := []mongo.IndexModel{
		{
			// Machines linked to a gym through the direct field
			Keys:    bson.D{{Key: "gymId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn("failed to create indexes", "collection", collection.Name(), "error", err)
	}
}
