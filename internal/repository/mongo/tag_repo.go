package mongo

import (
	"context"
	"errors"
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const tagCollectionName = "tags"

// mongoTagRepository implements repository.TagRepository
type mongoTagRepository struct {
	collection *mongo.Collection
}

// NewMongoTagRepository creates a new Tag repository backed by MongoDB.
func NewMongoTagRepository(db *mongo.Database) repository.TagRepository {
	return &mongoTagRepository{
		collection: db.Collection(tagCollectionName),
	}
}

// GetByID looks up a single tag record keyed by the tag string.
func (r *mongoTagRepository) GetByID(ctx context.Context, tag string) (*domain.Tag, error) {
	res := r.collection.FindOne(ctx, bson.M{"_id": tag})
	if err := res.Err(); err != nil {
		return nil, wrapErr(err)
	}
	var t domain.Tag
	if err := res.Decode(&t); err != nil {
		return nil, decodeErr(err)
	}
	return &t, nil
}

// Create inserts a new tag. Tags are immutable, so an existing tag is a duplicate.
func (r *mongoTagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	if tag.ID == "" || !tag.Valid() {
		return errors.New("tag, gymId and machineId are required")
	}
	_, err := r.collection.InsertOne(ctx, tag)
	return wrapErr(err)
}
