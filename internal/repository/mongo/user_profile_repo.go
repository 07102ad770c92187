package mongo

import (
	"context"
	"errors"
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userCollectionName = "users"

// mongoUserProfileRepository implements repository.UserProfileRepository
type mongoUserProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoUserProfileRepository creates a new profile repository backed by MongoDB.
func NewMongoUserProfileRepository(db *mongo.Database) repository.UserProfileRepository {
	return &mongoUserProfileRepository{
		collection: db.Collection(userCollectionName),
	}
}

// GetByID retrieves a profile by the auth subject id.
func (r *mongoUserProfileRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	res := r.collection.FindOne(ctx, bson.M{"_id": id})
	if err := res.Err(); err != nil {
		return nil, wrapErr(err)
	}
	var profile domain.UserProfile
	if err := res.Decode(&profile); err != nil {
		return nil, decodeErr(err)
	}
	return &profile, nil
}

// Upsert replaces the profile document, creating it on first save.
// CreatedAt is kept from the existing document.
func (r *mongoUserProfileRepository) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	if profile.ID == "" {
		return errors.New("profile ID is required")
	}
	now := time.Now().UTC()
	profile.UpdatedAt = now

	filter := bson.M{"_id": profile.ID}
	update := bson.M{
		"$set": bson.M{
			"name":        profile.Name,
			"phoneNumber": profile.PhoneNumber,
			"age":         profile.Age,
			"gender":      profile.Gender,
			"gymId":       profile.GymID,
			"gym":         profile.Gym,
			"weight":      profile.Weight,
			"height":      profile.Height,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After).
		SetProjection(bson.M{"createdAt": 1})
	var stored struct {
		CreatedAt time.Time `bson:"createdAt"`
	}
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return wrapErr(err)
	}
	profile.CreatedAt = stored.CreatedAt
	return nil
}
