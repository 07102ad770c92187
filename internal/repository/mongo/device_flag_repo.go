package mongo

import (
	"context"
	"errors"
	"innovafit/gym-backend/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const deviceFlagCollectionName = "device_flags"

// mongoDeviceFlagRepository stores one document per device, keyed by device id.
// It is used when Redis is not configured.
type mongoDeviceFlagRepository struct {
	collection *mongo.Collection
}

func NewMongoDeviceFlagRepository(db *mongo.Database) repository.DeviceFlagRepository {
	return &mongoDeviceFlagRepository{
		collection: db.Collection(deviceFlagCollectionName),
	}
}

func (r *mongoDeviceFlagRepository) FeedbackAsked(ctx context.Context, deviceID string) (bool, error) {
	var doc struct {
		FeedbackAsked bool `bson:"feedbackAsked"`
	}
	err := r.collection.FindOne(ctx, bson.M{"_id": deviceID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, wrapErr(err)
	}
	return doc.FeedbackAsked, nil
}

func (r *mongoDeviceFlagRepository) MarkFeedbackAsked(ctx context.Context, deviceID string) error {
	if deviceID == "" {
		return errors.New("device ID is required")
	}
	update := bson.M{"$set": bson.M{"feedbackAsked": true, "updatedAt": time.Now().UTC()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": deviceID}, update, options.Update().SetUpsert(true))
	return wrapErr(err)
}
