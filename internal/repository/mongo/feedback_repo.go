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

const feedbackCollectionName = "feedback"

// mongoFeedbackRepository implements repository.FeedbackRepository
type mongoFeedbackRepository struct {
	collection *mongo.Collection
}

// NewMongoFeedbackRepository creates a new feedback repository backed by MongoDB.
func NewMongoFeedbackRepository(db *mongo.Database) repository.FeedbackRepository {
	return &mongoFeedbackRepository{
		collection: db.Collection(feedbackCollectionName),
	}
}

// Create appends a feedback entry.
func (r *mongoFeedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	if feedback.ID == "" || feedback.GymID == "" {
		return errors.New("feedback ID and gym ID are required")
	}
	_, err := r.collection.InsertOne(ctx, feedback)
	return wrapErr(err)
}

func ensureFeedbackIndexes(ctx context.Context, collection *mongo.Collection, log *logger.Logger) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "gymId", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn("failed to create indexes", "collection", collection.Name(), "error", err)
	}
}
