package mongo

import (
	"context"
	"errors"
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseLogCollectionName = "exercise_logs"

// mongoExerciseLogRepository implements repository.ExerciseLogRepository
type mongoExerciseLogRepository struct {
	collection *mongo.Collection
	log        *logger.Logger
}

// NewMongoExerciseLogRepository creates a new exercise log repository backed by MongoDB.
func NewMongoExerciseLogRepository(db *mongo.Database, log *logger.Logger) repository.ExerciseLogRepository {
	return &mongoExerciseLogRepository{
		collection: db.Collection(exerciseLogCollectionName),
		log:        log,
	}
}

// Create inserts a log. The unique (userId, videoId, day) index turns a
// concurrent double submission into repository.ErrDuplicate.
func (r *mongoExerciseLogRepository) Create(ctx context.Context, entry *domain.ExerciseLog) error {
	if entry.ID == "" || entry.UserID == "" || entry.VideoID == "" || entry.Day == "" {
		return errors.New("exercise log requires id, userId, videoId and day")
	}
	_, err := r.collection.InsertOne(ctx, entry)
	return wrapErr(err)
}

// ExistsInRange reports whether a log for the user and video has a timestamp in [from, to).
func (r *mongoExerciseLogRepository) ExistsInRange(ctx context.Context, userID, videoID string, from, to time.Time) (bool, error) {
	filter := bson.M{
		"userId":    userID,
		"videoId":   videoID,
		"timestamp": bson.M{"$gte": from.UTC(), "$lt": to.UTC()},
	}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, wrapErr(err)
	}
	return count > 0, nil
}

// GetByUserInRange returns the user's logs with a timestamp in [from, to), newest first.
func (r *mongoExerciseLogRepository) GetByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.ExerciseLog, error) {
	filter := bson.M{
		"userId":    userID,
		"timestamp": bson.M{"$gte": from.UTC(), "$lt": to.UTC()},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, wrapErr(err)
	}
	return decodeAll[domain.ExerciseLog](ctx, cursor, r.log, exerciseLogCollectionName)
}

// ensureExerciseLogIndexes creates the dedup index. Unlike the other index
// helpers it returns its error: without the unique index the dedup guarantee
// degrades to check-then-insert.
func ensureExerciseLogIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "videoId", Value: 1}, {Key: "day", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("exercise_log_daily_unique"),
		},
		{
			// Weekly history query
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
