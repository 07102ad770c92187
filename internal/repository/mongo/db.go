package mongo

import (
	"context"
	"errors"
	"fmt"
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI.
// It returns the mongo.Client which can be used to access databases and collections.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the primary separately; Connect succeeds even when the server is unresponsive.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	err = client.Ping(pingCtx, readpref.Primary())
	if err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes of every collection used by the service.
// Failures are logged and do not stop startup, except for the exercise log
// dedup index which the log writer depends on.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	ensureGymMachineIndexes(ctx, db.Collection(gymMachineCollectionName), log)
	ensureMachineIndexes(ctx, db.Collection(machineCollectionName), log)
	ensureFeedbackIndexes(ctx, db.Collection(feedbackCollectionName), log)
	return ensureExerciseLogIndexes(ctx, db.Collection(exerciseLogCollectionName))
}

// wrapErr maps driver errors onto the repository error taxonomy.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	case mongo.IsNetworkError(err), mongo.IsTimeout(err),
		errors.Is(err, context.DeadlineExceeded), errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}
	return err
}

// decodeErr marks a failure to decode a single document.
func decodeErr(err error) error {
	return fmt.Errorf("%w: %v", repository.ErrDecode, err)
}

// decodeAll iterates a cursor, decoding each document with decode and skipping
// (with a warning) the ones that fail. A cursor error is returned as-is.
func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor, log *logger.Logger, collection string) ([]T, error) {
	defer cursor.Close(ctx)

	results := make([]T, 0)
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			if log != nil {
				log.Warn("skipping undecodable document", "collection", collection, "id", cursor.Current.Lookup("_id").String(), "error", err)
			}
			continue
		}
		results = append(results, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapErr(err)
	}
	return results, nil
}
