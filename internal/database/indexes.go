package database

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the indexes the application relies on. The
// unique index on users.email is the actual correctness guarantee for
// registration: the application-level existence check is only a fast
// path for a friendlier error, two concurrent registrations are
// serialized here by the store.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	if db == nil || db.database == nil {
		return fmt.Errorf("database is not initialized")
	}

	models := map[string][]mongo.IndexModel{
		UsersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		VocabulariesCollection: {
			{Keys: bson.D{{Key: "lessonNo", Value: 1}}},
		},
		AuditCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}

	for collection, indexes := range models {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes for %s: %w", collection, err)
		}
	}

	slog.Info("database indexes ensured")
	return nil
}
