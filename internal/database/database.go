package database

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	UsersCollection        = "users"
	LessonsCollection      = "lessons"
	VocabulariesCollection = "vocabularies"
	TutorialsCollection    = "tutorials"
	AuditCollection        = "audit_entries"
)

// DB wraps the single Mongo client held for the process lifetime. It is
// constructed once at startup and injected; request handlers never
// reach for a package-level connection.
type DB struct {
	client   *mongo.Client
	database *mongo.Database
}

func New(ctx context.Context, uri string, dbName string) (*DB, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	slog.Info("database connected", "database", dbName)
	return &DB{client: client, database: client.Database(dbName)}, nil
}

func (db *DB) Collection(name string) *mongo.Collection {
	return db.database.Collection(name)
}

func (db *DB) Close(ctx context.Context) error {
	if db == nil || db.client == nil {
		return nil
	}
	return db.client.Disconnect(ctx)
}

func (db *DB) Health(ctx context.Context) error {
	return db.client.Ping(ctx, readpref.Primary())
}
