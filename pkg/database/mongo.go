package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used across the repositories. The store is schemaless:
// each entity lives in its own collection, keyed only by these names.
const (
	ColUsers           = "users"
	ColAssignments     = "assignments"
	ColMessages        = "messages"
	ColDoubts          = "doubts"
	ColTasks           = "tasks"
	ColClasses         = "classes"
	ColAnnouncements   = "announcements"
	ColSupportMessages = "supportMessages"
)

// Connect opens the mongo client, verifies connectivity and returns a handle
// to the application database.
func Connect(uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(dbName)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}

// ensureIndexes backs the uniqueness invariant on user emails and keeps the
// hot lookup paths indexed.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	users := db.Collection(ColUsers)
	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "uniqueId", Value: 1}, {Key: "role", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	messages := db.Collection(ColMessages)
	_, err = messages.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "senderId", Value: 1}}},
		{Keys: bson.D{{Key: "receiverId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}

	return nil
}
