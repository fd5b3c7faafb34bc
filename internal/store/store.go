// Package store owns the MongoDB connection. It is constructed once in
// main and passed to the handlers; nothing in the repo reaches for a
// package-global database handle.
package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects, pings and prepares the collections. The unique index
// on the user email field backs the duplicate-email translation at the
// API boundary.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}

	_, err = s.Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("users email index: %w", err)
	}

	log.Println("✅ Mongo connected:", dbName)
	return s, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Users() *mongo.Collection    { return s.db.Collection("users") }
func (s *Store) Products() *mongo.Collection { return s.db.Collection("products") }
func (s *Store) Orders() *mongo.Collection   { return s.db.Collection("orders") }

// IsDuplicateKey reports a unique-constraint violation, e.g. a taken
// email address.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
