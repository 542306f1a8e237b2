package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection     = "users"
	customersCollection = "customers"
	countersCollection  = "counters"
	entriesCollection   = "milk_entries"
)

// MongoDBRepository is the persistence layer for users, customers, sequence
// counters and milk entries.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoDBRepository connects to MongoDB, verifies the connection and
// ensures the unique indexes the data model relies on.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := &MongoDBRepository{
		client: client,
		db:     client.Database(dbName),
	}

	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	return repo, nil
}

func (r *MongoDBRepository) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "mobile_no", Value: 1}}, Options: unique},
	}
	if _, err := r.db.Collection(usersCollection).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	customerIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "c_id", Value: 1}},
		Options: unique,
	}
	if _, err := r.db.Collection(customersCollection).Indexes().CreateOne(ctx, customerIndex); err != nil {
		return fmt.Errorf("customers index: %w", err)
	}

	counterIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: unique,
	}
	if _, err := r.db.Collection(countersCollection).Indexes().CreateOne(ctx, counterIndex); err != nil {
		return fmt.Errorf("counters index: %w", err)
	}

	entryIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "entry_date", Value: -1}},
	}
	if _, err := r.db.Collection(entriesCollection).Indexes().CreateOne(ctx, entryIndex); err != nil {
		return fmt.Errorf("entries index: %w", err)
	}

	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
