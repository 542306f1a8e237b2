package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pagarwal884/Aapni-Dairy/internal/domain/apperr"
	"github.com/pagarwal884/Aapni-Dairy/internal/domain/models"
)

// InsertEntry persists a new milk entry.
func (r *MongoDBRepository) InsertEntry(ctx context.Context, entry models.MilkEntry) (models.MilkEntry, error) {
	res, err := r.db.Collection(entriesCollection).InsertOne(ctx, entry)
	if err != nil {
		return models.MilkEntry{}, apperr.Storage(err, "insert milk entry")
	}

	entry.ID = res.InsertedID.(primitive.ObjectID)
	return entry, nil
}

// FindEntry returns the owner's milk entry with the given id.
func (r *MongoDBRepository) FindEntry(ctx context.Context, userID, id primitive.ObjectID) (models.MilkEntry, error) {
	var entry models.MilkEntry
	err := r.db.Collection(entriesCollection).FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.MilkEntry{}, apperr.NotFound("entry not found")
	}
	if err != nil {
		return models.MilkEntry{}, apperr.Storage(err, "find milk entry")
	}
	return entry, nil
}

// ReplaceEntry overwrites an existing milk entry with the provided document.
func (r *MongoDBRepository) ReplaceEntry(ctx context.Context, entry models.MilkEntry) (models.MilkEntry, error) {
	res, err := r.db.Collection(entriesCollection).ReplaceOne(ctx,
		bson.M{"_id": entry.ID, "user_id": entry.UserID},
		entry,
	)
	if err != nil {
		return models.MilkEntry{}, apperr.Storage(err, "replace milk entry")
	}
	if res.MatchedCount == 0 {
		return models.MilkEntry{}, apperr.NotFound("entry not found")
	}
	return entry, nil
}

// DeleteEntry removes the owner's milk entry.
func (r *MongoDBRepository) DeleteEntry(ctx context.Context, userID, id primitive.ObjectID) error {
	res, err := r.db.Collection(entriesCollection).DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return apperr.Storage(err, "delete milk entry")
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("entry not found")
	}
	return nil
}

// ListEntriesByCustomer returns the customer's entries, newest first,
// optionally restricted to a date window.
func (r *MongoDBRepository) ListEntriesByCustomer(ctx context.Context, userID, customerID primitive.ObjectID, window *models.DateWindow) ([]models.MilkEntry, error) {
	filter := bson.M{"user_id": userID, "customer_id": customerID}
	if window != nil {
		filter["entry_date"] = bson.M{"$gte": window.Start, "$lte": window.End}
	}

	cursor, err := r.db.Collection(entriesCollection).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "entry_date", Value: -1}}),
	)
	if err != nil {
		return nil, apperr.Storage(err, "list milk entries")
	}

	var entries []models.MilkEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, apperr.Storage(err, "decode milk entries")
	}
	return entries, nil
}

// ListEntriesWithCustomer returns all of the owner's entries joined with the
// customer's display name and c_id, newest first.
func (r *MongoDBRepository) ListEntriesWithCustomer(ctx context.Context, userID primitive.ObjectID) ([]models.EntryListItem, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         customersCollection,
			"localField":   "customer_id",
			"foreignField": "_id",
			"as":           "customer",
		}}},
		{{Key: "$unwind", Value: "$customer"}},
		{{Key: "$project", Value: bson.M{
			"_id":           1,
			"customer_name": "$customer.c_name",
			"customer_c_id": "$customer.c_id",
			"quantity":      1,
			"fat":           1,
			"snf":           1,
			"shift":         1,
			"entry_date":    1,
			"rate":          1,
			"total_amount":  1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "entry_date", Value: -1}}}},
	}

	cursor, err := r.db.Collection(entriesCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Storage(err, "aggregate entries with customers")
	}

	var items []models.EntryListItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, apperr.Storage(err, "decode entry list")
	}
	return items, nil
}

// AggregateEntries groups the owner's entries by customer within the
// optional date window and sums quantity, amount and snf per group, joining
// each group to its customer for the display name and c_id.
func (r *MongoDBRepository) AggregateEntries(ctx context.Context, userID primitive.ObjectID, window *models.DateWindow, customerID *primitive.ObjectID) ([]models.CustomerSummary, error) {
	match := bson.M{"user_id": userID}
	if customerID != nil {
		match["customer_id"] = *customerID
	}
	if window != nil {
		match["entry_date"] = bson.M{"$gte": window.Start, "$lte": window.End}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$customer_id",
			"total_qty":    bson.M{"$sum": "$quantity"},
			"total_amount": bson.M{"$sum": "$total_amount"},
			"total_snf":    bson.M{"$sum": bson.M{"$ifNull": bson.A{"$snf", 0}}},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         customersCollection,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "customer",
		}}},
		{{Key: "$unwind", Value: "$customer"}},
		{{Key: "$project", Value: bson.M{
			"_id":           0,
			"customer_c_id": "$customer.c_id",
			"c_name":        "$customer.c_name",
			"total_qty":     1,
			"total_amount":  1,
			"total_snf":     1,
		}}},
	}

	cursor, err := r.db.Collection(entriesCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Storage(err, "aggregate collection summary")
	}

	var rows []models.CustomerSummary
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, apperr.Storage(err, "decode collection summary")
	}
	return rows, nil
}
