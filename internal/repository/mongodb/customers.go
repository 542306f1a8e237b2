package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pagarwal884/Aapni-Dairy/internal/domain/apperr"
	"github.com/pagarwal884/Aapni-Dairy/internal/domain/models"
)

// EnsureCounter creates the owner's sequence counter if it does not exist
// yet, seeded from the highest c_id already assigned to that owner so
// backfilled data cannot collide. Safe to call on every allocation: when the
// counter exists the call is a single read, and a concurrent create losing
// the insert race is absorbed by the unique index.
func (r *MongoDBRepository) EnsureCounter(ctx context.Context, userID primitive.ObjectID) error {
	counters := r.db.Collection(countersCollection)

	err := counters.FindOne(ctx, bson.M{"user_id": userID}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.Storage(err, "lookup sequence counter")
	}

	var seed int64
	var last models.Customer
	err = r.db.Collection(customersCollection).FindOne(ctx,
		bson.M{"user_id": userID},
		options.FindOne().SetSort(bson.D{{Key: "c_id", Value: -1}}),
	).Decode(&last)
	switch {
	case err == nil:
		seed = last.SeqNo
	case errors.Is(err, mongo.ErrNoDocuments):
		seed = 0
	default:
		return apperr.Storage(err, "find max customer c_id")
	}

	_, err = counters.InsertOne(ctx, models.SequenceCounter{UserID: userID, Value: seed})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return apperr.Storage(err, "seed sequence counter")
	}
	return nil
}

// NextSequence atomically increments the owner's counter and returns the new
// value. The upsert covers counters that were never seeded; EnsureCounter
// must run first for owners with pre-existing customers.
func (r *MongoDBRepository) NextSequence(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	var counter models.SequenceCounter
	err := r.db.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{"$inc": bson.M{"value": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, apperr.Storage(err, "increment sequence counter")
	}
	return counter.Value, nil
}

// InsertCustomer persists a new customer. A duplicate (user_id, c_id) pair
// should be impossible after NextSequence but is surfaced defensively.
func (r *MongoDBRepository) InsertCustomer(ctx context.Context, customer models.Customer) (models.Customer, error) {
	res, err := r.db.Collection(customersCollection).InsertOne(ctx, customer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Customer{}, apperr.Conflict("customer number already assigned")
		}
		return models.Customer{}, apperr.Storage(err, "insert customer")
	}

	customer.ID = res.InsertedID.(primitive.ObjectID)
	return customer, nil
}

// ListCustomers returns the owner's customers ordered by c_id.
func (r *MongoDBRepository) ListCustomers(ctx context.Context, userID primitive.ObjectID) ([]models.Customer, error) {
	cursor, err := r.db.Collection(customersCollection).Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "c_id", Value: 1}}),
	)
	if err != nil {
		return nil, apperr.Storage(err, "list customers")
	}

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, apperr.Storage(err, "decode customers")
	}
	return customers, nil
}

// FindCustomerBySeq returns the owner's customer with the given c_id.
func (r *MongoDBRepository) FindCustomerBySeq(ctx context.Context, userID primitive.ObjectID, seqNo int64) (models.Customer, error) {
	var customer models.Customer
	err := r.db.Collection(customersCollection).FindOne(ctx, bson.M{"user_id": userID, "c_id": seqNo}).Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Customer{}, apperr.NotFound("customer not found")
	}
	if err != nil {
		return models.Customer{}, apperr.Storage(err, "find customer by c_id")
	}
	return customer, nil
}

// RenameCustomer updates the display name of the owner's customer and
// returns the updated record.
func (r *MongoDBRepository) RenameCustomer(ctx context.Context, userID, id primitive.ObjectID, name string) (models.Customer, error) {
	var customer models.Customer
	err := r.db.Collection(customersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"c_name": name, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Customer{}, apperr.NotFound("customer not found")
	}
	if err != nil {
		return models.Customer{}, apperr.Storage(err, "rename customer")
	}
	return customer, nil
}

// DeleteCustomer removes the owner's customer.
func (r *MongoDBRepository) DeleteCustomer(ctx context.Context, userID, id primitive.ObjectID) error {
	res, err := r.db.Collection(customersCollection).DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return apperr.Storage(err, "delete customer")
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("customer not found")
	}
	return nil
}
