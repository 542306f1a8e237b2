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

// InsertUser persists a new owner account. Duplicate email or mobile number
// surfaces as a conflict.
func (r *MongoDBRepository) InsertUser(ctx context.Context, user models.User) (models.User, error) {
	res, err := r.db.Collection(usersCollection).InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, apperr.Conflict("email or mobile number already registered")
		}
		return models.User{}, apperr.Storage(err, "insert user")
	}

	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

// EmailOrMobileExists reports whether any account already uses the given
// email or mobile number.
func (r *MongoDBRepository) EmailOrMobileExists(ctx context.Context, email, mobile string) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"mobile_no": mobile},
	}}

	err := r.db.Collection(usersCollection).FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, apperr.Storage(err, "lookup user by email/mobile")
}

// FindUserByMobile returns the account registered under the mobile number.
func (r *MongoDBRepository) FindUserByMobile(ctx context.Context, mobile string) (models.User, error) {
	var user models.User
	err := r.db.Collection(usersCollection).FindOne(ctx, bson.M{"mobile_no": mobile}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return models.User{}, apperr.Storage(err, "find user by mobile")
	}
	return user, nil
}

// FindUserByID returns the account with the given id.
func (r *MongoDBRepository) FindUserByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := r.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return models.User{}, apperr.Storage(err, "find user by id")
	}
	return user, nil
}

// UpdateCoefficients overwrites the owner's pricing coefficients and returns
// the updated account.
func (r *MongoDBRepository) UpdateCoefficients(ctx context.Context, id primitive.ObjectID, a, b float64) (models.User, error) {
	var user models.User
	err := r.db.Collection(usersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"a": a, "b": b}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return models.User{}, apperr.Storage(err, "update coefficients")
	}
	return user, nil
}
