package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is a milk supplier registered under a dairy owner. SeqNo is the
// owner-scoped running number (c_id) assigned exactly once at creation; the
// (user_id, c_id) pair is unique.
type Customer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"c_name" json:"c_name"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	SeqNo     int64              `bson:"c_id" json:"c_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// SequenceCounter backs the per-owner customer numbering. Value only ever
// moves forward, through a single atomic increment-and-return.
type SequenceCounter struct {
	UserID primitive.ObjectID `bson:"user_id"`
	Value  int64              `bson:"value"`
}
