package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultSnf is the solids-not-fat percentage recorded when a delivery does
// not specify one.
const DefaultSnf = 8.5

// MilkEntry is one recorded milk delivery. A and B are snapshots of the
// owner's coefficients at write time; historical entries are never repriced
// when the owner changes them later.
type MilkEntry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	CustomerID    primitive.ObjectID `bson:"customer_id" json:"customer_id"`
	CustomerSeqNo int64              `bson:"customer_c_id" json:"customer_c_id"`
	Shift         string             `bson:"shift" json:"shift"`
	Quantity      float64            `bson:"quantity" json:"quantity"`
	Fat           float64            `bson:"fat" json:"fat"`
	Snf           float64            `bson:"snf" json:"snf"`
	SnfK          float64            `bson:"snf_k" json:"SNF_K"`
	A             float64            `bson:"a" json:"a"`
	B             float64            `bson:"b" json:"b"`
	Rate          float64            `bson:"rate" json:"rate"`
	TotalAmount   float64            `bson:"total_amount" json:"total_amount"`
	EntryDate     time.Time          `bson:"entry_date" json:"entryDate"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// EntryListItem is a milk entry joined with its customer's display name and
// running number, as returned by the list-all endpoint.
type EntryListItem struct {
	ID            primitive.ObjectID `bson:"_id" json:"_id"`
	CustomerName  string             `bson:"customer_name" json:"customerName"`
	CustomerSeqNo int64              `bson:"customer_c_id" json:"customerCid"`
	Quantity      float64            `bson:"quantity" json:"quantity"`
	Fat           float64            `bson:"fat" json:"fat"`
	Snf           float64            `bson:"snf" json:"snf"`
	Shift         string             `bson:"shift" json:"shift"`
	EntryDate     time.Time          `bson:"entry_date" json:"entryDate"`
	Rate          float64            `bson:"rate" json:"rate"`
	TotalAmount   float64            `bson:"total_amount" json:"total_amount"`
}
