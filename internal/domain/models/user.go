package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultCoefficientA and DefaultCoefficientB are the pricing coefficients
// assigned to a dairy owner at registration when none are supplied.
const (
	DefaultCoefficientA = 8
	DefaultCoefficientB = 2
)

// User is a dairy owner account. Every customer and milk entry belongs to
// exactly one user.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OwnerName string             `bson:"o_name" json:"o_name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	DairyName string             `bson:"dairy_name" json:"dairy_name"`
	MobileNo  string             `bson:"mobile_no" json:"mobile_no"`
	A         float64            `bson:"a" json:"a"`
	B         float64            `bson:"b" json:"b"`
}

// Tenant is the resolved identity attached to every authenticated request:
// the owning user id plus the pricing coefficients current at request time.
type Tenant struct {
	ID primitive.ObjectID
	A  float64
	B  float64
}
