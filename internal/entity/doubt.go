package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DoubtPending  = "pending"
	DoubtResolved = "resolved"
)

// Doubt is a student question. Status moves pending -> resolved, one way.
type Doubt struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text      string             `bson:"text" json:"text"`
	StudentID string             `bson:"studentId" json:"studentId"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	Answer    *string            `bson:"answer,omitempty" json:"answer,omitempty"`
}
