package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID   string             `bson:"senderId" json:"senderId"`
	ReceiverID string             `bson:"receiverId" json:"receiverId"`
	Text       string             `bson:"text" json:"text"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	Read       bool               `bson:"read" json:"read"`
}
