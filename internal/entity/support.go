package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SupportMessage is one entry in a user's support-chat log.
// IsFromUser distinguishes the user's messages from bot replies.
type SupportMessage struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"userId" json:"userId"`
	Text       string             `bson:"text" json:"text"`
	IsFromUser bool               `bson:"isFromUser" json:"isFromUser"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}
