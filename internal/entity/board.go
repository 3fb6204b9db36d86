package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task, Class and Announcement are teacher-authored, append-only records.

type Task struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	DueDate   string             `bson:"dueDate" json:"dueDate"`
	TeacherID string             `bson:"teacherId" json:"teacherId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Class struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	TeacherID string             `bson:"teacherId" json:"teacherId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Announcement struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text      string             `bson:"text" json:"text"`
	TeacherID string             `bson:"teacherId" json:"teacherId"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
