package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AssignmentPending    = "pending"
	AssignmentGraded     = "graded"
	AssignmentAutoGraded = "auto-graded"
)

// Assignment is a student submission. Status moves one way:
// pending -> graded (manual) or pending -> auto-graded (OCR path).
// Both end states are terminal.
type Assignment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Text        string             `bson:"text" json:"text"`
	StudentID   string             `bson:"studentId" json:"studentId"`
	FileURL     *string            `bson:"fileUrl,omitempty" json:"fileUrl,omitempty"`
	SubmittedAt time.Time          `bson:"submittedAt" json:"submittedAt"`
	Status      string             `bson:"status" json:"status"`
	Grade       *int               `bson:"grade,omitempty" json:"grade,omitempty"`
	Feedback    *string            `bson:"feedback,omitempty" json:"feedback,omitempty"`
}

func (a *Assignment) Terminal() bool {
	return a.Status == AssignmentGraded || a.Status == AssignmentAutoGraded
}
