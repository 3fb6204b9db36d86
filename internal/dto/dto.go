package dto

import (
	"time"

	"github.com/anusasana/portal/internal/entity"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=student teacher"`
	College  string `json:"college" binding:"required"`
	// UniqueID is generated server-side when the client does not supply one.
	UniqueID string `json:"uniqueId"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token     string            `json:"token"`
	TokenType string            `json:"token_type"`
	ExpiresIn int64             `json:"expires_in"`
	User      entity.PublicUser `json:"user"`
}

type SubmitAssignmentInput struct {
	Name      string  `json:"name" binding:"required"`
	Text      string  `json:"text" binding:"required"`
	StudentID string  `json:"studentId" binding:"required"`
	FileURL   *string `json:"fileUrl"`
}

type GradeAssignmentInput struct {
	Grade    *int   `json:"grade" binding:"required,min=0,max=100"`
	Feedback string `json:"feedback"`
}

type CreateMessageInput struct {
	SenderID   string `json:"senderId" binding:"required"`
	ReceiverID string `json:"receiverId" binding:"required"`
	Text       string `json:"text" binding:"required"`
	// Timestamp is server-set when omitted.
	Timestamp *time.Time `json:"timestamp"`
}

// UserMessage is a message viewed from one user's side of the conversation.
type UserMessage struct {
	entity.Message
	IsSent bool `json:"isSent"`
}

type CreateDoubtInput struct {
	Text      string `json:"text" binding:"required"`
	StudentID string `json:"studentId" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

type ResolveDoubtInput struct {
	Answer *string `json:"answer"`
}

type CreateTaskInput struct {
	Name      string `json:"name" binding:"required"`
	DueDate   string `json:"dueDate" binding:"required"`
	TeacherID string `json:"teacherId" binding:"required"`
}

type CreateClassInput struct {
	Title     string `json:"title" binding:"required"`
	TeacherID string `json:"teacherId" binding:"required"`
}

type CreateAnnouncementInput struct {
	Text      string `json:"text" binding:"required"`
	TeacherID string `json:"teacherId" binding:"required"`
	// Clients always send a timestamp; the server sets its own regardless.
	Timestamp *time.Time `json:"timestamp" binding:"required"`
}

type ExtractResult struct {
	Filename string  `json:"filename"`
	Text     string  `json:"text"`
	FileURL  *string `json:"fileUrl,omitempty"`
}
