package service

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/anusasana/portal/internal/entity"
	"github.com/anusasana/portal/internal/repository"
	"github.com/anusasana/portal/pkg/apperror"
)

// cannedResponses is the support bot's entire vocabulary. The bot is a stub
// by contract: one inbound message produces exactly one of these, chosen
// uniformly at random.
var cannedResponses = []string{
	"How can I help you with your learning today?",
	"That's an interesting question! Let me find some resources for you.",
	"I understand your concern. Let me connect you with a teacher.",
	"Have you checked the assignments section for this topic?",
	"Great progress! Keep up the good work.",
}

type SupportService interface {
	// Append records one entry in the user's support conversation log.
	Append(ctx context.Context, userID, text string, isFromUser bool) (*entity.SupportMessage, error)
	ListForUser(ctx context.Context, userID string) ([]entity.SupportMessage, error)
	// PickResponse selects the bot's reply to an inbound message.
	PickResponse() string
}

type supportService struct {
	repo repository.SupportMessageRepository
}

func NewSupportService(repo repository.SupportMessageRepository) SupportService {
	return &supportService{repo: repo}
}

func (s *supportService) Append(ctx context.Context, userID, text string, isFromUser bool) (*entity.SupportMessage, error) {
	if isFromUser {
		text = sanitizeText(text)
	}
	if userID == "" || text == "" {
		return nil, apperror.New(http.StatusBadRequest, "userId and text are required", apperror.ErrInvalidInput)
	}

	m := &entity.SupportMessage{
		UserID:     userID,
		Text:       text,
		IsFromUser: isFromUser,
		Timestamp:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *supportService) ListForUser(ctx context.Context, userID string) ([]entity.SupportMessage, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *supportService) PickResponse() string {
	return cannedResponses[rand.Intn(len(cannedResponses))]
}
