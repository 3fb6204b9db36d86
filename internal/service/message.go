package service

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/anusasana/portal/internal/dto"
	"github.com/anusasana/portal/internal/entity"
	"github.com/anusasana/portal/internal/repository"
	"github.com/anusasana/portal/pkg/apperror"
	"github.com/redis/go-redis/v9"
)

// recentMessageLimit caps the global feed query.
const recentMessageLimit = 50

type MessageService interface {
	Send(ctx context.Context, input dto.CreateMessageInput) (*entity.Message, error)
	ListRecent(ctx context.Context) ([]entity.Message, error)
	// ListForUser is the union of messages the user sent and received,
	// newest first, each tagged with an isSent flag.
	ListForUser(ctx context.Context, userID string) ([]dto.UserMessage, error)
}

type messageService struct {
	repo      repository.MessageRepository
	rdb       *redis.Client
	rateLimit time.Duration
}

func NewMessageService(repo repository.MessageRepository, rdb *redis.Client, rateLimit time.Duration) MessageService {
	return &messageService{
		repo:      repo,
		rdb:       rdb,
		rateLimit: rateLimit,
	}
}

func (s *messageService) Send(ctx context.Context, input dto.CreateMessageInput) (*entity.Message, error) {
	text := sanitizeText(input.Text)
	if input.SenderID == "" || input.ReceiverID == "" || text == "" {
		return nil, apperror.New(http.StatusBadRequest, "missing required fields", apperror.ErrInvalidInput)
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.rdb, input.SenderID, "message", s.rateLimit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.New(http.StatusTooManyRequests, "you are sending messages too quickly", apperror.ErrRateLimitExceeded)
	}

	ts := time.Now().UTC()
	if input.Timestamp != nil {
		ts = input.Timestamp.UTC()
	}

	m := &entity.Message{
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		Text:       text,
		Timestamp:  ts,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *messageService) ListRecent(ctx context.Context) ([]entity.Message, error) {
	return s.repo.FindRecent(ctx, recentMessageLimit)
}

func (s *messageService) ListForUser(ctx context.Context, userID string) ([]dto.UserMessage, error) {
	sent, err := s.repo.FindBySender(ctx, userID)
	if err != nil {
		return nil, err
	}
	received, err := s.repo.FindByReceiver(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserMessage, 0, len(sent)+len(received))
	for _, m := range sent {
		out = append(out, dto.UserMessage{Message: m, IsSent: true})
	}
	for _, m := range received {
		// Self-addressed messages already appear in the sent pass.
		if m.SenderID == userID {
			continue
		}
		out = append(out, dto.UserMessage{Message: m, IsSent: false})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	return out, nil
}
