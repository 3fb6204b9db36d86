package service

import (
	"context"
	"net/http"
	"time"

	"github.com/anusasana/portal/internal/dto"
	"github.com/anusasana/portal/internal/entity"
	"github.com/anusasana/portal/internal/repository"
	"github.com/anusasana/portal/pkg/apperror"
)

type DoubtService interface {
	Create(ctx context.Context, input dto.CreateDoubtInput) (*entity.Doubt, error)
	List(ctx context.Context) ([]entity.Doubt, error)
	// Resolve moves a doubt to resolved. Resolving an already-resolved doubt
	// is a no-op and returns the stored record unchanged.
	Resolve(ctx context.Context, id string, input dto.ResolveDoubtInput) (*entity.Doubt, error)
}

type doubtService struct {
	repo repository.DoubtRepository
}

func NewDoubtService(repo repository.DoubtRepository) DoubtService {
	return &doubtService{repo: repo}
}

func (s *doubtService) Create(ctx context.Context, input dto.CreateDoubtInput) (*entity.Doubt, error) {
	text := sanitizeText(input.Text)
	if text == "" || input.StudentID == "" || input.Status == "" {
		return nil, apperror.New(http.StatusBadRequest, "text, studentId, and status are required", apperror.ErrInvalidInput)
	}
	if input.Status != entity.DoubtPending && input.Status != entity.DoubtResolved {
		return nil, apperror.New(http.StatusBadRequest, "status must be pending or resolved", apperror.ErrInvalidInput)
	}

	d := &entity.Doubt{
		Text:      text,
		StudentID: input.StudentID,
		Status:    input.Status,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *doubtService) List(ctx context.Context) ([]entity.Doubt, error) {
	return s.repo.FindAll(ctx)
}

func (s *doubtService) Resolve(ctx context.Context, id string, input dto.ResolveDoubtInput) (*entity.Doubt, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if d.Status == entity.DoubtResolved {
		return d, nil
	}

	var answer *string
	if input.Answer != nil {
		a := sanitizeText(*input.Answer)
		answer = &a
	}

	if err := s.repo.SetResolved(ctx, id, answer); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}
