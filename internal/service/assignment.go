package service

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/anusasana/portal/internal/dto"
	"github.com/anusasana/portal/internal/entity"
	"github.com/anusasana/portal/internal/repository"
	"github.com/anusasana/portal/pkg/apperror"
)

// autoGradeFeedback is the canned remark attached by the simulated OCR
// grader. Real grading feedback comes from teachers via Grade.
const autoGradeFeedback = "Automatically graded. Good understanding of concepts. Make sure to include more detailed explanations."

type AssignmentService interface {
	// Submit stores a new submission. Submissions that arrived through the
	// text-extraction path (FileURL set) take the auto-grade branch; manual
	// text submissions start out pending for a teacher to grade.
	Submit(ctx context.Context, input dto.SubmitAssignmentInput) (*entity.Assignment, error)
	List(ctx context.Context) ([]entity.Assignment, error)
	// Grade moves a pending assignment to graded. Terminal assignments are
	// left untouched; regrading is a no-op, never an error.
	Grade(ctx context.Context, id string, input dto.GradeAssignmentInput) (*entity.Assignment, error)
}

type assignmentService struct {
	repo repository.AssignmentRepository
}

func NewAssignmentService(repo repository.AssignmentRepository) AssignmentService {
	return &assignmentService{repo: repo}
}

func (s *assignmentService) Submit(ctx context.Context, input dto.SubmitAssignmentInput) (*entity.Assignment, error) {
	text := sanitizeText(input.Text)
	if input.Name == "" || text == "" || input.StudentID == "" {
		return nil, apperror.New(http.StatusBadRequest, "name, text, and studentId are required", apperror.ErrInvalidInput)
	}

	a := &entity.Assignment{
		Name:        input.Name,
		Text:        text,
		StudentID:   input.StudentID,
		FileURL:     input.FileURL,
		SubmittedAt: time.Now().UTC(),
		Status:      entity.AssignmentPending,
	}

	if input.FileURL != nil {
		grade := autoGrade()
		feedback := autoGradeFeedback
		a.Status = entity.AssignmentAutoGraded
		a.Grade = &grade
		a.Feedback = &feedback
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *assignmentService) List(ctx context.Context) ([]entity.Assignment, error) {
	return s.repo.FindAll(ctx)
}

func (s *assignmentService) Grade(ctx context.Context, id string, input dto.GradeAssignmentInput) (*entity.Assignment, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// graded and auto-graded are terminal; a repeat call returns the record
	// as it stands.
	if a.Terminal() {
		return a, nil
	}

	if err := s.repo.SetGrade(ctx, id, entity.AssignmentGraded, *input.Grade, input.Feedback); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

// autoGrade is the demo grader: a score between 70 and 100.
func autoGrade() int {
	return rand.Intn(31) + 70
}
