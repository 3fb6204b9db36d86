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

// BoardService covers the teacher-authored, append-only resources: tasks,
// classes and announcements.
type BoardService interface {
	CreateTask(ctx context.Context, input dto.CreateTaskInput) (*entity.Task, error)
	ListTasks(ctx context.Context) ([]entity.Task, error)
	CreateClass(ctx context.Context, input dto.CreateClassInput) (*entity.Class, error)
	ListClasses(ctx context.Context) ([]entity.Class, error)
	CreateAnnouncement(ctx context.Context, input dto.CreateAnnouncementInput) (*entity.Announcement, error)
	ListAnnouncements(ctx context.Context) ([]entity.Announcement, error)
}

type boardService struct {
	tasks         repository.TaskRepository
	classes       repository.ClassRepository
	announcements repository.AnnouncementRepository
}

func NewBoardService(
	tasks repository.TaskRepository,
	classes repository.ClassRepository,
	announcements repository.AnnouncementRepository,
) BoardService {
	return &boardService{
		tasks:         tasks,
		classes:       classes,
		announcements: announcements,
	}
}

func (s *boardService) CreateTask(ctx context.Context, input dto.CreateTaskInput) (*entity.Task, error) {
	if input.Name == "" || input.DueDate == "" || input.TeacherID == "" {
		return nil, apperror.New(http.StatusBadRequest, "name, dueDate, and teacherId are required", apperror.ErrInvalidInput)
	}

	t := &entity.Task{
		Name:      sanitizeText(input.Name),
		DueDate:   input.DueDate,
		TeacherID: input.TeacherID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *boardService) ListTasks(ctx context.Context) ([]entity.Task, error) {
	return s.tasks.FindAll(ctx)
}

func (s *boardService) CreateClass(ctx context.Context, input dto.CreateClassInput) (*entity.Class, error) {
	if input.Title == "" || input.TeacherID == "" {
		return nil, apperror.New(http.StatusBadRequest, "title and teacherId are required", apperror.ErrInvalidInput)
	}

	cl := &entity.Class{
		Title:     sanitizeText(input.Title),
		TeacherID: input.TeacherID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.classes.Create(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

func (s *boardService) ListClasses(ctx context.Context) ([]entity.Class, error) {
	return s.classes.FindAll(ctx)
}

func (s *boardService) CreateAnnouncement(ctx context.Context, input dto.CreateAnnouncementInput) (*entity.Announcement, error) {
	text := sanitizeText(input.Text)
	if text == "" || input.TeacherID == "" {
		return nil, apperror.New(http.StatusBadRequest, "text, teacherId, and timestamp are required", apperror.ErrInvalidInput)
	}

	// The client supplies a timestamp but the server's clock wins.
	a := &entity.Announcement{
		Text:      text,
		TeacherID: input.TeacherID,
		Timestamp: time.Now().UTC(),
	}

	if err := s.announcements.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *boardService) ListAnnouncements(ctx context.Context) ([]entity.Announcement, error) {
	return s.announcements.FindAll(ctx)
}
