// Package memory provides in-memory implementations of the repositories.
// They back the tests and let the server run without a document store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/anusasana/portal/internal/entity"
	"github.com/anusasana/portal/internal/repository"
	"github.com/anusasana/portal/pkg/apperror"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewSet returns a fresh, empty set of in-memory repositories.
func NewSet() repository.Set {
	return repository.Set{
		Users:           &userRepository{},
		Assignments:     &assignmentRepository{},
		Messages:        &messageRepository{},
		Doubts:          &doubtRepository{},
		Tasks:           &taskRepository{},
		Classes:         &classRepository{},
		Announcements:   &announcementRepository{},
		SupportMessages: &supportMessageRepository{},
	}
}

type userRepository struct {
	mu    sync.RWMutex
	users []entity.User
}

func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return apperror.ErrConflict
		}
	}

	user.ID = primitive.NewObjectID()
	r.users = append(r.users, *user)
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID.Hex() == id {
			u := u
			return &u, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *userRepository) FindByUniqueID(_ context.Context, uniqueID, role string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.UniqueID == uniqueID && u.Role == role {
			u := u
			return &u, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *userRepository) FindByRole(_ context.Context, role string) ([]entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := []entity.User{}
	for _, u := range r.users {
		if u.Role == role {
			users = append(users, u)
		}
	}
	return users, nil
}

type assignmentRepository struct {
	mu          sync.RWMutex
	assignments []entity.Assignment
}

func (r *assignmentRepository) Create(_ context.Context, a *entity.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = primitive.NewObjectID()
	r.assignments = append(r.assignments, *a)
	return nil
}

func (r *assignmentRepository) FindByID(_ context.Context, id string) (*entity.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.assignments {
		if a.ID.Hex() == id {
			a := a
			return &a, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *assignmentRepository) FindAll(_ context.Context) ([]entity.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]entity.Assignment{}, r.assignments...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

func (r *assignmentRepository) SetGrade(_ context.Context, id, status string, grade int, feedback string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.assignments {
		if r.assignments[i].ID.Hex() == id {
			r.assignments[i].Status = status
			r.assignments[i].Grade = &grade
			r.assignments[i].Feedback = &feedback
			return nil
		}
	}
	return apperror.ErrNotFound
}

type messageRepository struct {
	mu       sync.RWMutex
	messages []entity.Message
}

func (r *messageRepository) Create(_ context.Context, m *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = primitive.NewObjectID()
	r.messages = append(r.messages, *m)
	return nil
}

func (r *messageRepository) FindRecent(_ context.Context, limit int64) ([]entity.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]entity.Message{}, r.messages...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *messageRepository) FindBySender(_ context.Context, userID string) ([]entity.Message, error) {
	return r.filter(func(m entity.Message) bool { return m.SenderID == userID })
}

func (r *messageRepository) FindByReceiver(_ context.Context, userID string) ([]entity.Message, error) {
	return r.filter(func(m entity.Message) bool { return m.ReceiverID == userID })
}

func (r *messageRepository) filter(keep func(entity.Message) bool) ([]entity.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []entity.Message{}
	for _, m := range r.messages {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

type doubtRepository struct {
	mu     sync.RWMutex
	doubts []entity.Doubt
}

func (r *doubtRepository) Create(_ context.Context, d *entity.Doubt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d.ID = primitive.NewObjectID()
	r.doubts = append(r.doubts, *d)
	return nil
}

func (r *doubtRepository) FindByID(_ context.Context, id string) (*entity.Doubt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.doubts {
		if d.ID.Hex() == id {
			d := d
			return &d, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *doubtRepository) FindAll(_ context.Context) ([]entity.Doubt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]entity.Doubt{}, r.doubts...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *doubtRepository) SetResolved(_ context.Context, id string, answer *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.doubts {
		if r.doubts[i].ID.Hex() == id {
			r.doubts[i].Status = entity.DoubtResolved
			if answer != nil {
				r.doubts[i].Answer = answer
			}
			return nil
		}
	}
	return apperror.ErrNotFound
}

type taskRepository struct {
	mu    sync.RWMutex
	tasks []entity.Task
}

func (r *taskRepository) Create(_ context.Context, t *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = primitive.NewObjectID()
	r.tasks = append(r.tasks, *t)
	return nil
}

func (r *taskRepository) FindAll(_ context.Context) ([]entity.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]entity.Task{}, r.tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type classRepository struct {
	mu      sync.RWMutex
	classes []entity.Class
}

func (r *classRepository) Create(_ context.Context, cl *entity.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cl.ID = primitive.NewObjectID()
	r.classes = append(r.classes, *cl)
	return nil
}

func (r *classRepository) FindAll(_ context.Context) ([]entity.Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]entity.Class{}, r.classes...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type announcementRepository struct {
	mu            sync.RWMutex
	announcements []entity.Announcement
}

func (r *announcementRepository) Create(_ context.Context, a *entity.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = primitive.NewObjectID()
	r.announcements = append(r.announcements, *a)
	return nil
}

func (r *announcementRepository) FindAll(_ context.Context) ([]entity.Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]entity.Announcement{}, r.announcements...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

type supportMessageRepository struct {
	mu       sync.RWMutex
	messages []entity.SupportMessage
}

func (r *supportMessageRepository) Create(_ context.Context, m *entity.SupportMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = primitive.NewObjectID()
	r.messages = append(r.messages, *m)
	return nil
}

func (r *supportMessageRepository) FindByUser(_ context.Context, userID string) ([]entity.SupportMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []entity.SupportMessage{}
	for _, m := range r.messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}
