package repository

import (
	"github.com/anusasana/portal/pkg/database"
	"go.mongodb.org/mongo-driver/mongo"
)

// Set bundles every repository so the server wiring (and the tests, with the
// in-memory implementations) can pass them around as one unit.
type Set struct {
	Users           UserRepository
	Assignments     AssignmentRepository
	Messages        MessageRepository
	Doubts          DoubtRepository
	Tasks           TaskRepository
	Classes         ClassRepository
	Announcements   AnnouncementRepository
	SupportMessages SupportMessageRepository
}

// NewMongoSet builds the production repositories over the document store.
func NewMongoSet(db *mongo.Database) Set {
	return Set{
		Users:           NewUserRepository(db.Collection(database.ColUsers)),
		Assignments:     NewAssignmentRepository(db.Collection(database.ColAssignments)),
		Messages:        NewMessageRepository(db.Collection(database.ColMessages)),
		Doubts:          NewDoubtRepository(db.Collection(database.ColDoubts)),
		Tasks:           NewTaskRepository(db.Collection(database.ColTasks)),
		Classes:         NewClassRepository(db.Collection(database.ColClasses)),
		Announcements:   NewAnnouncementRepository(db.Collection(database.ColAnnouncements)),
		SupportMessages: NewSupportMessageRepository(db.Collection(database.ColSupportMessages)),
	}
}
