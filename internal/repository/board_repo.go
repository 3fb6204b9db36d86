package repository

import (
	"context"

	"github.com/anusasana/portal/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Tasks, classes and announcements are append-only; their repositories are
// create-and-list only.

type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	FindAll(ctx context.Context) ([]entity.Task, error)
}

type ClassRepository interface {
	Create(ctx context.Context, cl *entity.Class) error
	FindAll(ctx context.Context) ([]entity.Class, error)
}

type AnnouncementRepository interface {
	Create(ctx context.Context, a *entity.Announcement) error
	FindAll(ctx context.Context) ([]entity.Announcement, error)
}

type taskRepository struct{ col *mongo.Collection }

func NewTaskRepository(col *mongo.Collection) TaskRepository {
	return &taskRepository{col: col}
}

func (r *taskRepository) Create(ctx context.Context, t *entity.Task) error {
	res, err := r.col.InsertOne(ctx, t)
	if err != nil {
		return err
	}
	t.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *taskRepository) FindAll(ctx context.Context) ([]entity.Task, error) {
	cur, err := r.col.Find(ctx, bson.M{}, newestFirst("createdAt"))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tasks := []entity.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

type classRepository struct{ col *mongo.Collection }

func NewClassRepository(col *mongo.Collection) ClassRepository {
	return &classRepository{col: col}
}

func (r *classRepository) Create(ctx context.Context, cl *entity.Class) error {
	res, err := r.col.InsertOne(ctx, cl)
	if err != nil {
		return err
	}
	cl.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *classRepository) FindAll(ctx context.Context) ([]entity.Class, error) {
	cur, err := r.col.Find(ctx, bson.M{}, newestFirst("createdAt"))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	classes := []entity.Class{}
	if err := cur.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

type announcementRepository struct{ col *mongo.Collection }

func NewAnnouncementRepository(col *mongo.Collection) AnnouncementRepository {
	return &announcementRepository{col: col}
}

func (r *announcementRepository) Create(ctx context.Context, a *entity.Announcement) error {
	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		return err
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *announcementRepository) FindAll(ctx context.Context) ([]entity.Announcement, error) {
	cur, err := r.col.Find(ctx, bson.M{}, newestFirst("timestamp"))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	announcements := []entity.Announcement{}
	if err := cur.All(ctx, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

func newestFirst(field string) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: field, Value: -1}}).
		SetLimit(listCap)
}
