package repository

import (
	"context"

	"github.com/anusasana/portal/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// listCap is the defensive bound on unfiltered list queries. The API has no
// pagination; this keeps a runaway collection from flattening the process.
const listCap = 500

type AssignmentRepository interface {
	Create(ctx context.Context, a *entity.Assignment) error
	FindByID(ctx context.Context, id string) (*entity.Assignment, error)
	FindAll(ctx context.Context) ([]entity.Assignment, error)
	// SetGrade writes the terminal grading fields in one update.
	SetGrade(ctx context.Context, id, status string, grade int, feedback string) error
}

type assignmentRepository struct {
	col *mongo.Collection
}

func NewAssignmentRepository(col *mongo.Collection) AssignmentRepository {
	return &assignmentRepository{col: col}
}

func (r *assignmentRepository) Create(ctx context.Context, a *entity.Assignment) error {
	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		return err
	}

	a.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *assignmentRepository) FindByID(ctx context.Context, id string) (*entity.Assignment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mapFindErr(mongo.ErrNoDocuments)
	}

	var a entity.Assignment
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&a); err != nil {
		return nil, mapFindErr(err)
	}

	return &a, nil
}

func (r *assignmentRepository) FindAll(ctx context.Context) ([]entity.Assignment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "submittedAt", Value: -1}}).
		SetLimit(listCap)

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	assignments := []entity.Assignment{}
	if err := cur.All(ctx, &assignments); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) SetGrade(ctx context.Context, id, status string, grade int, feedback string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mapFindErr(mongo.ErrNoDocuments)
	}

	update := bson.M{"$set": bson.M{
		"status":   status,
		"grade":    grade,
		"feedback": feedback,
	}}

	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mapFindErr(mongo.ErrNoDocuments)
	}

	return nil
}
