package repository

import (
	"context"

	"github.com/anusasana/portal/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DoubtRepository interface {
	Create(ctx context.Context, d *entity.Doubt) error
	FindByID(ctx context.Context, id string) (*entity.Doubt, error)
	FindAll(ctx context.Context) ([]entity.Doubt, error)
	SetResolved(ctx context.Context, id string, answer *string) error
}

type doubtRepository struct {
	col *mongo.Collection
}

func NewDoubtRepository(col *mongo.Collection) DoubtRepository {
	return &doubtRepository{col: col}
}

func (r *doubtRepository) Create(ctx context.Context, d *entity.Doubt) error {
	res, err := r.col.InsertOne(ctx, d)
	if err != nil {
		return err
	}

	d.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *doubtRepository) FindByID(ctx context.Context, id string) (*entity.Doubt, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mapFindErr(mongo.ErrNoDocuments)
	}

	var d entity.Doubt
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, mapFindErr(err)
	}

	return &d, nil
}

func (r *doubtRepository) FindAll(ctx context.Context) ([]entity.Doubt, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(listCap)

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	doubts := []entity.Doubt{}
	if err := cur.All(ctx, &doubts); err != nil {
		return nil, err
	}

	return doubts, nil
}

func (r *doubtRepository) SetResolved(ctx context.Context, id string, answer *string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mapFindErr(mongo.ErrNoDocuments)
	}

	set := bson.M{"status": entity.DoubtResolved}
	if answer != nil {
		set["answer"] = *answer
	}

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mapFindErr(mongo.ErrNoDocuments)
	}

	return nil
}
