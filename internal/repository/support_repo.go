package repository

import (
	"context"

	"github.com/anusasana/portal/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SupportMessageRepository interface {
	Create(ctx context.Context, m *entity.SupportMessage) error
	// FindByUser returns one user's conversation log, oldest first, so the
	// client can render it top to bottom.
	FindByUser(ctx context.Context, userID string) ([]entity.SupportMessage, error)
}

type supportMessageRepository struct {
	col *mongo.Collection
}

func NewSupportMessageRepository(col *mongo.Collection) SupportMessageRepository {
	return &supportMessageRepository{col: col}
}

func (r *supportMessageRepository) Create(ctx context.Context, m *entity.SupportMessage) error {
	res, err := r.col.InsertOne(ctx, m)
	if err != nil {
		return err
	}

	m.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *supportMessageRepository) FindByUser(ctx context.Context, userID string) ([]entity.SupportMessage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: 1}}).
		SetLimit(listCap)

	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	messages := []entity.SupportMessage{}
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}
