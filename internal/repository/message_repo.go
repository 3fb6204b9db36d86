package repository

import (
	"context"

	"github.com/anusasana/portal/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageRepository interface {
	Create(ctx context.Context, m *entity.Message) error
	// FindRecent returns the newest messages first, at most limit of them.
	FindRecent(ctx context.Context, limit int64) ([]entity.Message, error)
	FindBySender(ctx context.Context, userID string) ([]entity.Message, error)
	FindByReceiver(ctx context.Context, userID string) ([]entity.Message, error)
}

type messageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(col *mongo.Collection) MessageRepository {
	return &messageRepository{col: col}
}

func (r *messageRepository) Create(ctx context.Context, m *entity.Message) error {
	res, err := r.col.InsertOne(ctx, m)
	if err != nil {
		return err
	}

	m.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *messageRepository) FindRecent(ctx context.Context, limit int64) ([]entity.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	messages := []entity.Message{}
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *messageRepository) FindBySender(ctx context.Context, userID string) ([]entity.Message, error) {
	return r.find(ctx, bson.M{"senderId": userID})
}

func (r *messageRepository) FindByReceiver(ctx context.Context, userID string) ([]entity.Message, error) {
	return r.find(ctx, bson.M{"receiverId": userID})
}

func (r *messageRepository) find(ctx context.Context, filter bson.M) ([]entity.Message, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetLimit(listCap))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	messages := []entity.Message{}
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}
