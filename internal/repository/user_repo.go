package repository

import (
	"context"

	"github.com/anusasana/portal/internal/entity"
	"github.com/anusasana/portal/pkg/apperror"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByUniqueID resolves a human-entered ID. It filters by role as well:
	// the STU- and TCH- namespaces are not globally unique across roles.
	FindByUniqueID(ctx context.Context, uniqueID, role string) (*entity.User, error)
	FindByRole(ctx context.Context, role string) ([]entity.User, error)
}

type userRepository struct {
	col *mongo.Collection
}

func NewUserRepository(col *mongo.Collection) UserRepository {
	return &userRepository{col: col}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.ErrConflict
		}
		return err
	}

	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.ErrNotFound
	}

	var user entity.User
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, mapFindErr(err)
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, mapFindErr(err)
	}

	return &user, nil
}

func (r *userRepository) FindByUniqueID(ctx context.Context, uniqueID, role string) (*entity.User, error) {
	var user entity.User
	filter := bson.M{"uniqueId": uniqueID, "role": role}
	if err := r.col.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mapFindErr(err)
	}

	return &user, nil
}

func (r *userRepository) FindByRole(ctx context.Context, role string) ([]entity.User, error) {
	cur, err := r.col.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []entity.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}

func mapFindErr(err error) error {
	if err == mongo.ErrNoDocuments {
		return apperror.ErrNotFound
	}
	return err
}
