package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"nihongo-server/internal/database"
	"nihongo-server/internal/model"
)

// UserRepository is the credential store: user records keyed by their
// unique email, matched case-sensitively.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{collection: db.Collection(database.UsersCollection)}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&u)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return model.User{}, model.ErrUserNotFound
	}

	var u model.User
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&u)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// Insert persists a new user. The unique index on email turns a lost
// check-then-insert race into ErrDuplicateEmail instead of a second
// record for the same identity.
func (r *UserRepository) Insert(ctx context.Context, u model.User) (model.User, error) {
	res, err := r.collection.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return model.User{}, model.ErrDuplicateEmail
	}
	if err != nil {
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}

	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		u.ID = oid
	}
	return u, nil
}

// UpdateRole sets the role of the user with the given id. It reports
// changed=false without error when the record already carries the role,
// so the handler can answer 304 instead of 200.
func (r *UserRepository) UpdateRole(ctx context.Context, id string, role string) (bool, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, model.ErrUserNotFound
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "role": bson.M{"$ne": role}},
		bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return false, fmt.Errorf("update user role: %w", err)
	}
	if res.MatchedCount > 0 {
		return true, nil
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	if count == 0 {
		return false, model.ErrUserNotFound
	}
	return false, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]model.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}
