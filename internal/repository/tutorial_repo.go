package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"nihongo-server/internal/database"
	"nihongo-server/internal/model"
)

type TutorialRepository struct {
	collection *mongo.Collection
}

func NewTutorialRepository(db *database.DB) *TutorialRepository {
	return &TutorialRepository{collection: db.Collection(database.TutorialsCollection)}
}

func (r *TutorialRepository) List(ctx context.Context) ([]model.Tutorial, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list tutorials: %w", err)
	}

	tutorials := make([]model.Tutorial, 0)
	if err := cursor.All(ctx, &tutorials); err != nil {
		return nil, fmt.Errorf("decode tutorials: %w", err)
	}
	return tutorials, nil
}

func (r *TutorialRepository) Insert(ctx context.Context, tutorial model.Tutorial) (model.Tutorial, error) {
	res, err := r.collection.InsertOne(ctx, tutorial)
	if err != nil {
		return model.Tutorial{}, fmt.Errorf("insert tutorial: %w", err)
	}

	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		tutorial.ID = oid
	}
	return tutorial, nil
}

func (r *TutorialRepository) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrTutorialNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete tutorial: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrTutorialNotFound
	}
	return nil
}
