package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"nihongo-server/internal/database"
	"nihongo-server/internal/model"
)

type LessonRepository struct {
	collection *mongo.Collection
}

func NewLessonRepository(db *database.DB) *LessonRepository {
	return &LessonRepository{collection: db.Collection(database.LessonsCollection)}
}

// List returns all lessons ordered by number, each with the count of
// vocabulary entries referencing its lesson number.
func (r *LessonRepository) List(ctx context.Context) ([]model.LessonSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         database.VocabulariesCollection,
			"localField":   "number",
			"foreignField": "lessonNo",
			"as":           "entries",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"vocabularyCount": bson.M{"$size": "$entries"},
		}}},
		{{Key: "$project", Value: bson.M{"entries": 0}}},
		{{Key: "$sort", Value: bson.D{{Key: "number", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate lessons: %w", err)
	}

	lessons := make([]model.LessonSummary, 0)
	if err := cursor.All(ctx, &lessons); err != nil {
		return nil, fmt.Errorf("decode lessons: %w", err)
	}
	return lessons, nil
}

func (r *LessonRepository) Insert(ctx context.Context, lesson model.Lesson) (model.Lesson, error) {
	res, err := r.collection.InsertOne(ctx, lesson)
	if err != nil {
		return model.Lesson{}, fmt.Errorf("insert lesson: %w", err)
	}

	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		lesson.ID = oid
	}
	return lesson, nil
}

func (r *LessonRepository) Update(ctx context.Context, id string, name string, number int) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrLessonNotFound
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"name": name, "number": number}})
	if err != nil {
		return fmt.Errorf("update lesson: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrLessonNotFound
	}
	return nil
}

func (r *LessonRepository) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrLessonNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrLessonNotFound
	}
	return nil
}
