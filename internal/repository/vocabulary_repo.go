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

type VocabularyRepository struct {
	collection *mongo.Collection
}

func NewVocabularyRepository(db *database.DB) *VocabularyRepository {
	return &VocabularyRepository{collection: db.Collection(database.VocabulariesCollection)}
}

func (r *VocabularyRepository) ListByLesson(ctx context.Context, lessonNumber int) ([]model.Vocabulary, error) {
	return r.list(ctx, bson.M{"lessonNo": lessonNumber})
}

func (r *VocabularyRepository) ListAll(ctx context.Context) ([]model.Vocabulary, error) {
	return r.list(ctx, bson.M{})
}

func (r *VocabularyRepository) list(ctx context.Context, filter bson.M) ([]model.Vocabulary, error) {
	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "word", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list vocabularies: %w", err)
	}

	entries := make([]model.Vocabulary, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode vocabularies: %w", err)
	}
	return entries, nil
}

func (r *VocabularyRepository) Insert(ctx context.Context, entry model.Vocabulary) (model.Vocabulary, error) {
	res, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return model.Vocabulary{}, fmt.Errorf("insert vocabulary: %w", err)
	}

	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		entry.ID = oid
	}
	return entry, nil
}

func (r *VocabularyRepository) Update(ctx context.Context, id string, entry model.Vocabulary) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrVocabularyNotFound
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"word":          entry.Word,
			"pronunciation": entry.Pronunciation,
			"meaning":       entry.Meaning,
			"whenToSay":     entry.WhenToSay,
			"lessonNo":      entry.LessonNumber,
		}})
	if err != nil {
		return fmt.Errorf("update vocabulary: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrVocabularyNotFound
	}
	return nil
}

func (r *VocabularyRepository) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrVocabularyNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete vocabulary: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrVocabularyNotFound
	}
	return nil
}
