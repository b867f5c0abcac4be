package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Lesson struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string        `bson:"name" json:"name"`
	Number    int           `bson:"number" json:"number"`
	CreatedAt time.Time     `bson:"createdAt" json:"created_at"`
}

// LessonSummary is the list view: a lesson plus how many vocabulary
// entries reference its number, computed by aggregation.
type LessonSummary struct {
	Lesson          `bson:",inline"`
	VocabularyCount int `bson:"vocabularyCount" json:"vocabulary_count"`
}

type Vocabulary struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Word          string        `bson:"word" json:"word"`
	Pronunciation string        `bson:"pronunciation" json:"pronunciation"`
	Meaning       string        `bson:"meaning" json:"meaning"`
	WhenToSay     string        `bson:"whenToSay" json:"when_to_say"`
	LessonNumber  int           `bson:"lessonNo" json:"lesson_no"`
	CreatedBy     string        `bson:"createdBy" json:"created_by"`
	CreatedAt     time.Time     `bson:"createdAt" json:"created_at"`
}

type Tutorial struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string        `bson:"title" json:"title"`
	Link      string        `bson:"link" json:"link"`
	CreatedAt time.Time     `bson:"createdAt" json:"created_at"`
}
