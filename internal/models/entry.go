package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entry types. Anything unrecognized from the classifier is stored as a note.
const (
	EntryTypeDiary    = "diary"
	EntryTypeTask     = "task"
	EntryTypeNote     = "note"
	EntryTypeReminder = "reminder"
)

// Entry is a classified record derived from user text, or a synthesized
// diary produced by aggregation. Entries are append-only: they are written
// once by the pipelines and never updated.
type Entry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	UserID  string `bson:"user_id" json:"user_id"`
	Content string `bson:"content" json:"content"`
	Summary string `bson:"summary" json:"summary"`
	Type    string `bson:"type" json:"type"`

	// Tasks and Tags are always present in the document, never null.
	Tasks []string `bson:"tasks" json:"tasks"`
	Tags  []string `bson:"tags" json:"tags"`

	// ScheduledFor is set only when a calendar date was resolved from the
	// text (or, for diary entries, the day being summarized).
	ScheduledFor *time.Time `bson:"scheduled_for,omitempty" json:"scheduled_for,omitempty"`

	// Mood is present only on diary entries produced by aggregation.
	Mood string `bson:"mood,omitempty" json:"mood,omitempty"`

	// UserInput is the optional supplementary text supplied alongside a
	// diary generation request.
	UserInput string `bson:"user_input,omitempty" json:"user_input,omitempty"`
}

// ValidEntryType reports whether t is one of the closed set of entry types.
func ValidEntryType(t string) bool {
	switch t {
	case EntryTypeDiary, EntryTypeTask, EntryTypeNote, EntryTypeReminder:
		return true
	}
	return false
}
