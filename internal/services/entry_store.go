package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Navaneeth2707/Remindiary/internal/database"
	"github.com/Navaneeth2707/Remindiary/internal/models"
)

// ErrNotFound is the non-error outcome for queries matching no entry. It is
// distinct from a store failure.
var ErrNotFound = errors.New("entry not found")

const entriesCollection = "entries"

const storeTimeout = 5 * time.Second

// EntryStore persists classified and synthesized entries in MongoDB. Each
// create/find is individually atomic; no cross-document transactions.
type EntryStore struct{}

// NewEntryStore returns a store over the shared Mongo handle.
func NewEntryStore() *EntryStore {
	return &EntryStore{}
}

// EnsureEntryIndexes configures indexes for the entries collection.
// Called on startup from main after Mongo has connected.
func EnsureEntryIndexes(ctx context.Context) error {
	col := database.DB.Collection(entriesCollection)

	// Compound index on (user_id, scheduled_for) to support day-bucket
	// queries; (user_id, created_at) for the listing endpoint.
	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "scheduled_for", Value: 1},
			},
			Options: options.Index().SetName("idx_user_scheduled"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_user_created"),
		},
	}

	for _, m := range indexModels {
		if _, err := col.Indexes().CreateOne(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// Create inserts the entry and returns it with its assigned ID. Tasks and
// Tags are normalized so the stored document never carries null sequences.
func (s *EntryStore) Create(ctx context.Context, e models.Entry) (models.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Tasks == nil {
		e.Tasks = []string{}
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
		e.UpdatedAt = e.CreatedAt
	}

	if _, err := database.DB.Collection(entriesCollection).InsertOne(ctx, e); err != nil {
		return models.Entry{}, err
	}
	return e, nil
}

// FindByUser returns all of a user's entries, newest first.
func (s *EntryStore) FindByUser(ctx context.Context, userID string) ([]models.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := database.DB.Collection(entriesCollection).Find(ctx, bson.M{
		"user_id": userID,
	}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []models.Entry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByDateRange returns the user's entries with scheduled_for inside
// [from, to], oldest first.
func (s *EntryStore) FindByDateRange(ctx context.Context, userID string, from, to time.Time) ([]models.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	findOptions := options.Find().SetSort(bson.M{"scheduled_for": 1})
	cursor, err := database.DB.Collection(entriesCollection).Find(ctx, bson.M{
		"user_id": userID,
		"scheduled_for": bson.M{
			"$gte": from,
			"$lte": to,
		},
	}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []models.Entry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FindDiaryByDate returns the user's diary entry scheduled inside the day
// bucket [from, to], or ErrNotFound.
func (s *EntryStore) FindDiaryByDate(ctx context.Context, userID string, from, to time.Time) (models.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var entry models.Entry
	err := database.DB.Collection(entriesCollection).FindOne(ctx, bson.M{
		"user_id": userID,
		"type":    models.EntryTypeDiary,
		"scheduled_for": bson.M{
			"$gte": from,
			"$lte": to,
		},
	}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return models.Entry{}, ErrNotFound
	}
	if err != nil {
		return models.Entry{}, err
	}
	return entry, nil
}
