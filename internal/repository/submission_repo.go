package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"leadquiz/internal/model"
)

// SubmissionRepo archives submission records for back-office display. The
// file journal is the durability guarantee; this store only exists so agents
// can browse leads without touching the journal file.
type SubmissionRepo interface {
	Save(ctx context.Context, record *model.SubmissionRecord) error
	List(ctx context.Context) ([]*model.SubmissionRecord, error)
}

type submissionRepo struct {
	collection *mongo.Collection
}

// NewSubmissionRepo creates a new submission repository
func NewSubmissionRepo(db *mongo.Database) SubmissionRepo {
	return &submissionRepo{
		collection: db.Collection("submissions"),
	}
}

func (r *submissionRepo) Save(ctx context.Context, record *model.SubmissionRecord) error {
	if record.StoredAt.IsZero() {
		record.StoredAt = time.Now()
	}

	// Upsert on submission ID: a retried submission overwrites its earlier
	// failed record instead of duplicating the row
	filter := bson.M{"_id": record.ID}
	update := bson.M{"$set": record}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *submissionRepo) List(ctx context.Context) ([]*model.SubmissionRecord, error) {
	opts := options.Find().SetSort(bson.M{"storedAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.SubmissionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
