package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/micromouse-api/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RunRepo handles the persistence of archived simulation runs.
type RunRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a new RunRepo with the given MongoDB client, database name, and collection name.
func NewRunRepo(client *mongo.Client, dbName, collectionName string) *RunRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &RunRepo{
		collection: collection,
	}
}

// Save inserts or updates an archived run in the repository.
func (r *RunRepo) Save(record *dmn.RunRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	filter := bson.M{"_id": record.ID}
	update := bson.M{
		"$set": bson.M{
			"owner":      record.Owner,
			"width":      record.Width,
			"height":     record.Height,
			"seed":       record.Seed,
			"outcome":    record.Outcome,
			"pathLen":    record.PathLen,
			"cost":       record.Cost,
			"explored":   record.Explored,
			"expanded":   record.Expanded,
			"ticks":      record.Ticks,
			"finishedAt": record.FinishedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves an archived run by its ID.
// Returns an error if the run is not found or if an unexpected error occurs.
func (r *RunRepo) ByID(id uuid.UUID) (*dmn.RunRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var record dmn.RunRecord
	if err := r.collection.FindOne(ctx, filter).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("run not found")
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &record, nil
}

// Recent retrieves the most recently finished runs, newest first.
func (r *RunRepo) Recent(limit int64) ([]*dmn.RunRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "finishedAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer func() { _ = cursor.Close(ctx) }()

	var records []*dmn.RunRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return records, nil
}
