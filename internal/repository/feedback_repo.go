package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"airport-feedback/internal/models"
)

// FeedbackCollection is the collection holding feedback documents.
const FeedbackCollection = "feedbacks"

// DateRange bounds a listing by createdAt. Nil bounds are open; both ends
// are inclusive.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

type FeedbackRepo struct {
	collection *mongo.Collection
}

func NewFeedbackRepo(db *mongo.Database) *FeedbackRepo {
	return &FeedbackRepo{
		collection: db.Collection(FeedbackCollection),
	}
}

// Create inserts feedback and fills in its ID. CreatedAt is set to the
// current time when zero, and is truncated to the millisecond precision the
// store keeps so the returned record matches what a later List yields.
func (r *FeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	stampCreatedAt(feedback, time.Now)

	result, err := r.collection.InsertOne(ctx, feedback)
	if err != nil {
		return &PersistenceError{Op: "insert feedback", Err: err}
	}
	feedback.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

// List returns the feedback inside rng, newest first.
func (r *FeedbackRepo) List(ctx context.Context, rng DateRange) ([]models.Feedback, error) {
	cursor, err := r.collection.Find(ctx, listFilter(rng), listOptions())
	if err != nil {
		return nil, &PersistenceError{Op: "find feedback", Err: err}
	}

	feedback := make([]models.Feedback, 0)
	if err := cursor.All(ctx, &feedback); err != nil {
		return nil, &PersistenceError{Op: "decode feedback", Err: err}
	}
	return feedback, nil
}

func stampCreatedAt(feedback *models.Feedback, now func() time.Time) {
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = now()
	}
	feedback.CreatedAt = feedback.CreatedAt.Truncate(time.Millisecond)
}

// listFilter matches start <= createdAt <= end; an empty range matches all.
func listFilter(rng DateRange) bson.M {
	filter := bson.M{}
	if rng.Start == nil && rng.End == nil {
		return filter
	}
	createdAt := bson.M{}
	if rng.Start != nil {
		createdAt["$gte"] = *rng.Start
	}
	if rng.End != nil {
		createdAt["$lte"] = *rng.End
	}
	filter["createdAt"] = createdAt
	return filter
}

func listOptions() *options.FindOptionsBuilder {
	return options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"location": 1, "rating": 1, "reasons": 1, "createdAt": 1})
}

// EnsureIndexes creates the createdAt index used by List's range filter and sort.
func (r *FeedbackRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return &PersistenceError{Op: "create feedback indexes", Err: err}
	}
	return nil
}
