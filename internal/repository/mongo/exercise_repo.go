package mongo

import (
	"context"

	"alcyxob/workouthub/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// exerciseRepository implements repository.ExerciseRepository
type exerciseRepository struct {
	collection *mongo.Collection
}

// Create inserts a new exercise into the database.
func (r *exerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == "" {
		exercise.ID = domain.NewID()
	}
	_, err := r.collection.InsertOne(ctx, exercise)
	return err
}

// GetByID retrieves an exercise by its ID.
func (r *exerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise); err != nil {
		return nil, translate(err)
	}
	return &exercise, nil
}

// List retrieves all exercises in insertion order.
func (r *exerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, insertionOrder())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exercises := make([]domain.Exercise, 0)
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// Update replaces the stored document. The _id never changes.
func (r *exerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	set := bson.M{
		"name":        exercise.Name,
		"description": exercise.Description,
		"videoKey":    exercise.VideoKey,
	}
	update := bson.M{"$set": set}
	if exercise.UserID != nil {
		set["userId"] = *exercise.UserID
	} else {
		update["$unset"] = bson.M{"userId": ""}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": exercise.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}

// Delete removes an exercise. Workout entries that reference it are left alone.
func (r *exerciseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}
