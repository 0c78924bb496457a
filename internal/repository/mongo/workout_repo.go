// internal/repository/mongo/workout_repo.go
package mongo

import (
	"context"

	"alcyxob/workouthub/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// workoutRepository implements repository.WorkoutRepository.
// Entries live in their own collection and reference the workout by id.
type workoutRepository struct {
	collection *mongo.Collection
	entries    *mongo.Collection
}

// Create inserts the workout, then its entries in slice order.
func (r *workoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == "" {
		workout.ID = domain.NewID()
	}
	if _, err := r.collection.InsertOne(ctx, workout); err != nil {
		return err
	}
	if len(workout.Exercises) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(workout.Exercises))
	for i := range workout.Exercises {
		entry := &workout.Exercises[i]
		if entry.ID == "" {
			entry.ID = domain.NewID()
		}
		entry.WorkoutID = workout.ID
		entry.Position = i
		docs = append(docs, entry)
	}
	if _, err := r.entries.InsertMany(ctx, docs); err != nil {
		removeParent(ctx, r.collection, workout.ID)
		return err
	}
	return nil
}

// GetByID retrieves a single workout with its entries.
func (r *workoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	var workout domain.Workout
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout); err != nil {
		return nil, translate(err)
	}
	entries, err := findWorkoutExercises(ctx, r.entries, bson.M{"workoutId": id})
	if err != nil {
		return nil, err
	}
	workout.Exercises = entries
	return &workout, nil
}

// List retrieves all workouts in insertion order with their entries.
func (r *workoutRepository) List(ctx context.Context) ([]domain.Workout, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, insertionOrder())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workouts := make([]domain.Workout, 0)
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	for i := range workouts {
		entries, err := findWorkoutExercises(ctx, r.entries, bson.M{"workoutId": workouts[i].ID})
		if err != nil {
			return nil, err
		}
		workouts[i].Exercises = entries
	}
	return workouts, nil
}

func (r *workoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": workout.ID},
		bson.M{"$set": bson.M{"name": workout.Name}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}

// Delete removes the entries, then the workout. A failure part way leaves
// the workout in place so the delete can be repeated; entries never outlive it.
func (r *workoutRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.entries.DeleteMany(ctx, bson.M{"workoutId": id}); err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}

// workoutExerciseRepository implements repository.WorkoutExerciseRepository.
type workoutExerciseRepository struct {
	collection *mongo.Collection
}

func (r *workoutExerciseRepository) Create(ctx context.Context, entry *domain.WorkoutExercise) error {
	if entry.ID == "" {
		entry.ID = domain.NewID()
	}
	pos, err := nextPosition(ctx, r.collection, "workoutId", entry.WorkoutID)
	if err != nil {
		return err
	}
	entry.Position = pos
	_, err = r.collection.InsertOne(ctx, entry)
	return err
}

func (r *workoutExerciseRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutExercise, error) {
	var entry domain.WorkoutExercise
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry); err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

func (r *workoutExerciseRepository) ListByWorkoutID(ctx context.Context, workoutID string) ([]domain.WorkoutExercise, error) {
	return findWorkoutExercises(ctx, r.collection, bson.M{"workoutId": workoutID})
}

func (r *workoutExerciseRepository) Update(ctx context.Context, entry *domain.WorkoutExercise) error {
	set := bson.M{
		"exerciseId": entry.ExerciseID,
		"sets":       entry.Sets,
		"reps":       entry.Reps,
	}
	update := bson.M{"$set": set}
	if entry.Weight != nil {
		set["weight"] = *entry.Weight
	} else {
		update["$unset"] = bson.M{"weight": ""}
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": entry.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *workoutExerciseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments)
	}
	return nil
}

func findWorkoutExercises(ctx context.Context, collection *mongo.Collection, filter bson.M) ([]domain.WorkoutExercise, error) {
	cursor, err := collection.Find(ctx, filter, byPosition())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := make([]domain.WorkoutExercise, 0)
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
