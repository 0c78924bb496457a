package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/workouthub/internal/logging"
	"alcyxob/workouthub/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	exerciseCollectionName         = "exercises"
	workoutCollectionName          = "workouts"
	workoutExerciseCollectionName  = "workout_exercises"
	scheduledWorkoutCollectionName = "scheduled_workouts"
	workoutPlanCollectionName      = "workout_plans"
	migrationCollectionName        = "migrations"

	seedMigrationID = "seed_default_exercises"
)

// Store implements repository.Store backed by MongoDB, one collection per entity.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ repository.Store = (*Store)(nil)

// NewStore wraps an existing database handle. The client is disconnected on Close
// when non-nil.
func NewStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{client: client, db: db}
}

// OpenStore connects, ensures indexes and applies the one-time seed.
func OpenStore(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := ConnectDB(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	store := NewStore(client, client.Database(dbName))

	setupCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	store.EnsureIndexes(setupCtx)
	if err := store.Seed(setupCtx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Exercises() repository.ExerciseRepository {
	return &exerciseRepository{collection: s.db.Collection(exerciseCollectionName)}
}

func (s *Store) Workouts() repository.WorkoutRepository {
	return &workoutRepository{
		collection: s.db.Collection(workoutCollectionName),
		entries:    s.db.Collection(workoutExerciseCollectionName),
	}
}

func (s *Store) WorkoutExercises() repository.WorkoutExerciseRepository {
	return &workoutExerciseRepository{collection: s.db.Collection(workoutExerciseCollectionName)}
}

func (s *Store) ScheduledWorkouts() repository.ScheduledWorkoutRepository {
	return &scheduledWorkoutRepository{collection: s.db.Collection(scheduledWorkoutCollectionName)}
}

func (s *Store) WorkoutPlans() repository.WorkoutPlanRepository {
	return &workoutPlanRepository{
		collection: s.db.Collection(workoutPlanCollectionName),
		schedule:   s.db.Collection(scheduledWorkoutCollectionName),
	}
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return DisconnectDB(s.client)
}

// Seed inserts the default exercise catalog exactly once per database.
// A marker document in the migrations collection records that it ran; it is
// written only after the catalog is in place, so a failed seed is retried.
func (s *Store) Seed(ctx context.Context) error {
	migrations := s.db.Collection(migrationCollectionName)
	err := migrations.FindOne(ctx, bson.M{"_id": seedMigrationID}).Err()
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("check seed migration: %w", err)
	}

	defaults := repository.DefaultExercises()
	docs := make([]interface{}, 0, len(defaults))
	for i := range defaults {
		docs = append(docs, defaults[i])
	}
	// Unordered so rows left by an interrupted earlier run do not stop the rest.
	_, err = s.db.Collection(exerciseCollectionName).InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("seed default exercises: %w", err)
	}

	marker := bson.M{"_id": seedMigrationID, "appliedAt": time.Now().UTC()}
	if _, err := migrations.InsertOne(ctx, marker); err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("record seed migration: %w", err)
	}
	logging.Info().Int("count", len(docs)).Msg("Seeded default exercises")
	return nil
}

// EnsureIndexes creates the secondary indexes used by child lookups.
// Failures are logged; the service still works without them.
func (s *Store) EnsureIndexes(ctx context.Context) {
	ensure := func(name string, models []mongo.IndexModel) {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			logging.Warn().Err(err).Str("collection", name).Msg("Failed to create indexes")
		}
	}
	ensure(workoutExerciseCollectionName, []mongo.IndexModel{
		{Keys: bson.D{{Key: "workoutId", Value: 1}, {Key: "position", Value: 1}}},
	})
	ensure(scheduledWorkoutCollectionName, []mongo.IndexModel{
		{Keys: bson.D{{Key: "planId", Value: 1}, {Key: "position", Value: 1}}},
	})
	ensure(workoutPlanCollectionName, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	})
}

// insertionOrder sorts documents in natural (insertion) order.
func insertionOrder() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "$natural", Value: 1}})
}

func byPosition() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
}

func translate(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return err
}

// nextPosition returns one past the highest position among the children of parentID.
func nextPosition(ctx context.Context, collection *mongo.Collection, parentField, parentID string) (int, error) {
	var last struct {
		Position int `bson:"position"`
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "position", Value: -1}}).SetProjection(bson.M{"position": 1})
	err := collection.FindOne(ctx, bson.M{parentField: parentID}, opts).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return last.Position + 1, nil
}

// removeParent undoes a parent insert whose children could not be written.
// The original error is what the caller reports; a cleanup failure is logged.
func removeParent(ctx context.Context, collection *mongo.Collection, id string) {
	if _, err := collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		logging.Ctx(ctx).Error().Err(err).
			Str("collection", collection.Name()).
			Str("id", id).
			Msg("Failed to remove parent after child insert failure")
	}
}
