package repository

import (
	"alcyxob/workouthub/internal/domain"
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound = RepositoryError("not found")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Store is the persistence aggregate root: one repository per entity type.
// Every write is committed before the call returns.
type Store interface {
	Exercises() ExerciseRepository
	Workouts() WorkoutRepository
	WorkoutExercises() WorkoutExerciseRepository
	ScheduledWorkouts() ScheduledWorkoutRepository
	WorkoutPlans() WorkoutPlanRepository
	Close() error
}

// ExerciseRepository defines the interface for interacting with exercise data.
// Create assigns a new ID when exercise.ID is empty.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) error
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id string) error
}

// WorkoutRepository stores workouts together with their exercises.
// Create inserts workout.Exercises in order; GetByID and List load them;
// Update changes the workout's own fields only; Delete removes the children too.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) error
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
	List(ctx context.Context) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id string) error
}

// WorkoutExerciseRepository manages single entries of a workout.
// Create appends the entry after the workout's existing entries.
type WorkoutExerciseRepository interface {
	Create(ctx context.Context, entry *domain.WorkoutExercise) error
	GetByID(ctx context.Context, id string) (*domain.WorkoutExercise, error)
	ListByWorkoutID(ctx context.Context, workoutID string) ([]domain.WorkoutExercise, error)
	Update(ctx context.Context, entry *domain.WorkoutExercise) error
	Delete(ctx context.Context, id string) error
}

// ScheduledWorkoutRepository manages single entries of a plan's schedule.
// Create appends the entry after the plan's existing entries.
type ScheduledWorkoutRepository interface {
	Create(ctx context.Context, scheduled *domain.ScheduledWorkout) error
	GetByID(ctx context.Context, id string) (*domain.ScheduledWorkout, error)
	ListByPlanID(ctx context.Context, planID string) ([]domain.ScheduledWorkout, error)
	Update(ctx context.Context, scheduled *domain.ScheduledWorkout) error
	Delete(ctx context.Context, id string) error
}

// WorkoutPlanRepository stores plans together with their schedule, with the
// same parent/child rules as WorkoutRepository. Update never touches CreatedAt.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) error
	GetByID(ctx context.Context, id string) (*domain.WorkoutPlan, error)
	List(ctx context.Context) ([]domain.WorkoutPlan, error)
	ListByUserID(ctx context.Context, userID string) ([]domain.WorkoutPlan, error)
	Update(ctx context.Context, plan *domain.WorkoutPlan) error
	Delete(ctx context.Context, id string) error
}
