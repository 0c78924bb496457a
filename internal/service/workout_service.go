package service

import (
	"context"
	"fmt"

	"alcyxob/workouthub/internal/domain"
	"alcyxob/workouthub/internal/repository"
)

// WorkoutService manages workouts and the exercises listed in them.
type WorkoutService interface {
	CreateWorkout(ctx context.Context, workout domain.Workout) (*domain.Workout, error)
	GetWorkout(ctx context.Context, id string) (*domain.Workout, error)
	ListWorkouts(ctx context.Context) ([]domain.Workout, error)
	UpdateWorkout(ctx context.Context, id string, apply func(*domain.Workout)) (*domain.Workout, error)
	DeleteWorkout(ctx context.Context, id string) (*domain.Workout, error)
	AddExercise(ctx context.Context, workoutID string, entry domain.WorkoutExercise) (*domain.WorkoutExercise, error)
	UpdateExercise(ctx context.Context, workoutID, entryID string, apply func(*domain.WorkoutExercise)) (*domain.WorkoutExercise, error)
	RemoveExercise(ctx context.Context, workoutID, entryID string) (*domain.WorkoutExercise, error)
}

type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	entryRepo    repository.WorkoutExerciseRepository
	exerciseRepo repository.ExerciseRepository
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository, entryRepo repository.WorkoutExerciseRepository, exerciseRepo repository.ExerciseRepository) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		entryRepo:    entryRepo,
		exerciseRepo: exerciseRepo,
	}
}

// CreateWorkout stores a workout with its entries in the given order.
// Every referenced exercise must exist.
func (s *workoutService) CreateWorkout(ctx context.Context, workout domain.Workout) (*domain.Workout, error) {
	workout.ID = domain.NewID()
	if workout.Exercises == nil {
		workout.Exercises = []domain.WorkoutExercise{}
	}
	for i := range workout.Exercises {
		entry := &workout.Exercises[i]
		entry.ID = ""
		if err := s.checkEntry(ctx, entry); err != nil {
			return nil, err
		}
	}

	if err := s.workoutRepo.Create(ctx, &workout); err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}
	return &workout, nil
}

func (s *workoutService) GetWorkout(ctx context.Context, id string) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrWorkoutNotFound, "get workout")
	}
	return workout, nil
}

func (s *workoutService) ListWorkouts(ctx context.Context) ([]domain.Workout, error) {
	workouts, err := s.workoutRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return workouts, nil
}

// UpdateWorkout changes the workout's own fields. Entries are managed
// through AddExercise, UpdateExercise and RemoveExercise.
func (s *workoutService) UpdateWorkout(ctx context.Context, id string, apply func(*domain.Workout)) (*domain.Workout, error) {
	existing, err := s.GetWorkout(ctx, id)
	if err != nil {
		return nil, err
	}
	entries := existing.Exercises

	apply(existing)
	existing.ID = id
	existing.Exercises = entries

	if err := s.workoutRepo.Update(ctx, existing); err != nil {
		return nil, notFound(err, ErrWorkoutNotFound, "update workout")
	}
	return existing, nil
}

// DeleteWorkout removes the workout and its entries and returns its last state.
func (s *workoutService) DeleteWorkout(ctx context.Context, id string) (*domain.Workout, error) {
	existing, err := s.GetWorkout(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.workoutRepo.Delete(ctx, id); err != nil {
		return nil, notFound(err, ErrWorkoutNotFound, "delete workout")
	}
	return existing, nil
}

// AddExercise appends entry to the end of the workout.
func (s *workoutService) AddExercise(ctx context.Context, workoutID string, entry domain.WorkoutExercise) (*domain.WorkoutExercise, error) {
	if _, err := s.workoutRepo.GetByID(ctx, workoutID); err != nil {
		return nil, notFound(err, ErrWorkoutNotFound, "get workout")
	}
	entry.ID = ""
	entry.WorkoutID = workoutID
	if err := s.checkEntry(ctx, &entry); err != nil {
		return nil, err
	}

	if err := s.entryRepo.Create(ctx, &entry); err != nil {
		return nil, fmt.Errorf("add workout exercise: %w", err)
	}
	return &entry, nil
}

func (s *workoutService) UpdateExercise(ctx context.Context, workoutID, entryID string, apply func(*domain.WorkoutExercise)) (*domain.WorkoutExercise, error) {
	entry, err := s.getEntry(ctx, workoutID, entryID)
	if err != nil {
		return nil, err
	}

	apply(entry)
	entry.ID = entryID
	entry.WorkoutID = workoutID
	if err := s.checkEntry(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, notFound(err, ErrWorkoutExerciseNotFound, "update workout exercise")
	}
	return entry, nil
}

// RemoveExercise deletes a single entry and returns it.
func (s *workoutService) RemoveExercise(ctx context.Context, workoutID, entryID string) (*domain.WorkoutExercise, error) {
	entry, err := s.getEntry(ctx, workoutID, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.entryRepo.Delete(ctx, entryID); err != nil {
		return nil, notFound(err, ErrWorkoutExerciseNotFound, "remove workout exercise")
	}
	return entry, nil
}

// getEntry loads an entry and checks that it belongs to workoutID.
func (s *workoutService) getEntry(ctx context.Context, workoutID, entryID string) (*domain.WorkoutExercise, error) {
	entry, err := s.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, notFound(err, ErrWorkoutExerciseNotFound, "get workout exercise")
	}
	if entry.WorkoutID != workoutID {
		return nil, ErrWorkoutExerciseNotFound
	}
	return entry, nil
}

func (s *workoutService) checkEntry(ctx context.Context, entry *domain.WorkoutExercise) error {
	if entry.Sets < 0 || entry.Reps < 0 {
		return invalid("sets and reps must not be negative")
	}
	if entry.Weight != nil && *entry.Weight < 0 {
		return invalid("weight must not be negative")
	}
	if entry.ExerciseID == "" {
		return invalid("exerciseId is required")
	}
	if _, err := s.exerciseRepo.GetByID(ctx, entry.ExerciseID); err != nil {
		return notFound(err, ErrExerciseNotFound, "get exercise")
	}
	return nil
}
