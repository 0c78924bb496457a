package sqlite

import (
	"context"

	"alcyxob/workouthub/internal/domain"
	"alcyxob/workouthub/internal/repository"

	"gorm.io/gorm"
)

type workoutExerciseRepository struct {
	db *gorm.DB
}

// Create appends entry to its workout. entry.WorkoutID must be set.
func (r *workoutExerciseRepository) Create(ctx context.Context, entry *domain.WorkoutExercise) error {
	if entry.ID == "" {
		entry.ID = domain.NewID()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pos, err := nextPosition(tx, &WorkoutExerciseModel{}, "workout_id", entry.WorkoutID)
		if err != nil {
			return err
		}
		entry.Position = pos
		m := workoutExerciseFromDomain(entry)
		return tx.Create(&m).Error
	})
}

func (r *workoutExerciseRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutExercise, error) {
	var m WorkoutExerciseModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	entry := m.toDomain()
	return &entry, nil
}

func (r *workoutExerciseRepository) ListByWorkoutID(ctx context.Context, workoutID string) ([]domain.WorkoutExercise, error) {
	grouped, err := listWorkoutExercises(r.db.WithContext(ctx), []string{workoutID})
	if err != nil {
		return nil, err
	}
	if grouped[workoutID] == nil {
		return []domain.WorkoutExercise{}, nil
	}
	return grouped[workoutID], nil
}

// Update rewrites the prescription. Owner and position are left alone.
func (r *workoutExerciseRepository) Update(ctx context.Context, entry *domain.WorkoutExercise) error {
	res := r.db.WithContext(ctx).Model(&WorkoutExerciseModel{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"exercise_id": entry.ExerciseID,
			"sets":        entry.Sets,
			"reps":        entry.Reps,
			"weight":      entry.Weight,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *workoutExerciseRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&WorkoutExerciseModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
