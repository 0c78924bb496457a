package sqlite

import (
	"context"

	"alcyxob/workouthub/internal/domain"
	"alcyxob/workouthub/internal/repository"

	"gorm.io/gorm"
)

type workoutRepository struct {
	db *gorm.DB
}

// Create inserts the workout and its exercises in one transaction.
// IDs are generated where missing; positions follow slice order.
func (r *workoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == "" {
		workout.ID = domain.NewID()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := WorkoutModel{ID: workout.ID, Name: workout.Name}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		for i := range workout.Exercises {
			entry := &workout.Exercises[i]
			if entry.ID == "" {
				entry.ID = domain.NewID()
			}
			entry.WorkoutID = workout.ID
			entry.Position = i
			em := workoutExerciseFromDomain(entry)
			if err := tx.Create(&em).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *workoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	var m WorkoutModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	entries, err := listWorkoutExercises(r.db.WithContext(ctx), []string{id})
	if err != nil {
		return nil, err
	}
	workout := m.toDomain(entries[id])
	return &workout, nil
}

// List returns all workouts in insertion order, each with its exercises.
func (r *workoutRepository) List(ctx context.Context) ([]domain.Workout, error) {
	db := r.db.WithContext(ctx)
	rows := make([]WorkoutModel, 0)
	if err := db.Order("rowid").Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.ID)
	}
	entries, err := listWorkoutExercises(db, ids)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Workout, 0, len(rows))
	for _, m := range rows {
		result = append(result, m.toDomain(entries[m.ID]))
	}
	return result, nil
}

// Update changes the workout's own columns; exercises are managed separately.
func (r *workoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	res := r.db.WithContext(ctx).Model(&WorkoutModel{}).
		Where("id = ?", workout.ID).
		Updates(map[string]interface{}{"name": workout.Name})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the workout and every entry it owns.
func (r *workoutRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workout_id = ?", id).Delete(&WorkoutExerciseModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&WorkoutModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

// listWorkoutExercises loads the entries of the given workouts, grouped by
// workout id and ordered by position.
func listWorkoutExercises(db *gorm.DB, workoutIDs []string) (map[string][]domain.WorkoutExercise, error) {
	grouped := make(map[string][]domain.WorkoutExercise, len(workoutIDs))
	if len(workoutIDs) == 0 {
		return grouped, nil
	}
	rows := make([]WorkoutExerciseModel, 0)
	if err := db.Where("workout_id IN ?", workoutIDs).Order("workout_id, position").Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, m := range rows {
		grouped[m.WorkoutID] = append(grouped[m.WorkoutID], m.toDomain())
	}
	return grouped, nil
}
