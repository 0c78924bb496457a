package sqlite

import (
	"context"
	"errors"

	"alcyxob/workouthub/internal/repository"

	"gorm.io/gorm"
)

// Store implements repository.Store on top of GORM.
type Store struct {
	db *gorm.DB
}

var _ repository.Store = (*Store)(nil)

// NewStore wraps an opened and migrated database.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// OpenStore opens dsn, runs migrations and returns a ready Store.
func OpenStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return NewStore(db), nil
}

// DB exposes the underlying handle, mainly for tests.
func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Exercises() repository.ExerciseRepository {
	return &exerciseRepository{db: s.db}
}

func (s *Store) Workouts() repository.WorkoutRepository {
	return &workoutRepository{db: s.db}
}

func (s *Store) WorkoutExercises() repository.WorkoutExerciseRepository {
	return &workoutExerciseRepository{db: s.db}
}

func (s *Store) ScheduledWorkouts() repository.ScheduledWorkoutRepository {
	return &scheduledWorkoutRepository{db: s.db}
}

func (s *Store) WorkoutPlans() repository.WorkoutPlanRepository {
	return &workoutPlanRepository{db: s.db}
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translate maps gorm's not-found error onto repository.ErrNotFound.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}

// nextPosition returns the position after the last child row of parentID.
func nextPosition(tx *gorm.DB, model interface{}, parentColumn, parentID string) (int, error) {
	var next int
	err := tx.Model(model).
		Where(parentColumn+" = ?", parentID).
		Select("COALESCE(MAX(position), -1) + 1").
		Scan(&next).Error
	return next, err
}
