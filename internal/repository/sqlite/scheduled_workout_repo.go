package sqlite

import (
	"context"

	"alcyxob/workouthub/internal/domain"
	"alcyxob/workouthub/internal/repository"

	"gorm.io/gorm"
)

type scheduledWorkoutRepository struct {
	db *gorm.DB
}

// Create appends s to its plan's schedule. s.PlanID must be set.
func (r *scheduledWorkoutRepository) Create(ctx context.Context, s *domain.ScheduledWorkout) error {
	if s.ID == "" {
		s.ID = domain.NewID()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pos, err := nextPosition(tx, &ScheduledWorkoutModel{}, "plan_id", s.PlanID)
		if err != nil {
			return err
		}
		s.Position = pos
		m := scheduledWorkoutFromDomain(s)
		return tx.Create(&m).Error
	})
}

func (r *scheduledWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.ScheduledWorkout, error) {
	var m ScheduledWorkoutModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	s := m.toDomain()
	return &s, nil
}

func (r *scheduledWorkoutRepository) ListByPlanID(ctx context.Context, planID string) ([]domain.ScheduledWorkout, error) {
	grouped, err := listScheduledWorkouts(r.db.WithContext(ctx), []string{planID})
	if err != nil {
		return nil, err
	}
	if grouped[planID] == nil {
		return []domain.ScheduledWorkout{}, nil
	}
	return grouped[planID], nil
}

func (r *scheduledWorkoutRepository) Update(ctx context.Context, s *domain.ScheduledWorkout) error {
	res := r.db.WithContext(ctx).Model(&ScheduledWorkoutModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"workout_id":      s.WorkoutID,
			"recurrence_rule": s.RecurrenceRule,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *scheduledWorkoutRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ScheduledWorkoutModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func listScheduledWorkouts(db *gorm.DB, planIDs []string) (map[string][]domain.ScheduledWorkout, error) {
	grouped := make(map[string][]domain.ScheduledWorkout, len(planIDs))
	if len(planIDs) == 0 {
		return grouped, nil
	}
	rows := make([]ScheduledWorkoutModel, 0)
	if err := db.Where("plan_id IN ?", planIDs).Order("plan_id, position").Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, m := range rows {
		grouped[m.PlanID] = append(grouped[m.PlanID], m.toDomain())
	}
	return grouped, nil
}
