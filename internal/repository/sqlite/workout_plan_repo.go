package sqlite

import (
	"context"

	"alcyxob/workouthub/internal/domain"
	"alcyxob/workouthub/internal/repository"

	"gorm.io/gorm"
)

type workoutPlanRepository struct {
	db *gorm.DB
}

// Create inserts the plan and its schedule in one transaction.
func (r *workoutPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) error {
	if plan.ID == "" {
		plan.ID = domain.NewID()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := WorkoutPlanModel{ID: plan.ID, Name: plan.Name, UserID: plan.UserID, CreatedAt: plan.CreatedAt}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		for i := range plan.ScheduledWorkouts {
			s := &plan.ScheduledWorkouts[i]
			if s.ID == "" {
				s.ID = domain.NewID()
			}
			s.PlanID = plan.ID
			s.Position = i
			sm := scheduledWorkoutFromDomain(s)
			if err := tx.Create(&sm).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *workoutPlanRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	db := r.db.WithContext(ctx)
	var m WorkoutPlanModel
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	schedule, err := listScheduledWorkouts(db, []string{id})
	if err != nil {
		return nil, err
	}
	plan := m.toDomain(schedule[id])
	return &plan, nil
}

func (r *workoutPlanRepository) List(ctx context.Context) ([]domain.WorkoutPlan, error) {
	return r.list(ctx, r.db.WithContext(ctx))
}

func (r *workoutPlanRepository) ListByUserID(ctx context.Context, userID string) ([]domain.WorkoutPlan, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *workoutPlanRepository) list(ctx context.Context, q *gorm.DB) ([]domain.WorkoutPlan, error) {
	rows := make([]WorkoutPlanModel, 0)
	if err := q.Order("rowid").Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.ID)
	}
	schedule, err := listScheduledWorkouts(r.db.WithContext(ctx), ids)
	if err != nil {
		return nil, err
	}
	result := make([]domain.WorkoutPlan, 0, len(rows))
	for _, m := range rows {
		result = append(result, m.toDomain(schedule[m.ID]))
	}
	return result, nil
}

// Update changes name and owner. created_at is never written after Create.
func (r *workoutPlanRepository) Update(ctx context.Context, plan *domain.WorkoutPlan) error {
	res := r.db.WithContext(ctx).Model(&WorkoutPlanModel{}).
		Where("id = ?", plan.ID).
		Updates(map[string]interface{}{
			"name":    plan.Name,
			"user_id": plan.UserID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the plan and its schedule.
func (r *workoutPlanRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", id).Delete(&ScheduledWorkoutModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&WorkoutPlanModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}
