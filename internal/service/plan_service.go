package service

import (
	"context"
	"fmt"
	"time"

	"alcyxob/workouthub/internal/domain"
	"alcyxob/workouthub/internal/repository"
)

// PlanService manages workout plans and their recurring schedule.
type PlanService interface {
	CreatePlan(ctx context.Context, plan domain.WorkoutPlan) (*domain.WorkoutPlan, error)
	GetPlan(ctx context.Context, id string) (*domain.WorkoutPlan, error)
	// ListPlans returns every plan, or only userID's plans when userID is set.
	ListPlans(ctx context.Context, userID string) ([]domain.WorkoutPlan, error)
	UpdatePlan(ctx context.Context, id string, apply func(*domain.WorkoutPlan)) (*domain.WorkoutPlan, error)
	DeletePlan(ctx context.Context, id string) (*domain.WorkoutPlan, error)
	AddSchedule(ctx context.Context, planID string, scheduled domain.ScheduledWorkout) (*domain.ScheduledWorkout, error)
	UpdateSchedule(ctx context.Context, planID, scheduleID string, apply func(*domain.ScheduledWorkout)) (*domain.ScheduledWorkout, error)
	RemoveSchedule(ctx context.Context, planID, scheduleID string) (*domain.ScheduledWorkout, error)
}

type planService struct {
	planRepo     repository.WorkoutPlanRepository
	scheduleRepo repository.ScheduledWorkoutRepository
	workoutRepo  repository.WorkoutRepository
	now          func() time.Time
}

func NewPlanService(planRepo repository.WorkoutPlanRepository, scheduleRepo repository.ScheduledWorkoutRepository, workoutRepo repository.WorkoutRepository) PlanService {
	return &planService{
		planRepo:     planRepo,
		scheduleRepo: scheduleRepo,
		workoutRepo:  workoutRepo,
		now:          time.Now,
	}
}

// CreatePlan stamps createdAt and stores the plan with its schedule.
func (s *planService) CreatePlan(ctx context.Context, plan domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	if err := validatePlan(&plan); err != nil {
		return nil, err
	}
	plan.ID = domain.NewID()
	plan.CreatedAt = s.now().UTC().Truncate(time.Millisecond)
	if plan.ScheduledWorkouts == nil {
		plan.ScheduledWorkouts = []domain.ScheduledWorkout{}
	}
	for i := range plan.ScheduledWorkouts {
		plan.ScheduledWorkouts[i].ID = ""
		if err := s.checkWorkout(ctx, plan.ScheduledWorkouts[i].WorkoutID); err != nil {
			return nil, err
		}
	}

	if err := s.planRepo.Create(ctx, &plan); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	return &plan, nil
}

func (s *planService) GetPlan(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrPlanNotFound, "get plan")
	}
	return plan, nil
}

func (s *planService) ListPlans(ctx context.Context, userID string) ([]domain.WorkoutPlan, error) {
	var (
		plans []domain.WorkoutPlan
		err   error
	)
	if userID == "" {
		plans, err = s.planRepo.List(ctx)
	} else {
		plans, err = s.planRepo.ListByUserID(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// UpdatePlan changes name and owner. CreatedAt and the schedule are kept.
func (s *planService) UpdatePlan(ctx context.Context, id string, apply func(*domain.WorkoutPlan)) (*domain.WorkoutPlan, error) {
	existing, err := s.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	createdAt, schedule := existing.CreatedAt, existing.ScheduledWorkouts

	apply(existing)
	existing.ID = id
	existing.CreatedAt = createdAt
	existing.ScheduledWorkouts = schedule
	if err := validatePlan(existing); err != nil {
		return nil, err
	}

	if err := s.planRepo.Update(ctx, existing); err != nil {
		return nil, notFound(err, ErrPlanNotFound, "update plan")
	}
	return existing, nil
}

func (s *planService) DeletePlan(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	existing, err := s.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.planRepo.Delete(ctx, id); err != nil {
		return nil, notFound(err, ErrPlanNotFound, "delete plan")
	}
	return existing, nil
}

// AddSchedule appends a recurring workout to the plan.
func (s *planService) AddSchedule(ctx context.Context, planID string, scheduled domain.ScheduledWorkout) (*domain.ScheduledWorkout, error) {
	if _, err := s.planRepo.GetByID(ctx, planID); err != nil {
		return nil, notFound(err, ErrPlanNotFound, "get plan")
	}
	if err := s.checkWorkout(ctx, scheduled.WorkoutID); err != nil {
		return nil, err
	}
	scheduled.ID = ""
	scheduled.PlanID = planID

	if err := s.scheduleRepo.Create(ctx, &scheduled); err != nil {
		return nil, fmt.Errorf("add scheduled workout: %w", err)
	}
	return &scheduled, nil
}

func (s *planService) UpdateSchedule(ctx context.Context, planID, scheduleID string, apply func(*domain.ScheduledWorkout)) (*domain.ScheduledWorkout, error) {
	scheduled, err := s.getSchedule(ctx, planID, scheduleID)
	if err != nil {
		return nil, err
	}

	apply(scheduled)
	scheduled.ID = scheduleID
	scheduled.PlanID = planID
	if err := s.checkWorkout(ctx, scheduled.WorkoutID); err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.Update(ctx, scheduled); err != nil {
		return nil, notFound(err, ErrScheduleNotFound, "update scheduled workout")
	}
	return scheduled, nil
}

func (s *planService) RemoveSchedule(ctx context.Context, planID, scheduleID string) (*domain.ScheduledWorkout, error) {
	scheduled, err := s.getSchedule(ctx, planID, scheduleID)
	if err != nil {
		return nil, err
	}
	if err := s.scheduleRepo.Delete(ctx, scheduleID); err != nil {
		return nil, notFound(err, ErrScheduleNotFound, "remove scheduled workout")
	}
	return scheduled, nil
}

func (s *planService) getSchedule(ctx context.Context, planID, scheduleID string) (*domain.ScheduledWorkout, error) {
	scheduled, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, notFound(err, ErrScheduleNotFound, "get scheduled workout")
	}
	if scheduled.PlanID != planID {
		return nil, ErrScheduleNotFound
	}
	return scheduled, nil
}

func (s *planService) checkWorkout(ctx context.Context, workoutID string) error {
	if workoutID == "" {
		return invalid("workoutId is required")
	}
	if _, err := s.workoutRepo.GetByID(ctx, workoutID); err != nil {
		return notFound(err, ErrWorkoutNotFound, "get workout")
	}
	return nil
}

func validatePlan(plan *domain.WorkoutPlan) error {
	if plan.Name == "" {
		return invalid("plan name is required")
	}
	if plan.UserID == "" {
		return invalid("userId is required")
	}
	return nil
}
