package sqlite

import (
	"time"

	"alcyxob/workouthub/internal/domain"
	"alcyxob/workouthub/internal/recurrence"
)

type ExerciseModel struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string `gorm:"not null;default:''"`
	UserID      *string
	VideoKey    string `gorm:"not null;default:''"`
}

func (ExerciseModel) TableName() string { return "exercises" }

type WorkoutModel struct {
	ID   string `gorm:"primaryKey"`
	Name string `gorm:"not null;default:''"`
}

func (WorkoutModel) TableName() string { return "workouts" }

type WorkoutExerciseModel struct {
	ID         string `gorm:"primaryKey"`
	WorkoutID  string `gorm:"not null;index"`
	ExerciseID string `gorm:"not null"`
	Sets       int    `gorm:"not null"`
	Reps       int    `gorm:"not null"`
	Weight     *float64
	Position   int `gorm:"not null"`
}

func (WorkoutExerciseModel) TableName() string { return "workout_exercises" }

type WorkoutPlanModel struct {
	ID        string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	UserID    string    `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

func (WorkoutPlanModel) TableName() string { return "workout_plans" }

type ScheduledWorkoutModel struct {
	ID             string          `gorm:"primaryKey"`
	PlanID         string          `gorm:"not null;index"`
	WorkoutID      string          `gorm:"not null"`
	RecurrenceRule recurrence.Rule `gorm:"not null"`
	Position       int             `gorm:"not null"`
}

func (ScheduledWorkoutModel) TableName() string { return "scheduled_workouts" }

func exerciseFromDomain(e *domain.Exercise) ExerciseModel {
	return ExerciseModel{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		UserID:      e.UserID,
		VideoKey:    e.VideoKey,
	}
}

func (m ExerciseModel) toDomain() domain.Exercise {
	return domain.Exercise{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		UserID:      m.UserID,
		VideoKey:    m.VideoKey,
	}
}

func (m WorkoutModel) toDomain(entries []domain.WorkoutExercise) domain.Workout {
	if entries == nil {
		entries = []domain.WorkoutExercise{}
	}
	return domain.Workout{ID: m.ID, Name: m.Name, Exercises: entries}
}

func workoutExerciseFromDomain(e *domain.WorkoutExercise) WorkoutExerciseModel {
	return WorkoutExerciseModel{
		ID:         e.ID,
		WorkoutID:  e.WorkoutID,
		ExerciseID: e.ExerciseID,
		Sets:       e.Sets,
		Reps:       e.Reps,
		Weight:     e.Weight,
		Position:   e.Position,
	}
}

func (m WorkoutExerciseModel) toDomain() domain.WorkoutExercise {
	return domain.WorkoutExercise{
		ID:         m.ID,
		WorkoutID:  m.WorkoutID,
		ExerciseID: m.ExerciseID,
		Sets:       m.Sets,
		Reps:       m.Reps,
		Weight:     m.Weight,
		Position:   m.Position,
	}
}

func (m WorkoutPlanModel) toDomain(schedule []domain.ScheduledWorkout) domain.WorkoutPlan {
	if schedule == nil {
		schedule = []domain.ScheduledWorkout{}
	}
	return domain.WorkoutPlan{
		ID:                m.ID,
		Name:              m.Name,
		UserID:            m.UserID,
		CreatedAt:         m.CreatedAt.UTC(),
		ScheduledWorkouts: schedule,
	}
}

func scheduledWorkoutFromDomain(s *domain.ScheduledWorkout) ScheduledWorkoutModel {
	return ScheduledWorkoutModel{
		ID:             s.ID,
		PlanID:         s.PlanID,
		WorkoutID:      s.WorkoutID,
		RecurrenceRule: s.RecurrenceRule,
		Position:       s.Position,
	}
}

func (m ScheduledWorkoutModel) toDomain() domain.ScheduledWorkout {
	return domain.ScheduledWorkout{
		ID:             m.ID,
		PlanID:         m.PlanID,
		WorkoutID:      m.WorkoutID,
		RecurrenceRule: m.RecurrenceRule,
		Position:       m.Position,
	}
}
