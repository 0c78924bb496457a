// internal/domain/workout_plan.go
package domain

import (
	"time"

	"alcyxob/workouthub/internal/recurrence"
)

// WorkoutPlan is a named collection of recurring workouts owned by a user.
type WorkoutPlan struct {
	ID                string             `bson:"_id" json:"id"`
	Name              string             `bson:"name" json:"name"`
	UserID            string             `bson:"userId" json:"userId"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"` // set once at construction
	ScheduledWorkouts []ScheduledWorkout `bson:"-" json:"scheduledWorkouts"`
}

// ScheduledWorkout repeats a Workout according to an RRULE.
// It belongs to exactly one plan and refers to it by id only.
type ScheduledWorkout struct {
	ID             string          `bson:"_id" json:"id"`
	PlanID         string          `bson:"planId" json:"planId"`
	WorkoutID      string          `bson:"workoutId" json:"workoutId"`
	RecurrenceRule recurrence.Rule `bson:"recurrenceRule" json:"recurrenceRule"`
	Position       int             `bson:"position" json:"-"`
}
