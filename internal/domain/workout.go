package domain

// Workout is an ordered list of exercises with their set/rep prescription.
type Workout struct {
	ID        string            `bson:"_id" json:"id"`
	Name      string            `bson:"name,omitempty" json:"name,omitempty"`
	Exercises []WorkoutExercise `bson:"-" json:"exercises"` // owned; stored in their own collection/table
}

// WorkoutExercise links an Exercise into a Workout.
// It refers to its workout by id only.
type WorkoutExercise struct {
	ID         string   `bson:"_id" json:"id"`
	WorkoutID  string   `bson:"workoutId" json:"workoutId"`
	ExerciseID string   `bson:"exerciseId" json:"exerciseId"`
	Sets       int      `bson:"sets" json:"sets"`
	Reps       int      `bson:"reps" json:"reps"`
	Weight     *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Position   int      `bson:"position" json:"-"` // order within the workout, assigned by the repository
}
