package api

import (
	"net/http"

	"alcyxob/workouthub/internal/domain"
	"alcyxob/workouthub/internal/service"

	"github.com/gin-gonic/gin"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs ---

type WorkoutExerciseRequest struct {
	ExerciseID string   `json:"exerciseId" binding:"required"`
	Sets       int      `json:"sets" binding:"min=0"`
	Reps       int      `json:"reps" binding:"min=0"`
	Weight     *float64 `json:"weight" binding:"omitempty,min=0"`
}

func (r WorkoutExerciseRequest) ToWorkoutExercise() domain.WorkoutExercise {
	return domain.WorkoutExercise{
		ExerciseID: r.ExerciseID,
		Sets:       r.Sets,
		Reps:       r.Reps,
		Weight:     r.Weight,
	}
}

type CreateWorkoutRequest struct {
	Name      string                   `json:"name"`
	Exercises []WorkoutExerciseRequest `json:"exercises" binding:"dive"`
}

func (r CreateWorkoutRequest) ToWorkout() domain.Workout {
	entries := make([]domain.WorkoutExercise, 0, len(r.Exercises))
	for _, e := range r.Exercises {
		entries = append(entries, e.ToWorkoutExercise())
	}
	return domain.Workout{Name: r.Name, Exercises: entries}
}

type UpdateWorkoutRequest struct {
	Name *string `json:"name"`
}

func (r UpdateWorkoutRequest) ApplyTo(w *domain.Workout) {
	if r.Name != nil {
		w.Name = *r.Name
	}
}

type UpdateWorkoutExerciseRequest struct {
	ExerciseID *string  `json:"exerciseId" binding:"omitempty,min=1"`
	Sets       *int     `json:"sets" binding:"omitempty,min=0"`
	Reps       *int     `json:"reps" binding:"omitempty,min=0"`
	Weight     *float64 `json:"weight" binding:"omitempty,min=0"`
}

func (r UpdateWorkoutExerciseRequest) ApplyTo(e *domain.WorkoutExercise) {
	if r.ExerciseID != nil {
		e.ExerciseID = *r.ExerciseID
	}
	if r.Sets != nil {
		e.Sets = *r.Sets
	}
	if r.Reps != nil {
		e.Reps = *r.Reps
	}
	if r.Weight != nil {
		e.Weight = r.Weight
	}
}

// --- Handler Methods ---

func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req CreateWorkoutRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.workoutService.CreateWorkout(c.Request.Context(), req.ToWorkout())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	workout, err := h.workoutService.GetWorkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

func (h *WorkoutHandler) GetWorkouts(c *gin.Context) {
	workouts, err := h.workoutService.ListWorkouts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	var req UpdateWorkoutRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.workoutService.UpdateWorkout(c.Request.Context(), c.Param("id"), req.ApplyTo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	deleted, err := h.workoutService.DeleteWorkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}

// AddExercise handles POST /workout/:id/exercises.
func (h *WorkoutHandler) AddExercise(c *gin.Context) {
	var req WorkoutExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.workoutService.AddExercise(c.Request.Context(), c.Param("id"), req.ToWorkoutExercise())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *WorkoutHandler) UpdateExercise(c *gin.Context) {
	var req UpdateWorkoutExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.workoutService.UpdateExercise(c.Request.Context(), c.Param("id"), c.Param("entryId"), req.ApplyTo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *WorkoutHandler) RemoveExercise(c *gin.Context) {
	entry, err := h.workoutService.RemoveExercise(c.Request.Context(), c.Param("id"), c.Param("entryId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
