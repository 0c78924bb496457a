package api

import (
	"net/http"

	"alcyxob/workouthub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles what the routes need. Tokens is nil when authentication
// is disabled; RequireAuth then has no effect.
type Services struct {
	Exercises   service.ExerciseService
	Workouts    service.WorkoutService
	Plans       service.PlanService
	Tokens      service.TokenService
	RequireAuth bool
}

func SetupRoutes(router *gin.Engine, services Services) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	exerciseHandler := NewExerciseHandler(services.Exercises)
	workoutHandler := NewWorkoutHandler(services.Workouts)
	planHandler := NewPlanHandler(services.Plans)

	router.Use(Metrics())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("")
	api.Use(AuthMiddleware(services.Tokens))

	// Write routes get RequireUser when tokens are mandatory.
	write := []gin.HandlerFunc{}
	if services.RequireAuth && services.Tokens != nil {
		write = append(write, RequireUser())
	}
	w := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, write...), h)
	}

	// --- Exercise Routes ---
	exerciseGroup := api.Group("/exercise")
	{
		exerciseGroup.POST("", w(exerciseHandler.CreateExercise)...)
		exerciseGroup.GET("", exerciseHandler.GetExercises)
		exerciseGroup.PUT("", w(exerciseHandler.UpdateExercise)...)
		exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
		exerciseGroup.PUT("/:id", w(exerciseHandler.UpdateExercise)...)
		exerciseGroup.DELETE("/:id", w(exerciseHandler.DeleteExercise)...)

		exerciseGroup.POST("/:id/video", w(exerciseHandler.RequestVideoUpload)...)
		exerciseGroup.GET("/:id/video", exerciseHandler.GetVideo)
	}

	// --- Workout Routes ---
	workoutGroup := api.Group("/workout")
	{
		workoutGroup.POST("", w(workoutHandler.CreateWorkout)...)
		workoutGroup.GET("", workoutHandler.GetWorkouts)
		workoutGroup.GET("/:id", workoutHandler.GetWorkout)
		workoutGroup.PUT("/:id", w(workoutHandler.UpdateWorkout)...)
		workoutGroup.DELETE("/:id", w(workoutHandler.DeleteWorkout)...)

		workoutGroup.POST("/:id/exercises", w(workoutHandler.AddExercise)...)
		workoutGroup.PUT("/:id/exercises/:entryId", w(workoutHandler.UpdateExercise)...)
		workoutGroup.DELETE("/:id/exercises/:entryId", w(workoutHandler.RemoveExercise)...)
	}

	// --- Plan Routes ---
	planGroup := api.Group("/plan")
	{
		planGroup.POST("", w(planHandler.CreatePlan)...)
		planGroup.GET("", planHandler.GetPlans)
		planGroup.GET("/:id", planHandler.GetPlan)
		planGroup.PUT("/:id", w(planHandler.UpdatePlan)...)
		planGroup.DELETE("/:id", w(planHandler.DeletePlan)...)

		planGroup.POST("/:id/schedule", w(planHandler.AddSchedule)...)
		planGroup.PUT("/:id/schedule/:scheduleId", w(planHandler.UpdateSchedule)...)
		planGroup.DELETE("/:id/schedule/:scheduleId", w(planHandler.RemoveSchedule)...)
	}

	return nil
}
