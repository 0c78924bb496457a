package api

import (
	"net/http"

	"alcyxob/workouthub/internal/domain"
	"alcyxob/workouthub/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateExerciseRequest defines the expected JSON for creating an exercise.
type CreateExerciseRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	UserID      *string `json:"userId"`
}

// ToExercise builds a new, unsaved exercise.
func (r CreateExerciseRequest) ToExercise() domain.Exercise {
	return domain.Exercise{
		Name:        r.Name,
		Description: r.Description,
		UserID:      r.UserID,
	}
}

// UpdateExerciseRequest is a partial update; nil fields are left untouched.
// ID is only read by PUT /exercise, where the path carries no id.
type UpdateExerciseRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
}

// ApplyTo copies the non-nil fields onto ex.
func (r UpdateExerciseRequest) ApplyTo(ex *domain.Exercise) {
	if r.Name != nil {
		ex.Name = *r.Name
	}
	if r.Description != nil {
		ex.Description = *r.Description
	}
}

type VideoUploadRequest struct {
	ContentType string `json:"contentType"`
}

// --- Handler Methods ---

// CreateExercise handles POST /exercise. Without a userId in the body the
// caller's token, if any, supplies it.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	exercise := req.ToExercise()
	if exercise.UserID == nil {
		if userID, ok := getUserIDFromContext(c); ok {
			exercise.UserID = &userID
		}
	}

	created, err := h.exerciseService.CreateExercise(c.Request.Context(), exercise)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exercise, err := h.exerciseService.GetExercise(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

func (h *ExerciseHandler) GetExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// UpdateExercise handles PUT /exercise/:id and PUT /exercise. The path id,
// when present, wins over the body id.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	var req UpdateExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	id := c.Param("id")
	if id == "" {
		id = req.ID
	}
	if id == "" {
		abortWithError(c, http.StatusBadRequest, "Validation error: id is required")
		return
	}

	updated, err := h.exerciseService.UpdateExercise(c.Request.Context(), id, req.ApplyTo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	deleted, err := h.exerciseService.DeleteExercise(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}

// RequestVideoUpload returns a presigned URL the client PUTs the video to.
func (h *ExerciseHandler) RequestVideoUpload(c *gin.Context) {
	var req VideoUploadRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	url, err := h.exerciseService.CreateVideoUploadURL(c.Request.Context(), c.Param("id"), req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploadUrl": url})
}

func (h *ExerciseHandler) GetVideo(c *gin.Context) {
	url, err := h.exerciseService.GetVideoURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videoUrl": url})
}
