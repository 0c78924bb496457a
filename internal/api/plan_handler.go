package api

import (
	"net/http"

	"alcyxob/workouthub/internal/domain"
	"alcyxob/workouthub/internal/recurrence"
	"alcyxob/workouthub/internal/service"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

// ScheduleRequest adds a workout to a plan. An empty recurrenceRule means weekly.
type ScheduleRequest struct {
	WorkoutID      string `json:"workoutId" binding:"required"`
	RecurrenceRule string `json:"recurrenceRule" binding:"omitempty,rrule"`
}

func (r ScheduleRequest) ToScheduledWorkout() (domain.ScheduledWorkout, error) {
	rule, err := parseRule(r.RecurrenceRule)
	if err != nil {
		return domain.ScheduledWorkout{}, err
	}
	return domain.ScheduledWorkout{WorkoutID: r.WorkoutID, RecurrenceRule: rule}, nil
}

// UpdateScheduleRequest changes the non-nil fields. An empty recurrenceRule
// resets the entry to weekly, as on create.
type UpdateScheduleRequest struct {
	WorkoutID      *string `json:"workoutId" binding:"omitempty,min=1"`
	RecurrenceRule *string `json:"recurrenceRule" binding:"omitempty,rrule"`
}

// Changes parses the request into an update for the service to apply.
func (r UpdateScheduleRequest) Changes() (func(*domain.ScheduledWorkout), error) {
	var rule *recurrence.Rule
	if r.RecurrenceRule != nil {
		parsed, err := parseRule(*r.RecurrenceRule)
		if err != nil {
			return nil, err
		}
		rule = &parsed
	}
	return func(s *domain.ScheduledWorkout) {
		if r.WorkoutID != nil {
			s.WorkoutID = *r.WorkoutID
		}
		if rule != nil {
			s.RecurrenceRule = *rule
		}
	}, nil
}

func parseRule(text string) (recurrence.Rule, error) {
	if text == "" {
		return recurrence.Weekly(), nil
	}
	return recurrence.Parse(text)
}

type CreatePlanRequest struct {
	Name     string            `json:"name" binding:"required"`
	UserID   string            `json:"userId"`
	Schedule []ScheduleRequest `json:"schedule" binding:"dive"`
}

func (r CreatePlanRequest) ToWorkoutPlan() (domain.WorkoutPlan, error) {
	schedule := make([]domain.ScheduledWorkout, 0, len(r.Schedule))
	for _, s := range r.Schedule {
		scheduled, err := s.ToScheduledWorkout()
		if err != nil {
			return domain.WorkoutPlan{}, err
		}
		schedule = append(schedule, scheduled)
	}
	return domain.WorkoutPlan{Name: r.Name, UserID: r.UserID, ScheduledWorkouts: schedule}, nil
}

type UpdatePlanRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1"`
	UserID *string `json:"userId" binding:"omitempty,min=1"`
}

func (r UpdatePlanRequest) ApplyTo(p *domain.WorkoutPlan) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.UserID != nil {
		p.UserID = *r.UserID
	}
}

// --- Handler Methods ---

// CreatePlan handles POST /plan. The owner comes from the body, or from the
// caller's token when the body has none.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.UserID == "" {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			abortWithError(c, http.StatusBadRequest, "Validation error: userId is required")
			return
		}
		req.UserID = userID
	}

	plan, err := req.ToWorkoutPlan()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	created, err := h.planService.CreatePlan(c.Request.Context(), plan)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	plan, err := h.planService.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GetPlans handles GET /plan, optionally filtered with ?userId=.
func (h *PlanHandler) GetPlans(c *gin.Context) {
	plans, err := h.planService.ListPlans(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	var req UpdatePlanRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.planService.UpdatePlan(c.Request.Context(), c.Param("id"), req.ApplyTo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	deleted, err := h.planService.DeletePlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}

func (h *PlanHandler) AddSchedule(c *gin.Context) {
	var req ScheduleRequest
	if !bindJSON(c, &req) {
		return
	}
	scheduled, err := req.ToScheduledWorkout()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	created, err := h.planService.AddSchedule(c.Request.Context(), c.Param("id"), scheduled)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *PlanHandler) UpdateSchedule(c *gin.Context) {
	var req UpdateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}
	apply, err := req.Changes()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	updated, err := h.planService.UpdateSchedule(c.Request.Context(), c.Param("id"), c.Param("scheduleId"), apply)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *PlanHandler) RemoveSchedule(c *gin.Context) {
	removed, err := h.planService.RemoveSchedule(c.Request.Context(), c.Param("id"), c.Param("scheduleId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, removed)
}
