package api

import (
	"errors"
	"net/http"

	"alcyxob/workouthub/internal/logging"
	"alcyxob/workouthub/internal/metrics"
	"alcyxob/workouthub/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto status codes. Anything unknown is
// logged and reported as a 500 without details.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrWorkoutExerciseNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrScheduleNotFound),
		errors.Is(err, service.ErrVideoNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrMediaUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		metrics.RepositoryErrors.WithLabelValues(c.FullPath()).Inc()
		logging.Ctx(c.Request.Context()).Error().Err(err).
			Str("route", c.FullPath()).
			Msg("Request failed")
		abortWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return false
	}
	return true
}
