package service

import (
	"errors"
	"fmt"

	"alcyxob/workouthub/internal/repository"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound        = errors.New("exercise not found")
	ErrWorkoutNotFound         = errors.New("workout not found")
	ErrWorkoutExerciseNotFound = errors.New("workout exercise not found")
	ErrPlanNotFound            = errors.New("workout plan not found")
	ErrScheduleNotFound        = errors.New("scheduled workout not found")
	ErrValidationFailed        = errors.New("validation failed")
	ErrMediaUnavailable        = errors.New("media storage is not configured")
	ErrVideoNotFound           = errors.New("exercise has no video")
	ErrTokenGeneration         = errors.New("failed to generate authentication token")
	ErrInvalidToken            = errors.New("invalid token")
)

// notFound maps repository.ErrNotFound onto the given service error and
// wraps anything else with op.
func notFound(err error, target error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return target
	}
	return fmt.Errorf("%s: %w", op, err)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, msg)
}
