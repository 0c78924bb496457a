package service

import (
	"context"
	"fmt"
	"strings"

	"alcyxob/workouthub/internal/domain"
	"alcyxob/workouthub/internal/logging"
	"alcyxob/workouthub/internal/repository"
	"alcyxob/workouthub/internal/storage"
)

// ExerciseService manages the exercise library and its demonstration videos.
type ExerciseService interface {
	CreateExercise(ctx context.Context, exercise domain.Exercise) (*domain.Exercise, error)
	GetExercise(ctx context.Context, id string) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	// UpdateExercise loads the exercise, lets apply mutate it and persists the result.
	UpdateExercise(ctx context.Context, id string, apply func(*domain.Exercise)) (*domain.Exercise, error)
	// DeleteExercise removes the exercise and returns its last state.
	DeleteExercise(ctx context.Context, id string) (*domain.Exercise, error)
	CreateVideoUploadURL(ctx context.Context, id, contentType string) (string, error)
	GetVideoURL(ctx context.Context, id string) (string, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage // nil when media is disabled
}

// NewExerciseService creates a new instance of exerciseService.
// fileStorage may be nil.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		fileStorage:  fileStorage,
	}
}

func (s *exerciseService) CreateExercise(ctx context.Context, exercise domain.Exercise) (*domain.Exercise, error) {
	if exercise.Name == "" {
		return nil, invalid("exercise name is required")
	}
	exercise.ID = domain.NewID()
	exercise.VideoKey = ""

	if err := s.exerciseRepo.Create(ctx, &exercise); err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	return &exercise, nil
}

func (s *exerciseService) GetExercise(ctx context.Context, id string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrExerciseNotFound, "get exercise")
	}
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return exercises, nil
}

func (s *exerciseService) UpdateExercise(ctx context.Context, id string, apply func(*domain.Exercise)) (*domain.Exercise, error) {
	existing, err := s.GetExercise(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(existing)
	existing.ID = id // the path id always wins

	if err := s.exerciseRepo.Update(ctx, existing); err != nil {
		return nil, notFound(err, ErrExerciseNotFound, "update exercise")
	}
	return existing, nil
}

func (s *exerciseService) DeleteExercise(ctx context.Context, id string) (*domain.Exercise, error) {
	existing, err := s.GetExercise(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.exerciseRepo.Delete(ctx, id); err != nil {
		return nil, notFound(err, ErrExerciseNotFound, "delete exercise")
	}

	// The row is gone either way; a leftover object is only logged.
	if existing.HasVideo() && s.fileStorage != nil {
		if err := s.fileStorage.DeleteObject(ctx, existing.VideoKey); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("exercise_id", id).Msg("Failed to delete exercise video")
		}
	}
	return existing, nil
}

// CreateVideoUploadURL records the video key on the exercise and returns a
// presigned PUT URL for it.
func (s *exerciseService) CreateVideoUploadURL(ctx context.Context, id, contentType string) (string, error) {
	if s.fileStorage == nil {
		return "", ErrMediaUnavailable
	}
	if contentType == "" {
		contentType = "video/mp4"
	}
	if !strings.HasPrefix(contentType, "video/") {
		return "", invalid("content type must be a video type")
	}

	key := storage.ExerciseVideoKey(id)
	if _, err := s.UpdateExercise(ctx, id, func(e *domain.Exercise) { e.VideoKey = key }); err != nil {
		return "", err
	}

	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign upload: %w", err)
	}
	return url, nil
}

func (s *exerciseService) GetVideoURL(ctx context.Context, id string) (string, error) {
	if s.fileStorage == nil {
		return "", ErrMediaUnavailable
	}
	exercise, err := s.GetExercise(ctx, id)
	if err != nil {
		return "", err
	}
	if !exercise.HasVideo() {
		return "", ErrVideoNotFound
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.VideoKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return url, nil
}
