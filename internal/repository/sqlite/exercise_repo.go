package sqlite

import (
	"context"

	"alcyxob/workouthub/internal/domain"
	"alcyxob/workouthub/internal/repository"

	"gorm.io/gorm"
)

type exerciseRepository struct {
	db *gorm.DB
}

// Create inserts a new exercise, generating an ID when none is set.
func (r *exerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == "" {
		exercise.ID = domain.NewID()
	}
	m := exerciseFromDomain(exercise)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *exerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	var m ExerciseModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	exercise := m.toDomain()
	return &exercise, nil
}

// List returns every exercise in insertion order.
func (r *exerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	rows := make([]ExerciseModel, 0)
	if err := r.db.WithContext(ctx).Order("rowid").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Exercise, 0, len(rows))
	for _, m := range rows {
		result = append(result, m.toDomain())
	}
	return result, nil
}

// Update overwrites all mutable columns. The ID never changes.
func (r *exerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	res := r.db.WithContext(ctx).Model(&ExerciseModel{}).
		Where("id = ?", exercise.ID).
		Updates(map[string]interface{}{
			"name":        exercise.Name,
			"description": exercise.Description,
			"user_id":     exercise.UserID,
			"video_key":   exercise.VideoKey,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *exerciseRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ExerciseModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
