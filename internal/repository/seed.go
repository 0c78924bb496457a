package repository

import "alcyxob/workouthub/internal/domain"

// DefaultExercises is the shared catalog seeded once when the schema is
// created. The sqlite seed migration inserts the same rows.
func DefaultExercises() []domain.Exercise {
	return []domain.Exercise{
		{ID: "1", Name: "Push-ups", Description: "Upper body pushing exercise targeting chest, shoulders, and triceps"},
		{ID: "2", Name: "Squats", Description: "Lower body compound exercise targeting quads, hamstrings, and glutes"},
		{ID: "3", Name: "Deadlifts", Description: "Full body compound exercise targeting back, glutes, and hamstrings"},
		{ID: "4", Name: "Bench Press", Description: "Upper body pressing exercise targeting chest, shoulders, and triceps"},
		{ID: "5", Name: "Pull-ups", Description: "Upper body pulling exercise targeting back and biceps"},
		{ID: "6", Name: "Rows", Description: "Upper back and bicep exercise"},
		{ID: "7", Name: "Plank", Description: "Core stability exercise"},
		{ID: "8", Name: "Lunges", Description: "Lower body exercise targeting quads, glutes, and hamstrings"},
	}
}
