package api

import (
	"alcyxob/workouthub/internal/recurrence"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding tags:
//
//	rrule  string must be empty or parse as an RFC 5545 recurrence rule
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("rrule", func(fl validator.FieldLevel) bool {
		text := fl.Field().String()
		return text == "" || recurrence.Valid(text)
	})
}
