package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/padraicbc/playcall/models"
)

// Validator plugs go-playground validation into Echo with the game's enum rules.
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the playtype and outcome rules.
func NewValidator() (*Validator, error) {
	v := validator.New()
	rules := map[string]validator.Func{
		"playtype": func(fl validator.FieldLevel) bool {
			_, ok := models.ParsePlayType(fl.Field().String())
			return ok
		},
		"outcome": func(fl validator.FieldLevel) bool {
			_, ok := models.ParseOutcome(fl.Field().String())
			return ok
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("register %s validation: %w", tag, err)
		}
	}
	return &Validator{validate: v}, nil
}

// Validate validates a struct.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
