package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"courtops/pkg/localtime"
	"courtops/pkg/logger"
	"courtops/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// ClubValidator validates clubs, courts and price rules. It registers the
// valid_clock tag for "HH:MM" wall-clock fields.
type ClubValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewClubValidator(log *logger.Logger) *ClubValidator {
	v := validator.New()

	if err := v.RegisterValidation("valid_clock", validateClock); err != nil {
		log.Fatal("Failed to register 'valid_clock' validator",
			"error", err,
		)
	}

	log.Info("Club validator initialized successfully")

	return &ClubValidator{
		validate: v,
		logger:   log,
	}
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := localtime.ParseClock(fl.Field().String())
	return err == nil
}

func (v *ClubValidator) ValidateClub(club *model.ClubScheduleConfig) error {
	if err := v.validate.Struct(club); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *ClubValidator) ValidateClubUpdate(update *model.ClubScheduleConfigUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *ClubValidator) ValidateCourt(court *model.Court) error {
	if err := v.validate.Struct(court); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *ClubValidator) ValidateCourtUpdate(update *model.CourtUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *ClubValidator) ValidatePriceRule(rule *model.PriceRule) error {
	if err := v.validate.Struct(rule); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	return v.validateRuleWindow(rule.StartTime, rule.EndTime)
}

func (v *ClubValidator) ValidatePriceRuleUpdate(update *model.PriceRuleUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if update.StartTime != "" && update.EndTime != "" {
		return v.validateRuleWindow(update.StartTime, update.EndTime)
	}
	return nil
}

// Price rule windows never wrap midnight; clubs with late hours declare one
// rule per side of midnight instead.
func (v *ClubValidator) validateRuleWindow(start, end string) error {
	startClock, err := localtime.ParseClock(start)
	if err != nil {
		return ValidationErrors{ValidationError{Field: "StartTime", Message: "must be in HH:MM format"}}
	}
	endClock, err := localtime.ParseClock(end)
	if err != nil {
		return ValidationErrors{ValidationError{Field: "EndTime", Message: "must be in HH:MM format"}}
	}
	if endClock <= startClock {
		return ValidationErrors{
			ValidationError{
				Field:   "EndTime",
				Message: "end_time must be after start_time; windows do not wrap midnight",
			},
		}
	}
	return nil
}

func (v *ClubValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "valid_clock":
			message = fmt.Sprintf("%s must be in HH:MM format (00:00-23:59)", err.Field())
		case "timezone":
			message = fmt.Sprintf("%s must be a valid IANA time zone name", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
