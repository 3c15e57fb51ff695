package utils

import (
	"medirdv-service/internal/pkg/availability"
	"medirdv-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("subject_type", validateSubjectType)
	validate.RegisterValidation("opening_policy", validateOpeningPolicy)
	validate.RegisterValidation("weekday_locale", validateWeekdayLocale)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateSubjectType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.SubjectTypePhysician || value == constvars.SubjectTypeClinic
}

func validateOpeningPolicy(fl validator.FieldLevel) bool {
	value := strings.ToLower(strings.TrimSpace(fl.Field().String()))
	return value == "" || value == string(availability.FirstListed) || value == string(availability.Earliest)
}

func validateWeekdayLocale(fl validator.FieldLevel) bool {
	value := strings.ToLower(strings.TrimSpace(fl.Field().String()))
	return value == "" || value == constvars.WeekdayLocaleFrench || value == constvars.WeekdayLocaleEnglish
}
