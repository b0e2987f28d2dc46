package scoring

import (
	"scoutscore_backend/internal/scoring/domain"
	platformvalidator "scoutscore_backend/platform/validator"

	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the industry rule used by scoring and
// prospect request DTOs: the value must be one of the known verticals.
func RegisterValidations(val *platformvalidator.Validator) error {
	return val.RegisterValidation("industry", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseIndustry(fl.Field().String())
		return ok
	})
}
