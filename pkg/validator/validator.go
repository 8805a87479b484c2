package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type ErrorResponse struct {
	FailedField string `json:"failed_field"`
	Tag         string `json:"tag"`
	Value       string `json:"value"`
}

var validate = validator.New()

// Letters, digits, underscores, hyphens, plus spaces and apostrophes that
// slug normalization removes or rewrites. At least one letter or digit.
var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_\-' ]*[A-Za-z0-9][A-Za-z0-9_\-' ]*$`)

func init() {
	validate.RegisterValidation("notblank", validators.NotBlank)
	validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
