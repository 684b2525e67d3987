package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatFieldName turns "target_state" into "Target State".
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError reports the first failed field as INVALID_INPUT.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return New(CodeInvalidInput, "Invalid input", http.StatusBadRequest)
	}

	e := errs[0]
	field := formatFieldName(e.Field())

	switch e.Tag() {
	case "required":
		return RequiredField(field)
	case "oneof":
		return invalidField(field, "must be one of "+strings.Join(strings.Fields(e.Param()), ", "))
	case "uuid":
		return invalidField(field, "must be a UUID")
	case "gte", "min":
		return invalidField(field, "must be at least "+e.Param())
	case "max":
		return invalidField(field, "must be at most "+e.Param())
	case "latitude", "longitude":
		return invalidField(field, "must be a valid "+e.Tag())
	default:
		return InvalidField(field)
	}
}

func invalidField(field, reason string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s %s", field, reason), http.StatusBadRequest)
}
