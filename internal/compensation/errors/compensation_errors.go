package compensationerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"compensation profile not found",
		http.StatusNotFound,
	)
	ErrNoEffectiveProfile = apperror.New(
		apperror.CodeComputation,
		"no compensation profile effective for the period",
		http.StatusUnprocessableEntity,
	)
	ErrProfileEffectiveDateAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a compensation profile for this employee and effective date already exists",
		http.StatusConflict,
	)
	ErrProfileReferenced = apperror.New(
		apperror.CodeConflict,
		"compensation profile is referenced by a payslip",
		http.StatusConflict,
	)
	ErrInvalidEffectiveDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid effective_date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDeduction = apperror.New(
		apperror.CodeInvalidInput,
		"declared deductions must not be negative",
		http.StatusBadRequest,
	)
)
