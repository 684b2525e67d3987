package tax

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrUnknownTable = apperror.New(
		apperror.CodeInternalError,
		"unknown tax table version",
		http.StatusInternalServerError,
	)
	ErrUnknownRegime = apperror.New(
		apperror.CodeComputation,
		"unknown tax regime",
		http.StatusUnprocessableEntity,
	)
)
