package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"go-payroll/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payslipFilter struct {
	Status     string  `json:"status" validate:"omitempty,oneof=PENDING PAID"`
	EmployeeID string  `json:"employee_id" validate:"required,uuid"`
	AnnualCTC  float64 `json:"annual_ctc" validate:"gte=0"`
}

func TestMapValidationError(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	tests := []struct {
		name    string
		input   payslipFilter
		message string
	}{
		{"required", payslipFilter{}, "Employee Id is required"},
		{"oneof", payslipFilter{Status: "VOID", EmployeeID: "0b6c1d6e-5f8a-4f8e-9a51-1f3f1a2b3c4d"}, "Status must be one of PENDING, PAID"},
		{"uuid", payslipFilter{EmployeeID: "emp-1"}, "Employee Id must be a UUID"},
		{"gte", payslipFilter{EmployeeID: "0b6c1d6e-5f8a-4f8e-9a51-1f3f1a2b3c4d", AnnualCTC: -1}, "Annual Ctc must be at least 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := apperror.MapValidationError(v.Struct(tt.input))

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}

func TestToHTTP(t *testing.T) {
	conflict := apperror.New(apperror.CodeConflict, "payslip already paid", http.StatusConflict)

	got := apperror.ToHTTP(fmt.Errorf("mark paid: %w", conflict))
	assert.Equal(t, http.StatusConflict, got.Status)
	assert.Equal(t, apperror.CodeConflict, got.Code)

	got = apperror.ToHTTP(errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, apperror.ErrInternal.Message, got.Message)
	assert.Nil(t, got.Details)
}

func TestHasCode(t *testing.T) {
	base := apperror.New(apperror.CodeInvalidState, "invalid transition", http.StatusConflict)
	wrapped := apperror.Wrap(base, apperror.CodeComputation, "employee failed", http.StatusUnprocessableEntity)

	assert.True(t, apperror.HasCode(wrapped, apperror.CodeInvalidState))
	assert.True(t, apperror.HasCode(wrapped, apperror.CodeComputation))
	assert.False(t, apperror.HasCode(wrapped, apperror.CodeConflict))
	assert.Nil(t, apperror.Wrap(nil, apperror.CodeConflict, "x", http.StatusConflict))
}
