package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidPeriodFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidTargetState = apperror.New(
		apperror.CodeInvalidInput,
		"target_state must be one of CALCULATED, FINALIZED, PAID, LOCKED",
		http.StatusBadRequest,
	)
	ErrInvalidPayslipID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payslip id",
		http.StatusBadRequest,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"payroll cycle cannot move to the requested state",
		http.StatusConflict,
	)
	ErrFinalizeWithErrors = apperror.Wrap(
		ErrInvalidTransition,
		apperror.CodeInvalidState,
		"payroll cycle has calculation errors and cannot be finalized",
		http.StatusConflict,
	)
	ErrCycleLocked = apperror.New(
		apperror.CodeInvalidState,
		"payroll cycle is locked",
		http.StatusLocked,
	)
	ErrCycleNotOpen = apperror.New(
		apperror.CodeInvalidState,
		"payroll cycle is no longer open for calculation",
		http.StatusConflict,
	)
	ErrPayrollFrozen = apperror.New(
		apperror.CodeInvalidState,
		"payroll is frozen for this company",
		http.StatusLocked,
	)
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
	ErrPayslipAlreadyPaid = apperror.New(
		apperror.CodeConflict,
		"payslip is already paid",
		http.StatusConflict,
	)
)
