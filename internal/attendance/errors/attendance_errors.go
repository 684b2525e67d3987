package attendanceerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrAlreadyActive = apperror.New(
		apperror.CodeConflict,
		"already clocked in for this day",
		http.StatusConflict,
	)
	ErrAlreadyClosed = apperror.New(
		apperror.CodeConflict,
		"session for this day is already closed",
		http.StatusConflict,
	)
	ErrNoActiveSession = apperror.New(
		apperror.CodeConflict,
		"no clock-in recorded for this day",
		http.StatusConflict,
	)
	ErrIntervalAlreadyOpen = apperror.New(
		apperror.CodeConflict,
		"a break or meeting is already in progress",
		http.StatusConflict,
	)
	ErrNoOpenBreak = apperror.New(
		apperror.CodeConflict,
		"no open break to end",
		http.StatusConflict,
	)
	ErrNoOpenMeeting = apperror.New(
		apperror.CodeConflict,
		"no open meeting to end",
		http.StatusConflict,
	)
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"unsupported attendance action",
		http.StatusBadRequest,
	)
	ErrTimestampBeforeCheckIn = apperror.New(
		apperror.CodeInvalidInput,
		"timestamp must not precede the check-in or the interval start",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
