package compensation

import (
	"errors"
	"strings"

	compensationerrors "go-payroll/internal/compensation/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return compensationerrors.ErrProfileNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_compensation_profile_effective":
			return compensationerrors.ErrProfileEffectiveDateAlreadyExists
		case pgErr.Code == "23503":
			return compensationerrors.ErrProfileReferenced
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_compensation_profile_effective") {
		return compensationerrors.ErrProfileEffectiveDateAlreadyExists
	}

	return err
}
