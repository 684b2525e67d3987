package holiday

import (
	"errors"

	holidayerrors "go-payroll/internal/holiday/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_holidays_company_date" {
		return holidayerrors.ErrHolidayAlreadyExists
	}

	return err
}
