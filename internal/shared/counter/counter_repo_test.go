package counter_test

import (
	"context"
	"errors"
	"testing"

	"go-payroll/internal/shared/counter"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_Next(t *testing.T) {
	db, mock := newGormMock(t)
	repo := counter.NewRepository(db)

	mock.ExpectQuery(`INSERT INTO company_counters`).
		WithArgs("company-1", "payslip:2024-03").
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(7))

	got, err := repo.Next(context.Background(), "company-1", counter.PayslipSeries("2024-03"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_NextError(t *testing.T) {
	db, mock := newGormMock(t)
	repo := counter.NewRepository(db)

	mock.ExpectQuery(`INSERT INTO company_counters`).WillReturnError(errors.New("db down"))

	_, err := repo.Next(context.Background(), "company-1", "payslip:2024-03")
	assert.ErrorContains(t, err, "db down")
}

func TestRepository_NextRequiresSeries(t *testing.T) {
	db, _ := newGormMock(t)

	_, err := counter.NewRepository(db).Next(context.Background(), "company-1", "")
	assert.Error(t, err)
}
