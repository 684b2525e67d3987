package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/tax"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestMapRepositoryError(t *testing.T) {
	assert.Nil(t, mapRepositoryError(nil))
	assert.ErrorIs(t, mapRepositoryError(gorm.ErrRecordNotFound), payrollerrors.ErrPayslipNotFound)

	other := errors.New("boom")
	assert.Equal(t, other, mapRepositoryError(other))
}

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return gdb, mock
}

func samplePayslip() *Payslip {
	return &Payslip{
		ID:              uuid.New(),
		CompanyID:       uuid.New(),
		EmployeeID:      uuid.New(),
		Period:          "2024-03",
		ProfileID:       uuid.New(),
		PayslipNumber:   "PS-202403-000001",
		Basic:           25000,
		LOPDays:         decimal.Zero,
		PaidLeaveDays:   decimal.Zero,
		WorkingDays:     21,
		Regime:          tax.RegimeNew,
		TaxTableVersion: tax.DefaultTableVersion,
		Status:          PayslipPending,
		CalculatedAt:    time.Now(),
	}
}

func expectOpenCycle(mock sqlmock.Sqlmock, state CycleState) {
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "payroll_cycles" WHERE company_id = \$\d+ AND period = \$\d+ .*FOR SHARE`).
		WillReturnRows(sqlmock.NewRows([]string{"state"}).AddRow(string(state)))
}

func TestRepository_UpsertPayslipWritten(t *testing.T) {
	gdb, mock := newGormMock(t)

	existingID := uuid.New()
	expectOpenCycle(mock, StateCalculated)
	mock.ExpectQuery(`INSERT INTO "payslips" .* ON CONFLICT \("employee_id","period"\) DO UPDATE SET .*"net_salary"="excluded"."net_salary".* WHERE "payslips"."status" <> \$\d+ RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(existingID))
	mock.ExpectCommit()

	payslip := samplePayslip()
	written, err := NewRepository(gdb).UpsertPayslip(context.Background(), payslip)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, existingID, payslip.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpsertPayslipSkipsPaid(t *testing.T) {
	gdb, mock := newGormMock(t)

	expectOpenCycle(mock, StateDraft)
	mock.ExpectQuery(`INSERT INTO "payslips" .* ON CONFLICT .* RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	written, err := NewRepository(gdb).UpsertPayslip(context.Background(), samplePayslip())
	require.NoError(t, err)
	assert.False(t, written)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpsertPayslipRejectsClosedCycle(t *testing.T) {
	for _, state := range []CycleState{StateFinalized, StatePaid, StateLocked} {
		t.Run(string(state), func(t *testing.T) {
			gdb, mock := newGormMock(t)

			expectOpenCycle(mock, state)
			mock.ExpectRollback()

			written, err := NewRepository(gdb).UpsertPayslip(context.Background(), samplePayslip())
			assert.ErrorIs(t, err, payrollerrors.ErrCycleNotOpen)
			assert.False(t, written)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_UpsertPayslipRejectsMissingCycle(t *testing.T) {
	gdb, mock := newGormMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "payroll_cycles" .*FOR SHARE`).
		WillReturnRows(sqlmock.NewRows([]string{"state"}))
	mock.ExpectRollback()

	_, err := NewRepository(gdb).UpsertPayslip(context.Background(), samplePayslip())
	assert.ErrorIs(t, err, payrollerrors.ErrCycleNotOpen)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateCycleStateConditional(t *testing.T) {
	gdb, mock := newGormMock(t)
	companyID := uuid.NewString()

	mock.ExpectExec(`UPDATE "payroll_cycles" SET .* WHERE company_id = \$\d+ AND period = \$\d+ AND state IN \(\$\d+\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := NewRepository(gdb).UpdateCycleState(context.Background(), companyID, "2024-03",
		[]CycleState{StateCalculated}, StateFinalized, map[string]any{"finalized_at": time.Now()})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindCycleMissing(t *testing.T) {
	gdb, mock := newGormMock(t)

	mock.ExpectQuery(`SELECT \* FROM "payroll_cycles" WHERE company_id = \$1 AND period = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	cycle, err := NewRepository(gdb).FindCycle(context.Background(), uuid.NewString(), "2024-03")
	require.NoError(t, err)
	assert.Nil(t, cycle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkPeriodPaid(t *testing.T) {
	gdb, mock := newGormMock(t)

	mock.ExpectExec(`UPDATE "payslips" SET .* WHERE company_id = \$\d+ AND \(?period = \$\d+ AND status = \$\d+\)?`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := NewRepository(gdb).MarkPeriodPaid(context.Background(), uuid.NewString(), "2024-03", time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
