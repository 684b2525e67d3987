package payroll

import (
	"time"

	"go-payroll/internal/tax"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PayslipPending = "PENDING"
	PayslipPaid    = "PAID"
)

// Cycle is the payroll state of one company for one month. A period with no
// row is in DRAFT.
type Cycle struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_cycle_period"`
	Period             string     `gorm:"type:char(7);not null;uniqueIndex:uq_payroll_cycle_period"`
	State              CycleState `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	LastGeneratedCount int        `gorm:"not null;default:0"`
	LastSkippedCount   int        `gorm:"not null;default:0"`
	LastErrorCount     int        `gorm:"not null;default:0"`
	CalculatedAt       *time.Time
	FinalizedAt        *time.Time
	PaidAt             *time.Time
	LockedAt           *time.Time
	UpdatedBy          *uuid.UUID `gorm:"type:uuid"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Cycle) TableName() string {
	return "payroll_cycles"
}

// Payslip is a denormalized snapshot of one employee's pay for a period.
// Rows in PAID are never rewritten.
type Payslip struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payslip_employee_period"`
	Period           string          `gorm:"type:char(7);not null;uniqueIndex:uq_payslip_employee_period;index"`
	ProfileID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	PayslipNumber    string          `gorm:"type:varchar(40);not null"`
	EmployeeName     string          `gorm:"type:varchar(150)"`
	EmployeeNumber   string          `gorm:"type:varchar(30)"`
	MonthlyGross     int64           `gorm:"type:bigint;not null;default:0"`
	Basic            int64           `gorm:"type:bigint;not null;default:0"`
	HRA              int64           `gorm:"column:hra;type:bigint;not null;default:0"`
	SpecialAllowance int64           `gorm:"type:bigint;not null;default:0"`
	GrossEarnings    int64           `gorm:"type:bigint;not null;default:0"`
	PF               int64           `gorm:"column:pf;type:bigint;not null;default:0"`
	PT               int64           `gorm:"column:pt;type:bigint;not null;default:0"`
	TaxableIncome    int64           `gorm:"type:bigint;not null;default:0"`
	AnnualTax        int64           `gorm:"type:bigint;not null;default:0"`
	MonthlyTax       int64           `gorm:"type:bigint;not null;default:0"`
	NetSalary        int64           `gorm:"type:bigint;not null;default:0"`
	LOPDays          decimal.Decimal `gorm:"column:lop_days;type:numeric(5,1);not null;default:0"`
	PaidLeaveDays    decimal.Decimal `gorm:"type:numeric(5,1);not null;default:0"`
	WorkingDays      int             `gorm:"not null"`
	Regime           tax.Regime      `gorm:"type:varchar(10);not null"`
	TaxTableVersion  string          `gorm:"type:varchar(20);not null"`
	Status           string          `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PDFPath          *string         `gorm:"column:pdf_path"`
	CalculatedAt     time.Time
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Payslip) TableName() string {
	return "payslips"
}
