package payroll

const (
	ResultGenerated = "GENERATED"
	ResultSkipped   = "SKIPPED"
	ResultError     = "ERROR"
)

type TransitionRequest struct {
	TargetState string `json:"target_state" binding:"required"`
}

type ListPayslipsRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING PAID"`
}

// EmployeeResult is one line of a calculation batch.
type EmployeeResult struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Status       string `json:"status"`
	PayslipID    string `json:"payslip_id,omitempty"`
	NetSalary    *int64 `json:"net_salary,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

type BatchSummary struct {
	Period         string           `json:"period"`
	State          string           `json:"state"`
	GeneratedCount int              `json:"generated_count"`
	SkippedCount   int              `json:"skipped_count"`
	ErrorCount     int              `json:"error_count"`
	Details        []EmployeeResult `json:"details"`
}

type CycleResponse struct {
	Period             string  `json:"period"`
	State              string  `json:"state"`
	LastGeneratedCount int     `json:"last_generated_count"`
	LastSkippedCount   int     `json:"last_skipped_count"`
	LastErrorCount     int     `json:"last_error_count"`
	CalculatedAt       *string `json:"calculated_at,omitempty"`
	FinalizedAt        *string `json:"finalized_at,omitempty"`
	PaidAt             *string `json:"paid_at,omitempty"`
	LockedAt           *string `json:"locked_at,omitempty"`
}

type PayslipResponse struct {
	ID               string  `json:"id"`
	PayslipNumber    string  `json:"payslip_number"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	EmployeeNumber   string  `json:"employee_number"`
	Period           string  `json:"period"`
	ProfileID        string  `json:"profile_id"`
	MonthlyGross     int64   `json:"monthly_gross"`
	Basic            int64   `json:"basic"`
	HRA              int64   `json:"hra"`
	SpecialAllowance int64   `json:"special_allowance"`
	GrossEarnings    int64   `json:"gross_earnings"`
	PF               int64   `json:"pf"`
	PT               int64   `json:"pt"`
	TaxableIncome    int64   `json:"taxable_income"`
	AnnualTax        int64   `json:"annual_tax"`
	MonthlyTax       int64   `json:"monthly_tax"`
	NetSalary        int64   `json:"net_salary"`
	LOPDays          string  `json:"lop_days"`
	PaidLeaveDays    string  `json:"paid_leave_days"`
	WorkingDays      int     `json:"working_days"`
	Regime           string  `json:"regime"`
	TaxTableVersion  string  `json:"tax_table_version"`
	Status           string  `json:"status"`
	HasDocument      bool    `json:"has_document"`
	CalculatedAt     string  `json:"calculated_at"`
	PaidAt           *string `json:"paid_at,omitempty"`
}
