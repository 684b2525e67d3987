package compensation

type CreateProfileRequest struct {
	EmployeeID         string           `json:"employee_id" binding:"required,uuid"`
	AnnualCTC          *int64           `json:"annual_ctc" binding:"required,gte=0"`
	IsMetro            bool             `json:"is_metro"`
	Regime             string           `json:"regime" binding:"required,oneof=NEW OLD"`
	PFEnabled          *bool            `json:"pf_enabled"`
	DeclaredDeductions map[string]int64 `json:"declared_deductions"`
	EffectiveDate      string           `json:"effective_date" binding:"required"`
}

type ProfileResponse struct {
	ID                 string           `json:"id"`
	EmployeeID         string           `json:"employee_id"`
	EmployeeName       string           `json:"employee_name,omitempty"`
	AnnualCTC          int64            `json:"annual_ctc"`
	IsMetro            bool             `json:"is_metro"`
	Regime             string           `json:"regime"`
	PFEnabled          bool             `json:"pf_enabled"`
	DeclaredDeductions map[string]int64 `json:"declared_deductions"`
	EffectiveDate      string           `json:"effective_date"`
}
