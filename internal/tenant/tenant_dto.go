package tenant

type PayrollFreezeRequest struct {
	Frozen *bool `json:"frozen" binding:"required"`
}

type SettingsResponse struct {
	CompanyID     string   `json:"company_id"`
	PayrollFrozen bool     `json:"payroll_frozen"`
	Timezone      string   `json:"timezone"`
	WeeklyOffDays []string `json:"weekly_off_days"`
}
