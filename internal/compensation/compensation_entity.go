package compensation

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"go-payroll/internal/tax"

	"github.com/google/uuid"
)

// Deductions maps a tax section (e.g. "80C") to the declared annual amount.
type Deductions map[string]int64

func (d Deductions) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

func (d *Deductions) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = Deductions{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("compensation: cannot scan %T into Deductions", src)
	}
	out := Deductions{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*d = out
	return nil
}

// Profile is one version of an employee's compensation. Rows are never
// updated; a change writes a new version with a later effective date.
type Profile struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_compensation_profile_effective,priority:1"`
	AnnualCTC          int64      `gorm:"not null"`
	IsMetro            bool       `gorm:"not null;default:false"`
	Regime             tax.Regime `gorm:"type:varchar(8);not null;default:'NEW'"`
	PFEnabled          bool       `gorm:"column:pf_enabled;not null;default:true"`
	DeclaredDeductions Deductions `gorm:"type:jsonb;not null;default:'{}'"`
	EffectiveDate      time.Time  `gorm:"type:date;not null;uniqueIndex:uq_compensation_profile_effective,priority:2"`
	CreatedBy          uuid.UUID  `gorm:"type:uuid"`
	CreatedAt          time.Time
	EmployeeName       string `gorm:"->;-:migration"`
}

func (Profile) TableName() string {
	return "compensation_profiles"
}

// Input converts the stored version into calculator input.
func (p Profile) Input() PayslipInput {
	return PayslipInput{
		AnnualCTC:          p.AnnualCTC,
		IsMetro:            p.IsMetro,
		PFEnabled:          p.PFEnabled,
		Regime:             p.Regime,
		DeclaredDeductions: p.DeclaredDeductions,
	}
}
