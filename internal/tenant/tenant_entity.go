package tenant

import (
	"time"

	"github.com/google/uuid"
)

// Settings is the per-company switchboard read by payroll and attendance.
type Settings struct {
	CompanyID     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PayrollFrozen bool       `gorm:"not null;default:false"`
	Timezone      string     `gorm:"type:varchar(64)"`
	WeeklyOffDays string     `gorm:"type:varchar(32);not null;default:'SAT,SUN'"`
	UpdatedBy     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Settings) TableName() string {
	return "tenant_settings"
}
