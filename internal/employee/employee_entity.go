package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Employee is the roster view payroll needs. CompanyID is mandatory: an
// employee without a tenant never reaches attendance or payroll.
type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeNumber string    `gorm:"type:varchar(30)"`
	FullName       string
	Email          string `gorm:"uniqueIndex"`
	Status         string `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}
