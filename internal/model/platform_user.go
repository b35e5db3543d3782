// internal/model/platform_user.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlatformUser is one analytics record reported by an Application.
type PlatformUser struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID  uuid.UUID `gorm:"type:uuid;not null;index:idx_platform_users_org_signup,priority:1" json:"-"`
	ApplicationID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Company         string    `gorm:"type:text" json:"company,omitempty"`
	JobTitle        string    `gorm:"type:text" json:"jobTitle,omitempty"`
	Industry        string    `gorm:"type:text" json:"industry,omitempty"`
	Location        string    `gorm:"type:text" json:"location,omitempty"`
	Age             string    `gorm:"type:varchar(32)" json:"age,omitempty"`
	MonthlySpendUSD *float64  `gorm:"type:numeric(12,2)" json:"monthlySpendUsd"`
	Active          bool      `gorm:"not null" json:"active"`
	SignupDate      time.Time `gorm:"not null;index:idx_platform_users_org_signup,priority:2" json:"signupDate"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (p *PlatformUser) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	if p.SignupDate.IsZero() {
		p.SignupDate = tx.NowFunc()
	}
	return nil
}

// Spend returns the monthly spend, treating an unreported value as zero.
func (p *PlatformUser) Spend() float64 {
	if p.MonthlySpendUSD == nil {
		return 0
	}
	return *p.MonthlySpendUSD
}
