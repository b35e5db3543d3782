// internal/model/application.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ApplicationIDPrefix  = "app_"
	ApplicationKeyPrefix = "sk_"
)

// Application is an external integration that reports platform users with its
// own id and key pair.
type Application struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"type:text;not null" json:"name"`
	ApplicationID  string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"applicationId"`
	ApplicationKey string    `gorm:"type:varchar(128);not null" json:"applicationKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"orgId"`
	CreatorID      uuid.UUID `gorm:"type:uuid;not null" json:"creatorId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	Creator *User `gorm:"foreignKey:CreatorID" json:"-"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}
