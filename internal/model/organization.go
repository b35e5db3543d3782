// internal/model/organization.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Organization struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null;index" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Users []User `gorm:"foreignKey:OrganizationID" json:"-"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	assignID(&o.ID)
	return nil
}

// PersonalOrganizationName is the name given to the organization created for
// an individual who signs up without joining an existing one.
func PersonalOrganizationName(userName string) string {
	return userName + "'s Organization"
}
