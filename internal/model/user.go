// internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string    `gorm:"type:varchar(320);uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"type:text;not null" json:"-"`
	Name           string    `gorm:"type:text;not null" json:"name"`
	Role           Role      `gorm:"type:varchar(16);not null" json:"role"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"orgId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	return nil
}

// Creator is the public projection of a User attached to owned resources.
type Creator struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
