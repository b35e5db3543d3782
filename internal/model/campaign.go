// internal/model/campaign.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "DRAFT"
	CampaignActive    CampaignStatus = "ACTIVE"
	CampaignPaused    CampaignStatus = "PAUSED"
	CampaignCompleted CampaignStatus = "COMPLETED"
)

var campaignTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignDraft:  {CampaignActive},
	CampaignActive: {CampaignPaused, CampaignCompleted},
	CampaignPaused: {CampaignActive, CampaignCompleted},
}

// CanTransitionTo reports whether a campaign may move from s to next.
func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	for _, allowed := range campaignTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Campaign struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string         `gorm:"type:text;not null" json:"name"`
	Description    string         `gorm:"type:text;not null" json:"description"`
	Strategy       string         `gorm:"type:text;not null" json:"strategy"`
	Status         CampaignStatus `gorm:"type:varchar(16);not null" json:"status"`
	Budget         *float64       `gorm:"type:numeric(14,2)" json:"budget"`
	StartDate      *time.Time     `json:"startDate"`
	EndDate        *time.Time     `json:"endDate"`
	PersonaID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"personaId"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	CreatorID      uuid.UUID      `gorm:"type:uuid;not null" json:"-"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`

	Persona *Persona `gorm:"foreignKey:PersonaID" json:"-"`
	Creator *User    `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	if c.Status == "" {
		c.Status = CampaignDraft
	}
	return nil
}
