// internal/model/persona.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PersonaProfileVersion is bumped whenever the shape of the profile blobs changes.
const PersonaProfileVersion = 1

type PersonaDemographics struct {
	AgeRange   string `json:"ageRange" validate:"required"`
	Income     string `json:"income" validate:"required"`
	Location   string `json:"location" validate:"required"`
	Education  string `json:"education" validate:"required"`
	Occupation string `json:"occupation" validate:"required"`
}

type PersonaBehaviors struct {
	DigitalHabits            []string `json:"digitalHabits" validate:"required,dive,required"`
	PurchasingBehavior       []string `json:"purchasingBehavior" validate:"required,dive,required"`
	CommunicationPreferences []string `json:"communicationPreferences" validate:"required,dive,required"`
	PainPoints               []string `json:"painPoints" validate:"required,dive,required"`
	Motivations              []string `json:"motivations" validate:"required,dive,required"`
}

type PersonaPreferences struct {
	ContentTypes      []string `json:"contentTypes" validate:"required,dive,required"`
	Channels          []string `json:"channels" validate:"required,dive,required"`
	MessagingTone     string   `json:"messagingTone" validate:"required"`
	ValuePropositions []string `json:"valuePropositions" validate:"required,dive,required"`
	BrandAttributes   []string `json:"brandAttributes" validate:"required,dive,required"`
}

// Persona describes a target customer segment. Profile blobs are stored as
// JSON but always pass through the typed structs above on the way in and out.
type Persona struct {
	ID             uuid.UUID                               `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string                                  `gorm:"type:text;not null" json:"name"`
	Description    string                                  `gorm:"type:text;not null" json:"description"`
	Demographics   datatypes.JSONType[PersonaDemographics] `json:"demographics"`
	Behaviors      datatypes.JSONType[PersonaBehaviors]    `json:"behaviors"`
	Preferences    datatypes.JSONType[PersonaPreferences]  `json:"preferences"`
	ProfileVersion int                                     `gorm:"not null" json:"profileVersion"`
	OrganizationID uuid.UUID                               `gorm:"type:uuid;not null;index" json:"-"`
	CreatorID      uuid.UUID                               `gorm:"type:uuid;not null" json:"-"`
	CreatedAt      time.Time                               `json:"createdAt"`
	UpdatedAt      time.Time                               `json:"updatedAt"`

	Creator *User `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

func (p *Persona) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	if p.ProfileVersion == 0 {
		p.ProfileVersion = PersonaProfileVersion
	}
	return nil
}
