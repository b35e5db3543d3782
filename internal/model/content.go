// internal/model/content.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ContentStatus string

const (
	ContentDraft     ContentStatus = "DRAFT"
	ContentReview    ContentStatus = "REVIEW"
	ContentPublished ContentStatus = "PUBLISHED"
	ContentArchived  ContentStatus = "ARCHIVED"
)

const ContentTypeSocialPost = "SOCIAL_POST"

var contentTransitions = map[ContentStatus][]ContentStatus{
	ContentDraft:     {ContentReview, ContentArchived},
	ContentReview:    {ContentDraft, ContentPublished},
	ContentPublished: {ContentArchived},
}

// CanTransitionTo reports whether content may move from s to next.
func (s ContentStatus) CanTransitionTo(next ContentStatus) bool {
	for _, allowed := range contentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ContentPayload is the platform-specific body of a piece of content.
type ContentPayload struct {
	Platform           string   `json:"platform" validate:"required"`
	Title              string   `json:"title" validate:"required"`
	Content            string   `json:"content" validate:"required"`
	ImageDescription   string   `json:"imageDescription"`
	AltText            string   `json:"altText"`
	Hashtags           []string `json:"hashtags"`
	CallToAction       string   `json:"callToAction"`
	PostDescription    string   `json:"postDescription"`
	TargetAudience     string   `json:"targetAudience"`
	BestPostingTime    string   `json:"bestPostingTime"`
	EngagementStrategy string   `json:"engagementStrategy"`
}

type Content struct {
	ID             uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string                             `gorm:"type:text;not null" json:"title"`
	Description    string                             `gorm:"type:text" json:"description"`
	Platform       string                             `gorm:"type:varchar(64);not null;index" json:"platform"`
	Payload        datatypes.JSONType[ContentPayload] `json:"payload"`
	Type           string                             `gorm:"type:varchar(32);not null" json:"type"`
	Status         ContentStatus                      `gorm:"type:varchar(16);not null" json:"status"`
	CampaignID     uuid.UUID                          `gorm:"type:uuid;not null;index" json:"campaignId"`
	OrganizationID uuid.UUID                          `gorm:"type:uuid;not null;index" json:"-"`
	CreatorID      uuid.UUID                          `gorm:"type:uuid;not null" json:"-"`
	CreatedAt      time.Time                          `json:"createdAt"`
	UpdatedAt      time.Time                          `json:"updatedAt"`

	Campaign *Campaign `gorm:"foreignKey:CampaignID" json:"-"`
	Creator  *User     `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	if c.Status == "" {
		c.Status = ContentDraft
	}
	if c.Type == "" {
		c.Type = ContentTypeSocialPost
	}
	return nil
}
