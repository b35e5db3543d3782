// Package generation defines the three structured generation pipelines:
// the shape each model response must take, the schema sent to the model and
// the prompt that grounds it in stored tenant data.
package generation

import (
	"github.com/dangerclosesec/audiencelab/internal/model"
)

// PersonaResult is the object generated from application analytics.
type PersonaResult struct {
	Name         string                    `json:"name" validate:"required"`
	Description  string                    `json:"description" validate:"required"`
	Demographics model.PersonaDemographics `json:"demographics" validate:"required"`
	Behaviors    model.PersonaBehaviors    `json:"behaviors" validate:"required"`
	Preferences  model.PersonaPreferences  `json:"preferences" validate:"required"`
}

// CampaignResult is the object generated from a persona. Dates are kept as
// text until ParseDate accepts them.
type CampaignResult struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Strategy    string   `json:"strategy" validate:"required"`
	Budget      *float64 `json:"budget,omitempty" validate:"omitempty,gte=0"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
}

// PlatformContent is the generated copy for a single platform.
type PlatformContent struct {
	Title              string   `json:"title" validate:"required"`
	Content            string   `json:"content" validate:"required"`
	ImageDescription   string   `json:"imageDescription" validate:"required"`
	AltText            string   `json:"altText" validate:"required"`
	Hashtags           []string `json:"hashtags" validate:"required,dive,required"`
	CallToAction       string   `json:"callToAction" validate:"required"`
	PostDescription    string   `json:"postDescription" validate:"required"`
	TargetAudience     string   `json:"targetAudience" validate:"required"`
	BestPostingTime    string   `json:"bestPostingTime" validate:"required"`
	EngagementStrategy string   `json:"engagementStrategy" validate:"required"`
}

// Payload tags the generated copy with its platform for storage.
func (c PlatformContent) Payload(platform string) model.ContentPayload {
	return model.ContentPayload{
		Platform:           platform,
		Title:              c.Title,
		Content:            c.Content,
		ImageDescription:   c.ImageDescription,
		AltText:            c.AltText,
		Hashtags:           c.Hashtags,
		CallToAction:       c.CallToAction,
		PostDescription:    c.PostDescription,
		TargetAudience:     c.TargetAudience,
		BestPostingTime:    c.BestPostingTime,
		EngagementStrategy: c.EngagementStrategy,
	}
}

// ContentResult maps each requested platform to its copy.
type ContentResult struct {
	Platforms map[string]PlatformContent `json:"platforms" validate:"required,min=1,dive"`
}
