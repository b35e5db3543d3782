// Package serializer projects stored models into the shapes the API returns.
// Internal columns such as organization and creator ids never leave through
// these types.
package serializer

import (
	"time"

	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/google/uuid"
)

func creatorOf(u *model.User) *model.Creator {
	if u == nil {
		return nil
	}
	return &model.Creator{Name: u.Name, Email: u.Email}
}

type OrganizationRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type User struct {
	ID           uuid.UUID        `json:"id"`
	Email        string           `json:"email"`
	Name         string           `json:"name"`
	Role         model.Role       `json:"role"`
	OrgID        uuid.UUID        `json:"orgId"`
	Organization *OrganizationRef `json:"organization,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

func NewUser(u *model.User) User {
	out := User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		OrgID:     u.OrganizationID,
		CreatedAt: u.CreatedAt,
	}
	if u.Organization != nil {
		out.Organization = &OrganizationRef{ID: u.Organization.ID, Name: u.Organization.Name}
	}
	return out
}

type Application struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	ApplicationID  string    `json:"applicationId"`
	ApplicationKey string    `json:"applicationKey"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func NewApplication(a *model.Application) Application {
	return Application{
		ID:             a.ID,
		Name:           a.Name,
		ApplicationID:  a.ApplicationID,
		ApplicationKey: a.ApplicationKey,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func NewApplications(apps []*model.Application) []Application {
	out := make([]Application, 0, len(apps))
	for _, a := range apps {
		out = append(out, NewApplication(a))
	}
	return out
}

type PersonaCount struct {
	Campaigns int64 `json:"campaigns"`
}

type Persona struct {
	ID             uuid.UUID                 `json:"id"`
	Name           string                    `json:"name"`
	Description    string                    `json:"description"`
	Demographics   model.PersonaDemographics `json:"demographics"`
	Behaviors      model.PersonaBehaviors    `json:"behaviors"`
	Preferences    model.PersonaPreferences  `json:"preferences"`
	ProfileVersion int                       `json:"profileVersion"`
	CreatedAt      time.Time                 `json:"createdAt"`
	UpdatedAt      time.Time                 `json:"updatedAt"`
	Creator        *model.Creator            `json:"creator,omitempty"`
	Count          *PersonaCount             `json:"_count,omitempty"`
}

func NewPersona(p *model.Persona) Persona {
	return Persona{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Demographics:   p.Demographics.Data(),
		Behaviors:      p.Behaviors.Data(),
		Preferences:    p.Preferences.Data(),
		ProfileVersion: p.ProfileVersion,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Creator:        creatorOf(p.Creator),
	}
}

// NewPersonaWithCount includes the number of campaigns built on the persona.
func NewPersonaWithCount(p *model.Persona, campaigns int64) Persona {
	out := NewPersona(p)
	out.Count = &PersonaCount{Campaigns: campaigns}
	return out
}

type PersonaRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CampaignCount struct {
	Contents int64 `json:"contents"`
}

type Campaign struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Strategy    string               `json:"strategy"`
	Status      model.CampaignStatus `json:"status"`
	Budget      *float64             `json:"budget"`
	StartDate   *time.Time           `json:"startDate"`
	EndDate     *time.Time           `json:"endDate"`
	PersonaID   uuid.UUID            `json:"personaId"`
	Persona     *PersonaRef          `json:"persona,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	Creator     *model.Creator       `json:"creator,omitempty"`
	Count       *CampaignCount       `json:"_count,omitempty"`
}

func NewCampaign(c *model.Campaign) Campaign {
	out := Campaign{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Strategy:    c.Strategy,
		Status:      c.Status,
		Budget:      c.Budget,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		PersonaID:   c.PersonaID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		Creator:     creatorOf(c.Creator),
	}
	if c.Persona != nil {
		out.Persona = &PersonaRef{ID: c.Persona.ID, Name: c.Persona.Name}
	}
	return out
}

// NewCampaignWithCount includes the number of content items in the campaign.
func NewCampaignWithCount(c *model.Campaign, contents int64) Campaign {
	out := NewCampaign(c)
	out.Count = &CampaignCount{Contents: contents}
	return out
}

type ContentCampaign struct {
	ID      uuid.UUID   `json:"id"`
	Name    string      `json:"name"`
	Persona *PersonaRef `json:"persona,omitempty"`
}

type Content struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Platform    string               `json:"platform"`
	Type        string               `json:"type"`
	Status      model.ContentStatus  `json:"status"`
	Payload     model.ContentPayload `json:"payload"`
	CampaignID  uuid.UUID            `json:"campaignId"`
	Campaign    *ContentCampaign     `json:"campaign,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	Creator     *model.Creator       `json:"creator,omitempty"`
}

func NewContent(c *model.Content) Content {
	out := Content{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Platform:    c.Platform,
		Type:        c.Type,
		Status:      c.Status,
		Payload:     c.Payload.Data(),
		CampaignID:  c.CampaignID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		Creator:     creatorOf(c.Creator),
	}
	if c.Campaign != nil {
		out.Campaign = &ContentCampaign{ID: c.Campaign.ID, Name: c.Campaign.Name}
		if c.Campaign.Persona != nil {
			out.Campaign.Persona = &PersonaRef{ID: c.Campaign.Persona.ID, Name: c.Campaign.Persona.Name}
		}
	}
	return out
}

func NewContents(items []*model.Content) []Content {
	out := make([]Content, 0, len(items))
	for _, c := range items {
		out = append(out, NewContent(c))
	}
	return out
}

// ContentSummary is the short form returned right after generation.
type ContentSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Platform    string    `json:"platform"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewContentSummary(c *model.Content) ContentSummary {
	return ContentSummary{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Platform:    c.Platform,
		CreatedAt:   c.CreatedAt,
	}
}
