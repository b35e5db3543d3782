package serializer_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/dangerclosesec/audiencelab/internal/serializer"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestPersonaWithCount(t *testing.T) {
	persona := &model.Persona{
		ID:             uuid.New(),
		Name:           "Busy Founder",
		Description:    "Runs a small team",
		Demographics:   datatypes.NewJSONType(model.PersonaDemographics{AgeRange: "25-34"}),
		ProfileVersion: model.PersonaProfileVersion,
		OrganizationID: uuid.New(),
		CreatorID:      uuid.New(),
		Creator:        &model.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "secret"},
	}

	raw, err := json.Marshal(serializer.NewPersonaWithCount(persona, 3))
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))

	assert.Equal(t, "Busy Founder", out["name"])
	assert.Equal(t, map[string]any{"campaigns": float64(3)}, out["_count"])
	assert.Equal(t, map[string]any{"name": "Ada", "email": "ada@example.com"}, out["creator"])
	assert.Equal(t, "25-34", out["demographics"].(map[string]any)["ageRange"])
	assert.NotContains(t, out, "orgId")
	assert.NotContains(t, out, "organizationId")
	assert.NotContains(t, string(raw), "secret")
}

func TestPersonaOmitsCountWhenNotRequested(t *testing.T) {
	raw, err := json.Marshal(serializer.NewPersona(&model.Persona{Name: "p"}))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "_count")
	assert.NotContains(t, string(raw), "creator")
}

func TestCampaignIncludesPersonaRef(t *testing.T) {
	personaID := uuid.New()
	campaign := &model.Campaign{
		ID:        uuid.New(),
		Name:      "Spring launch",
		Status:    model.CampaignDraft,
		PersonaID: personaID,
		Persona:   &model.Persona{ID: personaID, Name: "Busy Founder"},
	}

	view := serializer.NewCampaignWithCount(campaign, 2)
	require.NotNil(t, view.Persona)
	assert.Equal(t, personaID, view.Persona.ID)
	assert.Equal(t, "Busy Founder", view.Persona.Name)
	assert.Equal(t, int64(2), view.Count.Contents)
}

func TestContentKeepsPlatformInPayload(t *testing.T) {
	content := &model.Content{
		ID:       uuid.New(),
		Title:    "Launch - linkedin",
		Platform: "linkedin",
		Payload: datatypes.NewJSONType(model.ContentPayload{
			Platform: "linkedin",
			Title:    "Launch",
			Content:  "We are live",
		}),
		Campaign: &model.Campaign{
			ID:      uuid.New(),
			Name:    "Spring launch",
			Persona: &model.Persona{ID: uuid.New(), Name: "Busy Founder"},
		},
		CreatedAt: time.Now(),
	}

	view := serializer.NewContent(content)
	assert.Equal(t, "linkedin", view.Platform)
	assert.Equal(t, "linkedin", view.Payload.Platform)
	require.NotNil(t, view.Campaign)
	require.NotNil(t, view.Campaign.Persona)
	assert.Equal(t, "Busy Founder", view.Campaign.Persona.Name)

	summary := serializer.NewContentSummary(content)
	assert.Equal(t, content.ID, summary.ID)
	assert.Equal(t, "linkedin", summary.Platform)
}

func TestUserHidesPasswordHash(t *testing.T) {
	orgID := uuid.New()
	user := &model.User{
		ID:             uuid.New(),
		Email:          "ada@example.com",
		Name:           "Ada",
		PasswordHash:   "$2a$12$hash",
		Role:           model.RoleAdmin,
		OrganizationID: orgID,
		Organization:   &model.Organization{ID: orgID, Name: "Acme"},
	}

	raw, err := json.Marshal(serializer.NewUser(user))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
	assert.Contains(t, string(raw), `"role":"ADMIN"`)
	assert.Contains(t, string(raw), `"name":"Acme"`)
}

func TestApplicationsNeverNil(t *testing.T) {
	raw, err := json.Marshal(serializer.NewApplications(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}
