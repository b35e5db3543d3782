package generation

import (
	"testing"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/analytics"
	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/dangerclosesec/audiencelab/internal/genai"
	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

const validPersona = `{
  "name": "Remote Builders",
  "description": "Engineers at small software firms",
  "demographics": {"ageRange": "25-34", "income": "$80k-$120k", "location": "Urban", "education": "Bachelor's", "occupation": "Engineers"},
  "behaviors": {"digitalHabits": ["Slack"], "purchasingBehavior": ["Trials first"], "communicationPreferences": ["Email"], "painPoints": ["Context switching"], "motivations": ["Shipping"]},
  "preferences": {"contentTypes": ["Guides"], "channels": ["LinkedIn"], "messagingTone": "Direct", "valuePropositions": ["Speed"], "brandAttributes": ["Reliable"]}
}`

func TestDecodePersona(t *testing.T) {
	v := domain.NewValidator()

	var out PersonaResult
	require.NoError(t, Decode(v, []byte(validPersona), &out))
	assert.Equal(t, "Remote Builders", out.Name)
	assert.Equal(t, []string{"Slack"}, out.Behaviors.DigitalHabits)
	assert.Equal(t, "Direct", out.Preferences.MessagingTone)
}

func TestDecodeRejectsNonconformingOutput(t *testing.T) {
	v := domain.NewValidator()

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `nope`},
		{"wrong type", `{"name": 5}`},
		{"missing nested object", `{"name":"a","description":"b","behaviors":{},"preferences":{}}`},
		{"missing array", `{
			"name":"a","description":"b",
			"demographics":{"ageRange":"1","income":"2","location":"3","education":"4","occupation":"5"},
			"behaviors":{"digitalHabits":["x"],"purchasingBehavior":["x"],"communicationPreferences":["x"],"painPoints":["x"]},
			"preferences":{"contentTypes":["x"],"channels":["x"],"messagingTone":"x","valuePropositions":["x"],"brandAttributes":["x"]}}`},
		{"trailing data", validPersona + `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out PersonaResult
			err := Decode(v, []byte(tt.raw), &out)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrSchemaMismatch)
			assert.ErrorIs(t, err, domain.ErrGeneration)
		})
	}
}

func TestDecodeCampaign(t *testing.T) {
	v := domain.NewValidator()

	var out CampaignResult
	require.NoError(t, Decode(v, []byte(`{"name":"n","description":"d","strategy":"s","budget":1500,"startDate":"2025-04-01"}`), &out))
	require.NotNil(t, out.Budget)
	assert.InDelta(t, 1500, *out.Budget, 0.001)

	err := Decode(v, []byte(`{"name":"n","description":"d","strategy":"s","budget":-1}`), &out)
	assert.ErrorIs(t, err, domain.ErrSchemaMismatch)
}

func TestContentResultCheckPlatforms(t *testing.T) {
	entry := PlatformContent{Title: "t"}
	r := &ContentResult{Platforms: map[string]PlatformContent{"LinkedIn": entry, "Instagram": entry}}

	assert.NoError(t, r.CheckPlatforms([]string{"Instagram", "LinkedIn"}))

	err := r.CheckPlatforms([]string{"Instagram", "LinkedIn", "TikTok"})
	assert.ErrorIs(t, err, domain.ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "TikTok")

	err = r.CheckPlatforms([]string{"Instagram"})
	assert.ErrorIs(t, err, domain.ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "LinkedIn")
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDate("2025-04-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), *d)

	d, err = ParseDate("2025-04-01T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC), *d)

	_, err = ParseDate("next tuesday")
	assert.ErrorIs(t, err, domain.ErrSchemaMismatch)
}

func TestContentSchemaRequiresEveryPlatform(t *testing.T) {
	s := ContentSchema([]string{"Instagram", "LinkedIn"})

	platforms := s.Properties["platforms"]
	require.NotNil(t, platforms)
	assert.Equal(t, genai.TypeObject, platforms.Type)
	assert.Equal(t, []string{"Instagram", "LinkedIn"}, platforms.Required)
	assert.Contains(t, platforms.Properties["LinkedIn"].Required, "hashtags")
}

func TestCampaignSchemaOptionalFields(t *testing.T) {
	s := CampaignSchema()
	assert.Equal(t, []string{"name", "description", "strategy"}, s.Required)
	assert.Len(t, s.Properties, 6)
}

func TestPrompts(t *testing.T) {
	spend := 42.0
	summary := analytics.Summarize([]*model.PlatformUser{
		{JobTitle: "Engineer", Industry: "Technology", Location: "Berlin", Age: "25-34", Active: true, MonthlySpendUSD: &spend},
	})

	prompt, err := PersonaPrompt(summary)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Total Users: 1")
	assert.Contains(t, prompt, "- Technology: 1 users (100.0%)")
	assert.Contains(t, prompt, "Engineer in Technology, Berlin, Age: 25-34, Spend: $42.00/month")

	persona := &model.Persona{
		Name:         "Remote Builders",
		Description:  "Engineers",
		Demographics: datatypes.NewJSONType(model.PersonaDemographics{AgeRange: "25-34"}),
	}
	prompt, err = CampaignPrompt(persona)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Name: Remote Builders")
	assert.Contains(t, prompt, `"ageRange": "25-34"`)

	prompt, err = ContentPrompt(ContentInput{
		Campaign:  &model.Campaign{Name: "Spring"},
		Persona:   persona,
		Title:     "Launch",
		Platforms: []string{"Instagram", "LinkedIn"},
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Platforms: Instagram, LinkedIn")
	assert.Contains(t, prompt, "Additional Context: None provided")
}
