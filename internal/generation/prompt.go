package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/dangerclosesec/audiencelab/internal/analytics"
	"github.com/dangerclosesec/audiencelab/internal/model"
)

var funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"pct":   func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"spend": func(u *model.PlatformUser) string { return fmt.Sprintf("%.2f", u.Spend()) },
	"json": func(v any) (string, error) {
		b, err := json.MarshalIndent(v, "", "  ")
		return string(b), err
	},
	"join": strings.Join,
}

var personaTmpl = template.Must(template.New("persona").Funcs(funcs).Parse(`You are a marketing expert creating a detailed customer persona from real user analytics.

ANALYTICS DATA:
- Total Users: {{.Overview.TotalUsers}}
- Active Users: {{.Overview.ActiveUsers}} ({{pct .Overview.ActivePercent}}%)
- Average Monthly Spend: ${{money .Overview.AvgSpend}}
- Total Revenue: ${{money .Overview.TotalRevenue}}

TOP INDUSTRIES:
{{range .TopIndustries}}- {{.Name}}: {{.Count}} users ({{pct .Percentage}}%)
{{end}}
TOP AGE GROUPS:
{{range .TopAgeGroups}}- {{.Name}}: {{.Count}} users ({{pct .Percentage}}%)
{{end}}
TOP LOCATIONS:
{{range .TopLocations}}- {{.Name}}: {{.Count}} users ({{pct .Percentage}}%)
{{end}}
TOP JOB TITLES:
{{range .TopJobTitles}}- {{.Name}}: {{.Count}} users ({{pct .Percentage}}%)
{{end}}
RECENT USER SAMPLE:
{{range .Samples}}- {{or .JobTitle "Unknown"}} in {{or .Industry "Unknown"}}, {{or .Location "Unknown"}}, Age: {{or .Age "Unknown"}}, Spend: ${{spend .}}/month
{{end}}
Create a persona for the most significant segment of this user base. Cover dominant demographics,
likely behaviors given the job titles and industries, communication preferences, pain points and
motivations, and the marketing preferences that fit this profile. Make it actionable for campaigns.
`))

var campaignTmpl = template.Must(template.New("campaign").Funcs(funcs).Parse(`You are a marketing strategist creating a campaign for one customer persona.

PERSONA DETAILS:
Name: {{.Name}}
Description: {{.Description}}

DEMOGRAPHICS:
{{json .Demographics}}

BEHAVIORS:
{{json .Behaviors}}

PREFERENCES:
{{json .Preferences}}

The campaign must align with the persona's communication preferences, address their pain points,
use suitable channels and tone, and include concrete tactics, a timeline and a realistic budget.
Give dates as YYYY-MM-DD. The strategy should name target channels, messaging themes, content
formats, phases, success metrics and budget allocation.
`))

// ContentInput is the context for content generation.
type ContentInput struct {
	Campaign          *model.Campaign
	Persona           *model.Persona
	Title             string
	Platforms         []string
	AdditionalContext string
}

var contentTmpl = template.Must(template.New("content").Funcs(funcs).Parse(`You are a content marketing expert writing platform specific content for a campaign.

CAMPAIGN DETAILS:
Name: {{.Campaign.Name}}
Description: {{.Campaign.Description}}
Strategy: {{.Campaign.Strategy}}
{{with .Persona}}
TARGET PERSONA:
Name: {{.Name}}
Description: {{.Description}}
Demographics: {{json .Demographics}}
Behaviors: {{json .Behaviors}}
Preferences: {{json .Preferences}}
{{end}}
CONTENT REQUIREMENTS:
Title/Theme: {{.Title}}
Platforms: {{join .Platforms ", "}}
Additional Context: {{or .AdditionalContext "None provided"}}

Write one entry per platform, keyed by the platform name exactly as listed. Follow each platform's
conventions for length, tone and hashtag use, speak to the persona's pain points and motivations,
describe the ideal visual and end with a clear call to action.
`))

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func PersonaPrompt(s analytics.Summary) (string, error) {
	return render(personaTmpl, s)
}

func CampaignPrompt(p *model.Persona) (string, error) {
	return render(campaignTmpl, p)
}

func ContentPrompt(in ContentInput) (string, error) {
	return render(contentTmpl, in)
}
