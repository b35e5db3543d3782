package generation

import (
	"github.com/dangerclosesec/audiencelab/internal/genai"
)

func PersonaSchema() *genai.Schema {
	return genai.Object("A customer persona grounded in analytics",
		genai.Field{Name: "name", Schema: genai.String(`A descriptive name for the persona (e.g., "Tech-Savvy Millennials")`)},
		genai.Field{Name: "description", Schema: genai.String("A brief description of this persona")},
		genai.Field{Name: "demographics", Schema: genai.Object("Demographic information about this persona",
			genai.Field{Name: "ageRange", Schema: genai.String(`Age range (e.g., "25-35")`)},
			genai.Field{Name: "income", Schema: genai.String(`Income range (e.g., "$50k-$80k")`)},
			genai.Field{Name: "location", Schema: genai.String(`Primary location type (e.g., "Urban areas")`)},
			genai.Field{Name: "education", Schema: genai.String(`Education level (e.g., "Bachelor's degree")`)},
			genai.Field{Name: "occupation", Schema: genai.String(`Common job types (e.g., "Software developers")`)},
		)},
		genai.Field{Name: "behaviors", Schema: genai.Object("Behavioral patterns",
			genai.Field{Name: "digitalHabits", Schema: genai.StringArray("Digital behavior patterns")},
			genai.Field{Name: "purchasingBehavior", Schema: genai.StringArray("How they make purchasing decisions")},
			genai.Field{Name: "communicationPreferences", Schema: genai.StringArray("Preferred communication channels")},
			genai.Field{Name: "painPoints", Schema: genai.StringArray("Common challenges they face")},
			genai.Field{Name: "motivations", Schema: genai.StringArray("What drives their decisions")},
		)},
		genai.Field{Name: "preferences", Schema: genai.Object("Marketing and content preferences",
			genai.Field{Name: "contentTypes", Schema: genai.StringArray("Types of content they prefer")},
			genai.Field{Name: "channels", Schema: genai.StringArray("Marketing channels they respond to")},
			genai.Field{Name: "messagingTone", Schema: genai.String("Preferred tone of communication")},
			genai.Field{Name: "valuePropositions", Schema: genai.StringArray("Value propositions that resonate with them")},
			genai.Field{Name: "brandAttributes", Schema: genai.StringArray("Brand characteristics they prefer")},
		)},
	)
}

func CampaignSchema() *genai.Schema {
	return genai.Object("A marketing campaign targeting one persona",
		genai.Field{Name: "name", Schema: genai.String("A compelling campaign name")},
		genai.Field{Name: "description", Schema: genai.String("The campaign objectives and approach")},
		genai.Field{Name: "strategy", Schema: genai.String("Marketing strategy including channels, messaging, timeline and tactics")},
		genai.Field{Name: "budget", Schema: genai.Number("Suggested budget in USD"), Optional: true},
		genai.Field{Name: "startDate", Schema: genai.String("Suggested start date, YYYY-MM-DD"), Optional: true},
		genai.Field{Name: "endDate", Schema: genai.String("Suggested end date, YYYY-MM-DD"), Optional: true},
	)
}

func platformContentSchema(platform string) *genai.Schema {
	return genai.Object("Content optimized for "+platform,
		genai.Field{Name: "title", Schema: genai.String("The title or headline")},
		genai.Field{Name: "content", Schema: genai.String("The main copy for the platform")},
		genai.Field{Name: "imageDescription", Schema: genai.String("Description of the ideal visual")},
		genai.Field{Name: "altText", Schema: genai.String("Accessibility alt text for the visual")},
		genai.Field{Name: "hashtags", Schema: genai.StringArray("Relevant hashtags for the platform")},
		genai.Field{Name: "callToAction", Schema: genai.String("Clear call to action")},
		genai.Field{Name: "postDescription", Schema: genai.String("Meta description or post summary")},
		genai.Field{Name: "targetAudience", Schema: genai.String("Audience segment this content targets")},
		genai.Field{Name: "bestPostingTime", Schema: genai.String("Recommended posting time")},
		genai.Field{Name: "engagementStrategy", Schema: genai.String("How to encourage engagement")},
	)
}

// ContentSchema declares one required property per requested platform, so the
// model cannot omit a platform or invent another.
func ContentSchema(platforms []string) *genai.Schema {
	fields := make([]genai.Field, 0, len(platforms))
	for _, p := range platforms {
		fields = append(fields, genai.Field{Name: p, Schema: platformContentSchema(p)})
	}
	return genai.Object("Platform specific content",
		genai.Field{Name: "platforms", Schema: genai.Object("Content for each requested platform", fields...)},
	)
}
