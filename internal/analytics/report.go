package analytics

import (
	"time"

	"github.com/dangerclosesec/audiencelab/internal/model"
)

const (
	chartDays     = 30
	recentUsers   = 10
	topN          = 5
	sampleSignups = 5
)

type Demographics struct {
	Industry []Bucket `json:"industry"`
	Age      []Bucket `json:"age"`
	Location []Bucket `json:"location"`
}

// Report is the analytics view of one application.
type Report struct {
	Overview     Overview              `json:"overview"`
	ChartData    []DailyPoint          `json:"chartData"`
	Demographics Demographics          `json:"demographics"`
	RecentUsers  []*model.PlatformUser `json:"recentUsers"`
}

// BuildReport expects users ordered by signup date, newest first.
func BuildReport(users []*model.PlatformUser, now time.Time) Report {
	recent := users
	if len(recent) > recentUsers {
		recent = recent[:recentUsers]
	}

	return Report{
		Overview:  ComputeOverview(users),
		ChartData: DailySeries(users, now, chartDays),
		Demographics: Demographics{
			Industry: Breakdown(users, ByIndustry),
			Age:      Breakdown(users, ByAge),
			Location: Breakdown(users, ByLocation),
		},
		RecentUsers: recent,
	}
}

// Summary is the grounding context handed to persona generation.
type Summary struct {
	Overview      Overview
	TopIndustries []Share
	TopAgeGroups  []Share
	TopLocations  []Share
	TopJobTitles  []Share
	Samples       []*model.PlatformUser
}

// Summarize expects users ordered by signup date, newest first.
func Summarize(users []*model.PlatformUser) Summary {
	samples := users
	if len(samples) > sampleSignups {
		samples = samples[:sampleSignups]
	}

	return Summary{
		Overview:      ComputeOverview(users),
		TopIndustries: Top(users, ByIndustry, topN),
		TopAgeGroups:  Top(users, ByAge, topN),
		TopLocations:  Top(users, ByLocation, topN),
		TopJobTitles:  Top(users, ByJobTitle, topN),
		Samples:       samples,
	}
}
