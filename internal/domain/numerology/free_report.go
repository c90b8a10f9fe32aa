package numerology

import (
	"strings"
	"time"
)

const (
	freeTeaserCount = 6
	freeDateLayout  = "02-01-2006"
)

// Teaser is a premium insight cut down to its headline.
type Teaser struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type FreeLuckyColor struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
	Line string `json:"line"`
}

// FreeReport is the teaser built from a birth date alone.
type FreeReport struct {
	DOB             string          `json:"dob"`
	LifePath        int             `json:"life_path"`
	IsMasterNumber  bool            `json:"is_master_number"`
	Summary         string          `json:"summary"`
	LuckyColor      FreeLuckyColor  `json:"lucky_color"`
	QuickInsight    string          `json:"quick_insight"`
	PremiumTeasers  []Teaser        `json:"premium_teasers"`
	LockedModules   []string        `json:"locked_modules"`
	Remedies        Remedies        `json:"remedies"`
	CosmicFrequency CosmicFrequency `json:"cosmic_frequency"`
	Disclaimer      string          `json:"disclaimer"`
}

// GenerateFreeReportFromDob builds the free report. No name is involved.
func GenerateFreeReportFromDob(dob time.Time) FreeReport {
	lifePath := CalculateLifePathNumber(dob)
	seed := FreeReportSeed(dob, lifePath)
	traits := GetLifePathTraits(lifePath)
	color := GetLuckyColor(lifePath)

	insights := GetPremiumInsights(lifePath)
	if len(insights) > freeTeaserCount {
		insights = insights[:freeTeaserCount]
	}
	teasers := make([]Teaser, 0, len(insights))
	for _, in := range insights {
		teasers = append(teasers, Teaser{Title: in.Question, Content: in.Description})
	}

	return FreeReport{
		DOB:            dob.Format(freeDateLayout),
		LifePath:       lifePath,
		IsMasterNumber: IsMasterNumber(lifePath),
		Summary:        traits.Title + ". " + firstSentence(traits.Description),
		LuckyColor: FreeLuckyColor{
			Name: color.Name,
			Hex:  color.Hex,
			Line: color.Description,
		},
		QuickInsight:    QuickInsight(seed, dob.Day(), int(dob.Month()), lifePath),
		PremiumTeasers:  teasers,
		LockedModules:   LockedModules(),
		Remedies:        GetRemedies(lifePath),
		CosmicFrequency: GetCosmicFrequency(lifePath),
		Disclaimer:      Disclaimer(),
	}
}

func firstSentence(s string) string {
	if i := strings.Index(s, ". "); i >= 0 {
		return s[:i+1]
	}
	return s
}
