package numerology

import "time"

// DateLayout is the wire format of birth dates.
const DateLayout = "2006-01-02"

type CoreAlignment struct {
	Driver      Alignment `json:"driver"`
	Expression  Alignment `json:"expression"`
	SoulUrge    Alignment `json:"soul_urge"`
	Personality Alignment `json:"personality"`
}

// Reading is the full premium report. It is rebuilt on every request and
// never stored.
type Reading struct {
	Name      string    `json:"name"`
	DOB       time.Time `json:"-"`
	BirthDate string    `json:"dob"`

	LifePathNumber    int            `json:"life_path_number"`
	LifePathTraits    LifePathTraits `json:"life_path_traits"`
	DriverNumber      int            `json:"driver_number"`
	ExpressionNumber  int            `json:"expression_number"`
	ExpressionTraits  string         `json:"expression_traits"`
	SoulUrgeNumber    int            `json:"soul_urge_number"`
	SoulUrgeTraits    string         `json:"soul_urge_traits"`
	PersonalityNumber int            `json:"personality_number"`
	PersonalityTraits string         `json:"personality_traits"`
	CoreAlignment     CoreAlignment  `json:"core_alignment"`

	Seed          int           `json:"seed"`
	LuckyNumbers  []int         `json:"lucky_numbers"`
	LuckyColor    Color         `json:"lucky_color"`
	ColorGuidance ColorGuidance `json:"color_guidance"`

	FriendlyNumbers []int  `json:"friendly_numbers"`
	EnemyNumbers    []int  `json:"enemy_numbers"`
	FriendlyAdvice  string `json:"friendly_advice"`
	GrowthAdvice    string `json:"growth_advice"`

	KarmicLaw       KarmicLaw       `json:"karmic_law"`
	CosmicInsight   string          `json:"cosmic_insight"`
	CosmicFrequency CosmicFrequency `json:"cosmic_frequency"`

	GrowthBlueprint    Module `json:"growth_blueprint"`
	GuidanceModule     Module `json:"guidance_module"`
	CareerModule       Module `json:"career_module"`
	EmotionsModule     Module `json:"emotions_module"`
	DecisionModule     Module `json:"decision_module"`
	RelationshipModule Module `json:"relationship_module"`

	Remedies        Remedies         `json:"remedies"`
	PremiumInsights []PremiumInsight `json:"premium_insights"`
}

// GenerateReading builds the full report for a name and birth date. It is a
// pure function: the same inputs always produce the same reading. A name
// without letters yields zero name numbers and the fallback content.
func GenerateReading(name string, dob time.Time) Reading {
	n := Calculate(name, dob)
	seed := Seed(n.LifePath, n.Driver, n.Expression)
	friendly := GetFriendlyNumbers(n.LifePath)
	enemy := GetEnemyNumbers(n.LifePath)

	return Reading{
		Name:      name,
		DOB:       dob,
		BirthDate: dob.Format(DateLayout),

		LifePathNumber:    n.LifePath,
		LifePathTraits:    GetLifePathTraits(n.LifePath),
		DriverNumber:      n.Driver,
		ExpressionNumber:  n.Expression,
		ExpressionTraits:  GetExpressionTraits(n.Expression),
		SoulUrgeNumber:    n.SoulUrge,
		SoulUrgeTraits:    GetSoulUrgeTraits(n.SoulUrge),
		PersonalityNumber: n.Personality,
		PersonalityTraits: GetPersonalityTraits(n.Personality),
		CoreAlignment: CoreAlignment{
			Driver:      GetCoreAlignment(n.Driver, AlignmentPsychic),
			Expression:  GetCoreAlignment(n.Expression, AlignmentExpression),
			SoulUrge:    GetCoreAlignment(n.SoulUrge, AlignmentSoulUrge),
			Personality: GetCoreAlignment(n.Personality, AlignmentPersonality),
		},

		Seed:          seed,
		LuckyNumbers:  GetLuckyNumbers(n.LifePath, n.Driver, n.Expression, n.SoulUrge, seed),
		LuckyColor:    GetLuckyColor(n.LifePath),
		ColorGuidance: GetColorGuidance(n.LifePath, seed),

		FriendlyNumbers: friendly,
		EnemyNumbers:    enemy,
		FriendlyAdvice:  FriendlyGrowthAdvice(AdviceFriendly, friendly),
		GrowthAdvice:    FriendlyGrowthAdvice(AdviceGrowth, enemy),

		KarmicLaw:       GetKarmicLaw(n.LifePath),
		CosmicInsight:   GetCosmicInsight(seed),
		CosmicFrequency: GetCosmicFrequency(n.LifePath),

		GrowthBlueprint:    GetGrowthBlueprint(n.LifePath),
		GuidanceModule:     GetGuidanceModule(n.LifePath),
		CareerModule:       GetCareerModule(n.LifePath),
		EmotionsModule:     GetEmotionsModule(n.LifePath),
		DecisionModule:     GetDecisionModule(n.LifePath),
		RelationshipModule: GetRelationshipModule(n.LifePath),

		Remedies:        GetRemedies(n.LifePath),
		PremiumInsights: GetPremiumInsights(n.LifePath),
	}
}
