package numerology

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var contentYAML []byte

type LifePathTraits struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Strengths   []string `yaml:"strengths" json:"strengths"`
	Tendencies  []string `yaml:"tendencies" json:"tendencies"`
}

// AlignmentKind selects which core number an Alignment describes.
type AlignmentKind string

const (
	AlignmentPsychic     AlignmentKind = "psychic"
	AlignmentExpression  AlignmentKind = "expression"
	AlignmentSoulUrge    AlignmentKind = "soul_urge"
	AlignmentPersonality AlignmentKind = "personality"
)

type Alignment struct {
	Theme        string `yaml:"theme" json:"theme"`
	Significance string `yaml:"significance" json:"significance"`
}

// Module is one narrative section of the premium report.
type Module struct {
	Para   string   `yaml:"para" json:"para"`
	Points []string `yaml:"points" json:"points"`
}

type Remedies struct {
	Habit    string `yaml:"habit" json:"habit"`
	QuickTip string `yaml:"quick_tip" json:"quick_tip"`
	Color    string `yaml:"color" json:"color"`
	BestDay  string `yaml:"best_day" json:"best_day"`
}

type KarmicLaw struct {
	Title  string `yaml:"title" json:"title"`
	Law    string `yaml:"law" json:"law"`
	Lesson string `yaml:"lesson" json:"lesson"`
}

type CosmicFrequency struct {
	Mantra      string `yaml:"mantra" json:"mantra"`
	Instruction string `yaml:"instruction" json:"instruction"`
}

type PremiumInsight struct {
	Question    string   `yaml:"question" json:"question"`
	Description string   `yaml:"description" json:"description"`
	SubPoints   []string `yaml:"sub_points" json:"sub_points"`
}

type moduleTables struct {
	Career          map[int]Module `yaml:"career"`
	Emotions        map[int]Module `yaml:"emotions"`
	Decision        map[int]Module `yaml:"decision"`
	Relationship    map[int]Module `yaml:"relationship"`
	Guidance        map[int]Module `yaml:"guidance"`
	GrowthBlueprint map[int]Module `yaml:"growth_blueprint"`
}

type quickInsightWords struct {
	Actions  []string `yaml:"actions"`
	Objects  []string `yaml:"objects"`
	Rituals  []string `yaml:"rituals"`
	Benefits []string `yaml:"benefits"`
}

type contentTables struct {
	LifePathTraits    map[int]LifePathTraits              `yaml:"life_path_traits"`
	ExpressionTraits  map[int]string                      `yaml:"expression_traits"`
	SoulUrgeTraits    map[int]string                      `yaml:"soul_urge_traits"`
	PersonalityTraits map[int]string                      `yaml:"personality_traits"`
	CoreAlignment     map[AlignmentKind]map[int]Alignment `yaml:"core_alignment"`
	Modules           moduleTables                        `yaml:"modules"`
	Remedies          map[int]Remedies                    `yaml:"remedies"`
	KarmicLaws        map[int]KarmicLaw                   `yaml:"karmic_laws"`
	CosmicFrequencies map[int]CosmicFrequency             `yaml:"cosmic_frequencies"`
	PremiumInsights   map[int][]PremiumInsight            `yaml:"premium_insights"`
	CosmicInsights    []string                            `yaml:"cosmic_insights"`
	QuickInsight      quickInsightWords                   `yaml:"quick_insight"`
	LockedModules     []string                            `yaml:"locked_modules"`
	Disclaimer        string                              `yaml:"disclaimer"`
}

var (
	contentOnce sync.Once
	content     *contentTables
)

// tables parses the embedded content once. The document ships with the
// binary, so a parse failure is a build defect.
func tables() *contentTables {
	contentOnce.Do(func() {
		var t contentTables
		if err := yaml.Unmarshal(contentYAML, &t); err != nil {
			panic(fmt.Sprintf("numerology: parse embedded content: %v", err))
		}
		content = &t
	})
	return content
}

// lookup returns m[n], or the fallback entry when the table has no key n.
func lookup[V any](m map[int]V, n int) V {
	if v, ok := m[n]; ok {
		return v
	}
	return m[fallbackKey]
}

func (t LifePathTraits) clone() LifePathTraits {
	t.Strengths = slices.Clone(t.Strengths)
	t.Tendencies = slices.Clone(t.Tendencies)
	return t
}

func (m Module) clone() Module {
	m.Points = slices.Clone(m.Points)
	return m
}

// GetLifePathTraits has entries for 1..9 and the master numbers; anything
// else gets the 9 entry.
func GetLifePathTraits(num int) LifePathTraits {
	return lookup(tables().LifePathTraits, num).clone()
}

// GetExpressionTraits covers 1..9, 11, 22 and 33.
func GetExpressionTraits(num int) string {
	return lookup(tables().ExpressionTraits, num)
}

// GetSoulUrgeTraits covers 1..9, 11, 22 and 33.
func GetSoulUrgeTraits(num int) string {
	return lookup(tables().SoulUrgeTraits, num)
}

// GetPersonalityTraits covers 1..9, 11, 22 and 33.
func GetPersonalityTraits(num int) string {
	return lookup(tables().PersonalityTraits, num)
}

// GetCoreAlignment explains a core number in the voice of the given kind.
// Only 1..9 are authored; master numbers fall back to 9.
func GetCoreAlignment(num int, kind AlignmentKind) Alignment {
	byNum, ok := tables().CoreAlignment[kind]
	if !ok {
		byNum = tables().CoreAlignment[AlignmentPsychic]
	}
	return lookup(byNum, num)
}

// GetCareerModule covers 1..9; master numbers fall back to 9.
func GetCareerModule(lifePath int) Module {
	return lookup(tables().Modules.Career, lifePath).clone()
}

// GetEmotionsModule covers 1..9; master numbers fall back to 9.
func GetEmotionsModule(lifePath int) Module {
	return lookup(tables().Modules.Emotions, lifePath).clone()
}

// GetDecisionModule covers 1..9; master numbers fall back to 9.
func GetDecisionModule(lifePath int) Module {
	return lookup(tables().Modules.Decision, lifePath).clone()
}

// GetRelationshipModule covers 1..9; master numbers fall back to 9.
func GetRelationshipModule(lifePath int) Module {
	return lookup(tables().Modules.Relationship, lifePath).clone()
}

// GetGuidanceModule covers 1..9; master numbers fall back to 9.
func GetGuidanceModule(lifePath int) Module {
	return lookup(tables().Modules.Guidance, lifePath).clone()
}

// GetGrowthBlueprint covers 1..9; master numbers fall back to 9.
func GetGrowthBlueprint(lifePath int) Module {
	return lookup(tables().Modules.GrowthBlueprint, lifePath).clone()
}

// GetRemedies covers 1..9; master numbers fall back to 9.
func GetRemedies(lifePath int) Remedies {
	return lookup(tables().Remedies, lifePath)
}

// GetKarmicLaw covers 1..9; master numbers fall back to 9.
func GetKarmicLaw(lifePath int) KarmicLaw {
	return lookup(tables().KarmicLaws, lifePath)
}

// GetCosmicFrequency returns the affirmation for a life path. Master numbers
// have their own mantras.
func GetCosmicFrequency(lifePath int) CosmicFrequency {
	return lookup(tables().CosmicFrequencies, lifePath)
}

// GetPremiumInsights returns a copy of the insight set for a life path.
// Master numbers fall back to 9.
func GetPremiumInsights(lifePath int) []PremiumInsight {
	src := lookup(tables().PremiumInsights, lifePath)
	out := make([]PremiumInsight, len(src))
	for i, in := range src {
		in.SubPoints = slices.Clone(in.SubPoints)
		out[i] = in
	}
	return out
}

// GetCosmicInsight picks the headline sentence of a reading by seed.
func GetCosmicInsight(seed int) string {
	pool := tables().CosmicInsights
	if len(pool) == 0 {
		return ""
	}
	return pool[mod(seed, len(pool))]
}

// LockedModules lists the premium sections a free report advertises.
func LockedModules() []string {
	return slices.Clone(tables().LockedModules)
}

func Disclaimer() string {
	return tables().Disclaimer
}
