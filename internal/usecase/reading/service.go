package reading

import (
	"context"
	"errors"
	"strings"
	"time"

	"numguru/internal/domain/numerology"
	"numguru/internal/observability"
	"numguru/internal/pkg/logger"
	"numguru/internal/pkg/unlock"

	"go.uber.org/zap"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	minYear         = 1
	maxYear         = 9999
	maxNameLen      = 200
	previewInsights = 2
)

type Input struct {
	Name        string
	DOB         string
	UnlockToken string
}

// View is what a caller may see of a reading. Exactly one of Reading and
// Preview is set.
type View struct {
	Unlocked  bool                `json:"unlocked"`
	ShareCode string              `json:"share_code"`
	Reading   *numerology.Reading `json:"reading,omitempty"`
	Preview   *Preview            `json:"preview,omitempty"`
}

// Preview is the locked view: the core numbers, a taste of the premium
// insights and the titles of what unlocking adds.
type Preview struct {
	Name              string                      `json:"name"`
	BirthDate         string                      `json:"dob"`
	LifePathNumber    int                         `json:"life_path_number"`
	LifePathTraits    numerology.LifePathTraits   `json:"life_path_traits"`
	DriverNumber      int                         `json:"driver_number"`
	ExpressionNumber  int                         `json:"expression_number"`
	SoulUrgeNumber    int                         `json:"soul_urge_number"`
	PersonalityNumber int                         `json:"personality_number"`
	LuckyNumbers      []int                       `json:"lucky_numbers"`
	LuckyColor        numerology.Color            `json:"lucky_color"`
	CosmicInsight     string                      `json:"cosmic_insight"`
	PremiumInsights   []numerology.PremiumInsight `json:"premium_insights"`
	LockedModules     []string                    `json:"locked_modules"`
}

type Service struct {
	tokens  unlock.Service
	metrics *observability.Metrics
	logger  *zap.Logger
}

func NewService(tokens unlock.Service, metrics *observability.Metrics, l *zap.Logger) *Service {
	return &Service{tokens: tokens, metrics: metrics, logger: logger.OrNop(l)}
}

func (s *Service) Generate(ctx context.Context, in Input) (View, error) {
	name, err := ParseName(in.Name)
	if err != nil {
		return View{}, err
	}
	dob, err := ParseDOB(in.DOB)
	if err != nil {
		return View{}, err
	}
	return s.view(ctx, name, dob, in.UnlockToken, "full"), nil
}

// Shared rebuilds the reading behind a share code. The code never unlocks by
// itself; the token must match the decoded inputs.
func (s *Service) Shared(ctx context.Context, code, unlockToken string) (View, error) {
	name, dob, err := DecodeShareCode(code)
	if err != nil {
		return View{}, err
	}
	return s.view(ctx, name, dob, unlockToken, "shared"), nil
}

func (s *Service) FreeReport(ctx context.Context, dob string) (numerology.FreeReport, error) {
	d, err := ParseDOB(dob)
	if err != nil {
		return numerology.FreeReport{}, err
	}
	s.metrics.RecordReading("free")
	return numerology.GenerateFreeReportFromDob(d), nil
}

func (s *Service) view(_ context.Context, name string, dob time.Time, token, kind string) View {
	r := numerology.GenerateReading(name, dob)
	v := View{ShareCode: EncodeShareCode(name, dob)}

	if s.unlocked(token, name, dob) {
		v.Unlocked = true
		v.Reading = &r
		s.metrics.RecordReading(kind)
		return v
	}

	v.Preview = NewPreview(r)
	s.metrics.RecordReading("preview")
	return v
}

func (s *Service) unlocked(token, name string, dob time.Time) bool {
	token = strings.TrimSpace(token)
	if token == "" || s.tokens == nil {
		return false
	}
	ok, err := s.tokens.Unlocks(token, unlock.ReadingKey(name, dob))
	if err != nil {
		s.logger.Debug("unlock token rejected", zap.Error(err))
		return false
	}
	return ok
}

// NewPreview derives the locked view from a full reading without touching it.
func NewPreview(r numerology.Reading) *Preview {
	insights := r.PremiumInsights
	if len(insights) > previewInsights {
		insights = insights[:previewInsights]
	}
	return &Preview{
		Name:              r.Name,
		BirthDate:         r.BirthDate,
		LifePathNumber:    r.LifePathNumber,
		LifePathTraits:    r.LifePathTraits,
		DriverNumber:      r.DriverNumber,
		ExpressionNumber:  r.ExpressionNumber,
		SoulUrgeNumber:    r.SoulUrgeNumber,
		PersonalityNumber: r.PersonalityNumber,
		LuckyNumbers:      r.LuckyNumbers,
		LuckyColor:        r.LuckyColor,
		CosmicInsight:     r.CosmicInsight,
		PremiumInsights:   append([]numerology.PremiumInsight(nil), insights...),
		LockedModules:     numerology.LockedModules(),
	}
}

// ParseName trims the name and requires at least one letter the grid maps.
func ParseName(raw string) (string, error) {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" || len(name) > maxNameLen || !numerology.HasLetters(name) {
		return "", ErrInvalidInput
	}
	return name, nil
}

// ParseDOB accepts YYYY-MM-DD with a year in 1..9999.
func ParseDOB(raw string) (time.Time, error) {
	d, err := time.Parse(numerology.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ErrInvalidInput
	}
	if d.Year() < minYear || d.Year() > maxYear {
		return time.Time{}, ErrInvalidInput
	}
	return d, nil
}
