package numerology

import (
	"slices"
	"sort"
)

// Color is a named swatch with a short reading of what it does for the person.
type Color struct {
	Name        string `json:"name"`
	Hex         string `json:"hex"`
	Description string `json:"description,omitempty"`
}

// ColorPalette is the fixed pool a life path draws its guidance from.
type ColorPalette struct {
	Lucky       []Color
	Challenging []Color
}

// ColorGuidance is the seeded subset of a palette shown in a reading.
type ColorGuidance struct {
	LuckyColors       []Color `json:"lucky_colors"`
	ChallengingColors []Color `json:"challenging_colors"`
}

const (
	luckyColorsMin       = 2
	luckyColorsMax       = 4
	challengingColorsMin = 1
	challengingColorsMax = 3
)

var luckyColors = map[int]Color{
	1:  {Name: "Red", Hex: "#DC2626", Description: "Fires up your courage to go first."},
	2:  {Name: "Orange", Hex: "#EA580C", Description: "Warms every partnership you step into."},
	3:  {Name: "Yellow", Hex: "#CA8A04", Description: "Lights up your voice and your ideas."},
	4:  {Name: "Green", Hex: "#16A34A", Description: "Grounds your plans in steady growth."},
	5:  {Name: "Blue", Hex: "#2563EB", Description: "Keeps your restless mind clear and free."},
	6:  {Name: "Indigo", Hex: "#4F46E5", Description: "Deepens the care you give and receive."},
	7:  {Name: "Violet", Hex: "#7C3AED", Description: "Opens the door to your inner knowing."},
	8:  {Name: "Pink", Hex: "#DB2777", Description: "Softens power with magnetic warmth."},
	9:  {Name: "Gold", Hex: "#D97706", Description: "Radiates generosity and completion."},
	11: {Name: "Silver", Hex: "#6B7280", Description: "Reflects your intuition back to you."},
	22: {Name: "White", Hex: "#F3F4F6", Description: "Holds space for the vision you are building."},
	33: {Name: "Sky Blue", Hex: "#0EA5E9", Description: "Carries your healing presence further."},
}

var colorPalettes = map[int]ColorPalette{
	1: {
		Lucky: []Color{
			{Name: "Crimson", Hex: "#B91C1C", Description: "Wear it when you need to be seen and heard first."},
			{Name: "Saffron", Hex: "#F59E0B", Description: "Sun energy that backs your independent moves."},
			{Name: "Copper", Hex: "#B45309", Description: "Keeps ambition warm instead of harsh."},
			{Name: "Gold", Hex: "#D97706", Description: "Signals authority in negotiations and launches."},
			{Name: "Coral", Hex: "#F97316", Description: "Adds approachability to your natural command."},
		},
		Challenging: []Color{
			{Name: "Charcoal", Hex: "#374151", Description: "Mutes your initiative and invites hesitation."},
			{Name: "Navy", Hex: "#1E3A8A", Description: "Pulls you into caution when you should lead."},
			{Name: "Olive", Hex: "#4D7C0F", Description: "Dulls the spark that makes you a pioneer."},
			{Name: "Black", Hex: "#111827", Description: "Turns confidence into isolation."},
		},
	},
	2: {
		Lucky: []Color{
			{Name: "Pearl White", Hex: "#F8FAFC", Description: "Moon calm for delicate conversations."},
			{Name: "Silver", Hex: "#9CA3AF", Description: "Sharpens your sensitivity without draining it."},
			{Name: "Cream", Hex: "#FEF3C7", Description: "Makes you feel safe enough to open up."},
			{Name: "Seafoam", Hex: "#99F6E4", Description: "Keeps your emotions fluid and clear."},
			{Name: "Blush", Hex: "#FBCFE8", Description: "Invites affection and cooperation."},
		},
		Challenging: []Color{
			{Name: "Scarlet", Hex: "#DC2626", Description: "Stirs conflict you would rather avoid."},
			{Name: "Black", Hex: "#111827", Description: "Amplifies worry and moodiness."},
			{Name: "Rust", Hex: "#9A3412", Description: "Brings friction into partnerships."},
			{Name: "Slate", Hex: "#475569", Description: "Makes you withdraw when you need support."},
		},
	},
	3: {
		Lucky: []Color{
			{Name: "Sunflower", Hex: "#FACC15", Description: "Pure Jupiter joy for creative days."},
			{Name: "Amber", Hex: "#F59E0B", Description: "Supports teaching, speaking and writing."},
			{Name: "Lilac", Hex: "#C4B5FD", Description: "Adds grace to your expressive side."},
			{Name: "Rose", Hex: "#FB7185", Description: "Makes your charm land softly."},
			{Name: "Mustard", Hex: "#CA8A04", Description: "Helps you finish what you start."},
		},
		Challenging: []Color{
			{Name: "Grey", Hex: "#6B7280", Description: "Flattens your enthusiasm."},
			{Name: "Black", Hex: "#111827", Description: "Silences your natural voice."},
			{Name: "Brown", Hex: "#78350F", Description: "Weighs down playful ideas."},
			{Name: "Deep Blue", Hex: "#1E3A8A", Description: "Turns optimism into overthinking."},
		},
	},
	4: {
		Lucky: []Color{
			{Name: "Electric Blue", Hex: "#2563EB", Description: "Breaks routine just enough to innovate."},
			{Name: "Steel Grey", Hex: "#64748B", Description: "Reinforces discipline and structure."},
			{Name: "Khaki", Hex: "#A3A380", Description: "Keeps you practical under pressure."},
			{Name: "Forest Green", Hex: "#166534", Description: "Supports slow, lasting growth."},
			{Name: "Sand", Hex: "#E7D7B1", Description: "Calms the urge to control everything."},
		},
		Challenging: []Color{
			{Name: "Red", Hex: "#DC2626", Description: "Provokes impulsive decisions you regret."},
			{Name: "Gold", Hex: "#D97706", Description: "Tempts you into risky shortcuts."},
			{Name: "Orange", Hex: "#EA580C", Description: "Scatters focus across too many tasks."},
			{Name: "Neon Yellow", Hex: "#EAB308", Description: "Creates restlessness in a steady mind."},
		},
	},
	5: {
		Lucky: []Color{
			{Name: "Emerald", Hex: "#059669", Description: "Mercury green for quick, clever moves."},
			{Name: "Turquoise", Hex: "#14B8A6", Description: "Keeps travel and change lucky."},
			{Name: "Mint", Hex: "#6EE7B7", Description: "Refreshes a mind that tires of routine."},
			{Name: "Light Grey", Hex: "#D1D5DB", Description: "Balances your many directions."},
			{Name: "Aqua", Hex: "#22D3EE", Description: "Makes communication flow."},
		},
		Challenging: []Color{
			{Name: "Maroon", Hex: "#7F1D1D", Description: "Traps you in heavy obligations."},
			{Name: "Dark Brown", Hex: "#451A03", Description: "Feels like a cage to a free spirit."},
			{Name: "Burgundy", Hex: "#881337", Description: "Invites indulgence over progress."},
			{Name: "Black", Hex: "#111827", Description: "Blocks the variety you thrive on."},
		},
	},
	6: {
		Lucky: []Color{
			{Name: "Rose Pink", Hex: "#EC4899", Description: "Venus warmth for love and home."},
			{Name: "Ivory", Hex: "#FFFBEB", Description: "Brings harmony to family spaces."},
			{Name: "Sky Blue", Hex: "#38BDF8", Description: "Keeps care from turning into worry."},
			{Name: "Peach", Hex: "#FDBA74", Description: "Invites comfort and hospitality."},
			{Name: "Lavender", Hex: "#A78BFA", Description: "Supports healing and beauty work."},
		},
		Challenging: []Color{
			{Name: "Black", Hex: "#111827", Description: "Weighs on your sense of duty."},
			{Name: "Dark Red", Hex: "#991B1B", Description: "Stokes jealousy and possessiveness."},
			{Name: "Olive", Hex: "#4D7C0F", Description: "Makes the home feel stagnant."},
			{Name: "Charcoal", Hex: "#374151", Description: "Drains your generosity."},
		},
	},
	7: {
		Lucky: []Color{
			{Name: "Violet", Hex: "#7C3AED", Description: "Deepens meditation and study."},
			{Name: "Sea Green", Hex: "#2E8B57", Description: "Keeps intuition grounded."},
			{Name: "Smoke White", Hex: "#F1F5F9", Description: "Clears mental clutter."},
			{Name: "Light Yellow", Hex: "#FEF08A", Description: "Brings insight into daylight."},
			{Name: "Teal", Hex: "#0F766E", Description: "Protects your need for solitude."},
		},
		Challenging: []Color{
			{Name: "Bright Red", Hex: "#EF4444", Description: "Breaks your concentration."},
			{Name: "Hot Pink", Hex: "#DB2777", Description: "Pulls you into noise you do not need."},
			{Name: "Black", Hex: "#111827", Description: "Turns reflection into gloom."},
			{Name: "Orange", Hex: "#EA580C", Description: "Forces extroversion at the wrong moment."},
		},
	},
	8: {
		Lucky: []Color{
			{Name: "Navy Blue", Hex: "#1E3A8A", Description: "Saturn depth for serious ambition."},
			{Name: "Deep Purple", Hex: "#581C87", Description: "Commands respect in business."},
			{Name: "Charcoal", Hex: "#374151", Description: "Lends gravity to big decisions."},
			{Name: "Dark Green", Hex: "#14532D", Description: "Attracts long-term wealth."},
			{Name: "Plum", Hex: "#7E22CE", Description: "Balances power with intuition."},
		},
		Challenging: []Color{
			{Name: "Red", Hex: "#DC2626", Description: "Turns authority into aggression."},
			{Name: "Bright Yellow", Hex: "#FACC15", Description: "Invites careless spending."},
			{Name: "White", Hex: "#F9FAFB", Description: "Leaves you feeling exposed."},
			{Name: "Pink", Hex: "#F472B6", Description: "Undermines tough negotiations."},
		},
	},
	9: {
		Lucky: []Color{
			{Name: "Ruby Red", Hex: "#9F1239", Description: "Mars fire for brave compassion."},
			{Name: "Gold", Hex: "#D97706", Description: "Crowns your humanitarian work."},
			{Name: "Magenta", Hex: "#C026D3", Description: "Keeps your big heart open."},
			{Name: "Coral", Hex: "#FB7185", Description: "Softens endings into new beginnings."},
			{Name: "Burnt Orange", Hex: "#C2410C", Description: "Fuels service with stamina."},
		},
		Challenging: []Color{
			{Name: "Black", Hex: "#111827", Description: "Traps you in old grief."},
			{Name: "Dark Grey", Hex: "#1F2937", Description: "Hides your generosity."},
			{Name: "Brown", Hex: "#78350F", Description: "Makes letting go harder."},
			{Name: "Dull Green", Hex: "#3F6212", Description: "Breeds resentment over sacrifice."},
		},
	},
}

// GetLuckyColor returns the primary colour of a life path. The table has its
// own entries for master numbers.
func GetLuckyColor(lifePath int) Color {
	return lookup(luckyColors, lifePath)
}

// GetColorPalette returns the full palette pool for a life path. Master
// numbers fall back to 9.
func GetColorPalette(lifePath int) ColorPalette {
	p := lookup(colorPalettes, lifePath)
	return ColorPalette{Lucky: slices.Clone(p.Lucky), Challenging: slices.Clone(p.Challenging)}
}

// GetColorGuidance draws a seeded, variable-length subset from each side of
// the palette.
func GetColorGuidance(lifePath, seed int) ColorGuidance {
	p := lookup(colorPalettes, lifePath)
	colorName := func(c Color) string { return c.Name }
	return ColorGuidance{
		LuckyColors:       SelectBySeed(p.Lucky, seed, luckyColorsMin, luckyColorsMax, colorName),
		ChallengingColors: SelectBySeed(p.Challenging, seed, challengingColorsMin, challengingColorsMax, colorName),
	}
}

// SelectBySeed picks min + seed mod (max-min+1) entries from pool after
// ordering it by (len(name) * seed) mod 100. Ties keep pool order. The pool
// itself is never reordered.
func SelectBySeed[T any](pool []T, seed, min, max int, name func(T) string) []T {
	if max < min {
		max = min
	}
	count := min + mod(seed, max-min+1)
	if count > len(pool) {
		count = len(pool)
	}
	if count <= 0 {
		return []T{}
	}

	ordered := slices.Clone(pool)
	sort.SliceStable(ordered, func(i, j int) bool {
		return mod(len(name(ordered[i]))*seed, 100) < mod(len(name(ordered[j]))*seed, 100)
	})
	return ordered[:count]
}
