package numerology

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestGetLuckyColor_MasterHasOwnEntry(t *testing.T) {
	for _, n := range []int{11, 22, 33} {
		assert.NotEmpty(t, GetLuckyColor(n).Name)
	}
	assert.Equal(t, GetLuckyColor(9), GetLuckyColor(99))
}

func TestGetColorGuidance_Counts(t *testing.T) {
	for lp := 1; lp <= 9; lp++ {
		for seed := 0; seed < 60; seed++ {
			g := GetColorGuidance(lp, seed)
			assert.GreaterOrEqual(t, len(g.LuckyColors), luckyColorsMin)
			assert.LessOrEqual(t, len(g.LuckyColors), luckyColorsMax)
			assert.GreaterOrEqual(t, len(g.ChallengingColors), challengingColorsMin)
			assert.LessOrEqual(t, len(g.ChallengingColors), challengingColorsMax)
		}
	}
}

func TestGetColorGuidance_SubsetOfPalette(t *testing.T) {
	p := GetColorPalette(4)
	g := GetColorGuidance(4, 19)
	in := func(c Color, pool []Color) bool {
		for _, x := range pool {
			if x == c {
				return true
			}
		}
		return false
	}
	for _, c := range g.LuckyColors {
		assert.True(t, in(c, p.Lucky), c.Name)
	}
	for _, c := range g.ChallengingColors {
		assert.True(t, in(c, p.Challenging), c.Name)
	}
}

func TestSelectBySeed_DoesNotMutatePool(t *testing.T) {
	pool := []string{"alpha", "be", "gamma-ray", "d"}
	before := append([]string(nil), pool...)
	got := SelectBySeed(pool, 7, 2, 4, func(s string) string { return s })
	if diff := cmp.Diff(before, pool); diff != "" {
		t.Fatalf("pool mutated (-want +got):\n%s", diff)
	}
	assert.Len(t, got, 2+7%3)
}

func TestSelectBySeed_CapsAtPoolSize(t *testing.T) {
	got := SelectBySeed([]int{1, 2}, 3, 3, 5, func(int) string { return "x" })
	assert.Len(t, got, 2)
	assert.Empty(t, SelectBySeed([]int(nil), 3, 1, 2, func(int) string { return "" }))
}
