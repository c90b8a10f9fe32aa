package numerology

import (
	"slices"
	"sort"
)

const (
	luckyCount    = 4
	luckyKeyA     = 17
	luckyKeyB     = 31
	luckyKeySpace = 50
	luckyFallback = 8
)

var luckyTopUp = []int{1, 3, 5, 7, 9}

var friendlyNumbers = map[int][]int{
	1: {1, 2, 3, 5, 9},
	2: {1, 2, 3, 5},
	3: {1, 2, 3, 5, 7, 9},
	4: {1, 5, 6, 7, 8},
	5: {1, 3, 5, 6},
	6: {4, 5, 6, 8, 9},
	7: {1, 3, 4, 5, 6},
	8: {3, 4, 5, 6, 7},
	9: {1, 2, 3, 5, 9},
}

var enemyNumbers = map[int][]int{
	1: {4, 6, 8},
	2: {4, 8, 9},
	3: {4, 6},
	4: {2, 3, 9},
	5: {2, 4},
	6: {1, 2, 3},
	7: {2, 8, 9},
	8: {1, 2, 9},
	9: {4, 6, 8},
}

// GetFriendlyNumbers returns the supportive numbers for a life path.
// Master numbers have no entry and fall back to 9.
func GetFriendlyNumbers(lifePath int) []int {
	return slices.Clone(lookup(friendlyNumbers, lifePath))
}

// GetEnemyNumbers returns the numbers that challenge a life path.
func GetEnemyNumbers(lifePath int) []int {
	return slices.Clone(lookup(enemyNumbers, lifePath))
}

// GetLuckyNumbers picks exactly four distinct numbers in 1..9. The core
// numbers are merged with the friendly set of the life path, shuffled by a
// seed-keyed sort, collapsed to single digits and topped up from 1, 3, 5, 7, 9
// when fewer than four remain.
func GetLuckyNumbers(lifePath, driver, expression, soulUrge, seed int) []int {
	candidates := uniqueInts(append([]int{lifePath, driver, expression, soulUrge}, lookup(friendlyNumbers, lifePath)...))

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if ka, kb := mod(a*seed+luckyKeyA, luckyKeySpace), mod(b*seed+luckyKeyA, luckyKeySpace); ka != kb {
			return ka < kb
		}
		if ka, kb := mod(a*seed+luckyKeyB, luckyKeySpace), mod(b*seed+luckyKeyB, luckyKeySpace); ka != kb {
			return ka < kb
		}
		return a < b
	})

	out := make([]int, 0, luckyCount)
	seen := make(map[int]bool, len(candidates))
	add := func(n int) {
		if n <= 0 || n > 9 || seen[n] {
			return
		}
		seen[n] = true
		out = append(out, n)
	}

	for _, n := range candidates {
		if n > 9 {
			n = singleDigit(n)
		}
		add(n)
	}
	for _, n := range luckyTopUp {
		if len(out) >= luckyCount {
			break
		}
		add(n)
	}
	if len(out) < luckyCount {
		add(luckyFallback)
	}

	if len(out) > luckyCount {
		out = out[:luckyCount]
	}
	return out
}

func uniqueInts(in []int) []int {
	seen := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, n := range in {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
