package numerology

import (
	"strconv"
	"strings"
)

type AdviceKind string

const (
	AdviceFriendly AdviceKind = "friendly"
	AdviceGrowth   AdviceKind = "growth"
)

// FriendlyGrowthAdvice turns a friendly or growth number set into a short
// paragraph for the compatibility section.
func FriendlyGrowthAdvice(kind AdviceKind, numbers []int) string {
	list := joinNumbers(numbers)
	switch kind {
	case AdviceGrowth:
		if list == "" {
			return "No number works against you directly. Treat every date as workable and stay attentive to your energy."
		}
		return "Numbers " + list + " ask more of you. Treat dates and partnerships that reduce to them as lessons in patience, review and steady effort rather than moments for bold moves."
	default:
		if list == "" {
			return "Your own number is your strongest ally. Lean on dates that reduce to it for important beginnings."
		}
		return "Numbers " + list + " resonate with your vibration. Schedule launches, signings and important conversations on dates that reduce to them, and notice how easily people carrying them support you."
	}
}

func joinNumbers(numbers []int) string {
	parts := make([]string, 0, len(numbers))
	for _, n := range numbers {
		parts = append(parts, strconv.Itoa(n))
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}
