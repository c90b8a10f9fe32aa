package numerology

// Pythagorean grid: a..i = 1..9, j..r = 1..9, s..z = 1..8.
var letterValues = [26]int{
	1, 2, 3, 4, 5, 6, 7, 8, 9, // a-i
	1, 2, 3, 4, 5, 6, 7, 8, 9, // j-r
	1, 2, 3, 4, 5, 6, 7, 8, // s-z
}

func letterValue(r rune) (int, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if r < 'a' || r > 'z' {
		return 0, false
	}
	return letterValues[r-'a'], true
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	default:
		return false
	}
}

// LetterSums holds the unreduced letter totals of a name. Vowels and
// Consonants partition Total exactly.
type LetterSums struct {
	Total      int
	Vowels     int
	Consonants int
}

// NameSums maps every Latin letter of name through the Pythagorean grid.
// Anything that is not a-z (in either case) is ignored.
func NameSums(name string) LetterSums {
	var s LetterSums
	for _, r := range name {
		v, ok := letterValue(r)
		if !ok {
			continue
		}
		s.Total += v
		if isVowel(r) {
			s.Vowels += v
		} else {
			s.Consonants += v
		}
	}
	return s
}

// HasLetters reports whether name contains at least one letter the grid maps.
func HasLetters(name string) bool {
	for _, r := range name {
		if _, ok := letterValue(r); ok {
			return true
		}
	}
	return false
}
