package numerology

// fallbackKey is the table entry used for any number a table does not define.
const fallbackKey = 9

// IsMasterNumber reports whether n is one of the master numbers 11, 22 or 33.
func IsMasterNumber(n int) bool {
	return n == 11 || n == 22 || n == 33
}

// ReduceToSingleDigit sums the decimal digits of n until the value is at most 9.
// Reduction stops as soon as the running value is a master number, so 38 -> 11
// is returned as 11 rather than 2. ReduceToSingleDigit(0) is 0.
func ReduceToSingleDigit(n int) int {
	if n < 0 {
		n = -n
	}
	if IsMasterNumber(n) {
		return n
	}
	for n > 9 {
		n = digitSum(n)
		if IsMasterNumber(n) {
			return n
		}
	}
	return n
}

// singleDigit reduces n all the way to 0..9, collapsing master numbers too.
func singleDigit(n int) int {
	n = ReduceToSingleDigit(n)
	for n > 9 {
		n = digitSum(n)
	}
	return n
}

func digitSum(n int) int {
	if n < 0 {
		n = -n
	}
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// mod is a non-negative modulo that tolerates a zero divisor.
func mod(a, n int) int {
	if n <= 0 {
		return 0
	}
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
