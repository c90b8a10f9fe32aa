package numerology

import "time"

// Numbers are the five core numbers of a reading.
type Numbers struct {
	LifePath    int `json:"life_path"`
	Driver      int `json:"driver"`
	Expression  int `json:"expression"`
	SoulUrge    int `json:"soul_urge"`
	Personality int `json:"personality"`
}

// CalculateLifePathNumber adds the digit sums of day, month and year and
// reduces the total once, so a raw total of 22 stays 22.
func CalculateLifePathNumber(dob time.Time) int {
	sum := digitSum(dob.Day()) + digitSum(int(dob.Month())) + digitSum(dob.Year())
	return ReduceToSingleDigit(sum)
}

// CalculateDriverNumber reduces the day of the month.
func CalculateDriverNumber(dob time.Time) int {
	return ReduceToSingleDigit(dob.Day())
}

func CalculateExpressionNumber(name string) int {
	return ReduceToSingleDigit(NameSums(name).Total)
}

// CalculateSoulUrgeNumber uses vowels only. A name without vowels yields 0.
func CalculateSoulUrgeNumber(name string) int {
	return ReduceToSingleDigit(NameSums(name).Vowels)
}

func CalculatePersonalityNumber(name string) int {
	return ReduceToSingleDigit(NameSums(name).Consonants)
}

// Calculate derives all five core numbers.
func Calculate(name string, dob time.Time) Numbers {
	sums := NameSums(name)
	return Numbers{
		LifePath:    CalculateLifePathNumber(dob),
		Driver:      CalculateDriverNumber(dob),
		Expression:  ReduceToSingleDigit(sums.Total),
		SoulUrge:    ReduceToSingleDigit(sums.Vowels),
		Personality: ReduceToSingleDigit(sums.Consonants),
	}
}

// Seed drives every seeded selection of the full reading.
func Seed(lifePath, driver, expression int) int {
	return lifePath + driver + expression
}

// FreeReportSeed drives the quick insight sentence of the free report. It is
// derived independently of Seed.
func FreeReportSeed(dob time.Time, lifePath int) int {
	return dob.Day()*int(dob.Month())*dob.Year() + lifePath
}
