package metrics

import "errors"

// Activity multipliers follow the common 1.2 - 1.9 scale.
const (
	ActivitySedentary  = 1.2
	ActivityLight      = 1.375
	ActivityModerate   = 1.55
	ActivityActive     = 1.725
	ActivityVeryActive = 1.9
)

var ErrInvalidInput = errors.New("inputs must be greater than zero")

// BMI computes weight(kg) / height(m)^2.
func BMI(weightKg, heightCm float64) (float64, error) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, ErrInvalidInput
	}
	heightM := heightCm / 100
	return weightKg / (heightM * heightM), nil
}

// BMICategory maps a BMI value onto the Asian cutoff labels used by the app.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "ผอม" // underweight
	case bmi < 23:
		return "สมส่วน" // normal
	case bmi < 25:
		return "ท้วม" // overweight
	case bmi < 30:
		return "อ้วน" // obese class 1
	default:
		return "อ้วนมาก" // obese class 2
	}
}

// BMR estimates basal metabolic rate with the Mifflin-St Jeor formula.
// gender is "male" or "female"; anything else is treated as female.
func BMR(gender string, weightKg, heightCm float64, ageYears int) (float64, error) {
	if weightKg <= 0 || heightCm <= 0 || ageYears <= 0 {
		return 0, ErrInvalidInput
	}
	base := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if gender == "male" {
		return base + 5, nil
	}
	return base - 161, nil
}

// TDEE scales a BMR by an activity multiplier on the 1.2 - 1.9 scale.
func TDEE(bmr, activityMultiplier float64) (float64, error) {
	if bmr <= 0 {
		return 0, ErrInvalidInput
	}
	if activityMultiplier < 1.2 || activityMultiplier > 1.9 {
		return 0, errors.New("activity multiplier must be between 1.2 and 1.9")
	}
	return bmr * activityMultiplier, nil
}

// CalorieBalance returns intake minus burned minus maintenance; negative
// values mean a deficit against TDEE.
func CalorieBalance(intakeKcal, burnedKcal, tdee float64) float64 {
	return intakeKcal - burnedKcal - tdee
}

// WHR computes the waist/hip ratio.
func WHR(waistCm, hipCm float64) (float64, error) {
	if waistCm <= 0 || hipCm <= 0 {
		return 0, ErrInvalidInput
	}
	return waistCm / hipCm, nil
}

// WHRAtRisk reports whether a waist/hip ratio exceeds the gender-specific
// cutoff (0.90 male, 0.85 female).
func WHRAtRisk(gender string, whr float64) bool {
	if gender == "male" {
		return whr >= 0.90
	}
	return whr >= 0.85
}
