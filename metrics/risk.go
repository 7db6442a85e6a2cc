package metrics

// RiskLevel is a 3-tier rule-based classification. Levels only ever
// escalate when rules are combined; a later rule never downgrades.
type RiskLevel int

const (
	RiskNormal RiskLevel = iota
	RiskAtRisk
	RiskSick
)

func (r RiskLevel) String() string {
	switch r {
	case RiskSick:
		return "ป่วย" // sick
	case RiskAtRisk:
		return "เสี่ยง" // at risk
	default:
		return "ปกติ" // normal
	}
}

// Escalate merges two levels, keeping the worse one.
func (r RiskLevel) Escalate(other RiskLevel) RiskLevel {
	if other > r {
		return other
	}
	return r
}

// RiskInput carries the screening values. Zero means "not measured" and
// skips that rule.
type RiskInput struct {
	BMI            float64
	SystolicBP     float64
	DiastolicBP    float64
	FastingGlucose float64 // mg/dL
}

// ClassifyRisk applies the threshold rules and merges escalate-only.
func ClassifyRisk(in RiskInput) RiskLevel {
	level := RiskNormal
	if in.BMI > 0 {
		switch {
		case in.BMI >= 30:
			level = level.Escalate(RiskSick)
		case in.BMI >= 25 || in.BMI < 18.5:
			level = level.Escalate(RiskAtRisk)
		}
	}
	if in.SystolicBP > 0 || in.DiastolicBP > 0 {
		switch {
		case in.SystolicBP >= 140 || in.DiastolicBP >= 90:
			level = level.Escalate(RiskSick)
		case in.SystolicBP >= 120 || in.DiastolicBP >= 80:
			level = level.Escalate(RiskAtRisk)
		}
	}
	if in.FastingGlucose > 0 {
		switch {
		case in.FastingGlucose >= 126:
			level = level.Escalate(RiskSick)
		case in.FastingGlucose >= 100:
			level = level.Escalate(RiskAtRisk)
		}
	}
	return level
}
