package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		name string
		in   RiskInput
		want RiskLevel
	}{
		{"nothing measured", RiskInput{}, RiskNormal},
		{"all normal", RiskInput{BMI: 22, SystolicBP: 110, DiastolicBP: 70, FastingGlucose: 90}, RiskNormal},
		{"underweight", RiskInput{BMI: 17}, RiskAtRisk},
		{"obese", RiskInput{BMI: 30}, RiskSick},
		{"elevated bp", RiskInput{SystolicBP: 125, DiastolicBP: 75}, RiskAtRisk},
		{"high diastolic alone", RiskInput{SystolicBP: 118, DiastolicBP: 92}, RiskSick},
		{"prediabetic glucose", RiskInput{FastingGlucose: 105}, RiskAtRisk},
		{"diabetic glucose", RiskInput{FastingGlucose: 126}, RiskSick},
		{"worst rule wins", RiskInput{BMI: 22, SystolicBP: 150, FastingGlucose: 90}, RiskSick},
		{"two at-risk rules stay at-risk", RiskInput{BMI: 26, FastingGlucose: 110}, RiskAtRisk},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRisk(tt.in))
		})
	}
}

func TestRiskEscalateNeverDowngrades(t *testing.T) {
	assert.Equal(t, RiskSick, RiskSick.Escalate(RiskNormal))
	assert.Equal(t, RiskSick, RiskNormal.Escalate(RiskSick))
	assert.Equal(t, RiskAtRisk, RiskAtRisk.Escalate(RiskNormal))
}

func TestRiskLevelString(t *testing.T) {
	assert.Equal(t, "ปกติ", RiskNormal.String())
	assert.Equal(t, "เสี่ยง", RiskAtRisk.String())
	assert.Equal(t, "ป่วย", RiskSick.String())
}
