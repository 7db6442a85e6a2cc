package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMI(t *testing.T) {
	bmi, err := BMI(70, 175)
	require.NoError(t, err)
	assert.InDelta(t, 22.86, bmi, 0.01)

	_, err = BMI(0, 175)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = BMI(70, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBMICategory(t *testing.T) {
	tests := []struct {
		name string
		bmi  float64
		want string
	}{
		{"underweight", 17.0, "ผอม"},
		{"lower normal boundary", 18.5, "สมส่วน"},
		{"normal", 21.0, "สมส่วน"},
		{"overweight boundary", 23.0, "ท้วม"},
		{"obese boundary", 25.0, "อ้วน"},
		{"severely obese", 31.5, "อ้วนมาก"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BMICategory(tt.bmi))
		})
	}
}

func TestBMR(t *testing.T) {
	male, err := BMR("male", 70, 175, 30)
	require.NoError(t, err)
	assert.InDelta(t, 1648.75, male, 0.001)

	female, err := BMR("female", 70, 175, 30)
	require.NoError(t, err)
	assert.InDelta(t, 1482.75, female, 0.001)

	// unknown gender falls back to the female formula
	other, err := BMR("", 70, 175, 30)
	require.NoError(t, err)
	assert.Equal(t, female, other)

	_, err = BMR("male", 70, 175, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTDEE(t *testing.T) {
	tdee, err := TDEE(1648.75, ActivitySedentary)
	require.NoError(t, err)
	assert.InDelta(t, 1978.5, tdee, 0.001)

	_, err = TDEE(1648.75, 1.0)
	assert.Error(t, err)

	_, err = TDEE(1648.75, 2.5)
	assert.Error(t, err)

	_, err = TDEE(0, ActivityModerate)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalorieBalance(t *testing.T) {
	assert.InDelta(t, -478.5, CalorieBalance(1800, 300, 1978.5), 0.001)
	assert.InDelta(t, 121.5, CalorieBalance(2400, 300, 1978.5), 0.001)
}

func TestWHR(t *testing.T) {
	whr, err := WHR(80, 100)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, whr, 0.001)

	_, err = WHR(0, 100)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.True(t, WHRAtRisk("male", 0.91))
	assert.False(t, WHRAtRisk("male", 0.89))
	assert.True(t, WHRAtRisk("female", 0.85))
	assert.False(t, WHRAtRisk("female", 0.84))
}
