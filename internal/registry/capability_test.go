package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/temirov/model-gateway/internal/registry"
)

// TestFixedTemperature_ClampForcesValue verifies that a fixed constraint maps every input onto the fixed value.
func TestFixedTemperature_ClampForcesValue(testingInstance *testing.T) {
	constraint := registry.FixedTemperature{Value: 1.0}

	assert.Equal(testingInstance, 1.0, constraint.Clamp(0.0))
	assert.Equal(testingInstance, 1.0, constraint.Clamp(0.3))
	assert.Equal(testingInstance, 1.0, constraint.Clamp(2.0))
	assert.True(testingInstance, constraint.Valid(1.0))
	assert.False(testingInstance, constraint.Valid(0.3))
}

type rangeClampScenario struct {
	scenarioName         string
	requestedTemperature float64
	expectedTemperature  float64
	expectedValid        bool
}

// TestTemperatureRange_ClampPinsToBoundaries verifies range clamping and validity at and beyond the interval edges.
func TestTemperatureRange_ClampPinsToBoundaries(testingInstance *testing.T) {
	constraint := registry.TemperatureRange{Minimum: 0.0, Maximum: 2.0}

	testScenarios := []rangeClampScenario{
		{scenarioName: "below minimum", requestedTemperature: -0.5, expectedTemperature: 0.0, expectedValid: false},
		{scenarioName: "at minimum", requestedTemperature: 0.0, expectedTemperature: 0.0, expectedValid: true},
		{scenarioName: "inside range", requestedTemperature: 0.7, expectedTemperature: 0.7, expectedValid: true},
		{scenarioName: "at maximum", requestedTemperature: 2.0, expectedTemperature: 2.0, expectedValid: true},
		{scenarioName: "above maximum", requestedTemperature: 3.1, expectedTemperature: 2.0, expectedValid: false},
	}
	for _, currentScenario := range testScenarios {
		testingInstance.Run(currentScenario.scenarioName, func(subTest *testing.T) {
			assert.Equal(subTest, currentScenario.expectedTemperature, constraint.Clamp(currentScenario.requestedTemperature))
			assert.Equal(subTest, currentScenario.expectedValid, constraint.Valid(currentScenario.requestedTemperature))
		})
	}
}
