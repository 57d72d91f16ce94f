package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/elab/internal/adapters/detector"
)

func TestDetectEnvironment_CI(t *testing.T) {
	for _, v := range []string{"true", "1"} {
		t.Run("CI="+v, func(t *testing.T) {
			t.Setenv("CI", v)
			assert.True(t, detector.IsCI())
			assert.Equal(t, detector.ModeLinear, detector.DetectEnvironment())
		})
	}

	t.Run("CI=false", func(t *testing.T) {
		t.Setenv("CI", "false")
		assert.False(t, detector.IsCI())
	})
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name         string
		autoDetected detector.OutputMode
		userFlag     string
		expected     detector.OutputMode
	}{
		{name: "auto keeps tui", autoDetected: detector.ModeTUI, userFlag: "auto", expected: detector.ModeTUI},
		{name: "auto keeps linear", autoDetected: detector.ModeLinear, userFlag: "auto", expected: detector.ModeLinear},
		{name: "empty flag", autoDetected: detector.ModeTUI, userFlag: "", expected: detector.ModeTUI},
		{name: "tui override", autoDetected: detector.ModeLinear, userFlag: "tui", expected: detector.ModeTUI},
		{name: "linear override", autoDetected: detector.ModeTUI, userFlag: "linear", expected: detector.ModeLinear},
		{name: "ci alias", autoDetected: detector.ModeTUI, userFlag: "ci", expected: detector.ModeLinear},
		{name: "unknown flag", autoDetected: detector.ModeLinear, userFlag: "fancy", expected: detector.ModeLinear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.ResolveMode(tt.autoDetected, tt.userFlag))
		})
	}
}

func TestOutputMode_String(t *testing.T) {
	assert.Equal(t, "auto", detector.ModeAuto.String())
	assert.Equal(t, "tui", detector.ModeTUI.String())
	assert.Equal(t, "linear", detector.ModeLinear.String())
}
