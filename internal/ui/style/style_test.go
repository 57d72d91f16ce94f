package style_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/ui/style"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		kind      domain.OutcomeKind
		wantIcon  string
		wantColor lipgloss.Color
	}{
		{domain.OutcomeValid, style.Check, style.Green},
		{domain.OutcomeInvalid, style.Warning, style.Yellow},
		{domain.OutcomeIllformed, style.Cross, style.Red},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			icon, color := style.Outcome(tt.kind)
			assert.Equal(t, tt.wantIcon, icon)
			assert.Equal(t, tt.wantColor, color)
		})
	}
}
