package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlertRule_Match(t *testing.T) {
	table := []RuleThreshold{
		{Multiplier: 1.0, Severity: SeverityCrit},
		{Multiplier: 2.0, Severity: SeverityWarn},
	}

	tests := []struct {
		name         string
		thresholds   []RuleThreshold
		ratio        float64
		wantHit      bool
		wantSeverity Severity
		wantMult     float64
	}{
		{
			name:         "Ratio cruza os dois limiares e o mais apertado vence",
			thresholds:   table,
			ratio:        0.5,
			wantHit:      true,
			wantSeverity: SeverityCrit,
			wantMult:     1.0,
		},
		{
			name:         "Ratio cruza apenas o limiar mais frouxo",
			thresholds:   table,
			ratio:        1.5,
			wantHit:      true,
			wantSeverity: SeverityWarn,
			wantMult:     2.0,
		},
		{
			name:       "Ratio acima de todos os limiares não dispara",
			thresholds: table,
			ratio:      2.5,
			wantHit:    false,
		},
		{
			name:       "Ratio igual ao multiplicador não cruza o limiar",
			thresholds: table,
			ratio:      2.0,
			wantHit:    false,
		},
		{
			name: "Empate de multiplicador resolve para a severidade mais alta",
			thresholds: []RuleThreshold{
				{Multiplier: 1.0, Severity: SeverityWarn},
				{Multiplier: 1.0, Severity: SeverityCrit},
			},
			ratio:        0.5,
			wantHit:      true,
			wantSeverity: SeverityCrit,
			wantMult:     1.0,
		},
		{
			name: "A ordem de declaração da tabela não muda a seleção",
			thresholds: []RuleThreshold{
				{Multiplier: 2.0, Severity: SeverityWarn},
				{Multiplier: 1.0, Severity: SeverityCrit},
			},
			ratio:        0.5,
			wantHit:      true,
			wantSeverity: SeverityCrit,
			wantMult:     1.0,
		},
		{
			name:       "Tabela vazia nunca dispara",
			thresholds: nil,
			ratio:      0.0,
			wantHit:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := AlertRule{ID: "RULE_00", Thresholds: tt.thresholds}

			threshold, hit := rule.Match(tt.ratio)

			assert.Equal(t, tt.wantHit, hit)
			if tt.wantHit {
				assert.Equal(t, tt.wantSeverity, threshold.Severity)
				assert.Equal(t, tt.wantMult, threshold.Multiplier)
			}
		})
	}
}
