package contracts

import "testing"

func TestClassifyOutcome(t *testing.T) {
	tests := []struct {
		name      string
		returnPct float64
		want      Outcome
	}{
		{"well above success threshold", 12.5, OutcomeSuccess},
		{"exactly at success threshold", 5.0, OutcomeSuccess},
		{"just below success threshold", 4.999, OutcomeNeutral},
		{"small positive return", 0.5, OutcomeNeutral},
		{"flat return", 0.0, OutcomeNeutral},
		{"just below zero", -0.001, OutcomeLoss},
		{"clear loss", -8.0, OutcomeLoss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyOutcome(tt.returnPct); got != tt.want {
				t.Errorf("ClassifyOutcome(%v) = %v, want %v", tt.returnPct, got, tt.want)
			}
		})
	}
}
