package diagnosis

import (
	"strings"
	"testing"
)

func TestFormatInjectsUnits(t *testing.T) {
	cases := []struct {
		template string
		point    string
		override string
		want     string
	}{
		{"Δ=31.5", "RM_TEMP", "", "Δ=31.5°F"},
		{"Setpoint=55 but Measured=71", "RM_CLG_SPT", "", "Setpoint=55°F but Measured=71°F"},
		{"no numbers here", "RM_TEMP", "", "no numbers here"},
		{"CMD=100 but POS=3", "OAD_CMD", "", "CMD=100% but POS=3%"},
		{"deviation of 4.2 detected", "SA_TEMP", "", "deviation of 4.2°F detected"},
		{"Deviation of 4.2 detected", "SA_TEMP", "", "Deviation of 4.2°F detected"},
		// explicit override wins over classification
		{"Δ=0.3", "RANDOM_XYZ", "in.w.c.", "Δ=0.3in.w.c."},
		// no resolvable unit: template unchanged
		{"Δ=0.3", "RANDOM_XYZ", "", "Δ=0.3"},
		// Setpoint/Measured only rewritten for °F and %
		{"Setpoint=450 but Measured=900", "CO2_PPM", "", "Setpoint=450 but Measured=900"},
		// multiple occurrences all rewritten
		{"Δ=1.5 then Δ=2.5", "RM_TEMP", "", "Δ=1.5°F then Δ=2.5°F"},
		{"", "RM_TEMP", "", ""},
	}
	for _, tc := range cases {
		if got := Format(tc.template, tc.point, tc.override); got != tc.want {
			t.Errorf("Format(%q, %q, %q) = %q, want %q",
				tc.template, tc.point, tc.override, got, tc.want)
		}
	}
}

func TestExtractDeviation(t *testing.T) {
	dev := ExtractDeviation("deviation of 0.004", "SAT_SPT", "")
	if dev == nil {
		t.Fatal("expected deviation, got nil")
	}
	if dev.Formatted != "0.0040°F" {
		t.Errorf("Formatted = %q, want 0.0040°F", dev.Formatted)
	}
	if dev.Delta != 0.004 {
		t.Errorf("Delta = %v, want 0.004", dev.Delta)
	}
	if dev.Text != "0.004" {
		t.Errorf("Text = %q, want 0.004", dev.Text)
	}

	// Δ= takes precedence over "deviation of"
	dev = ExtractDeviation("deviation of 9 with Δ=2.5", "OAD_CMD", "")
	if dev == nil || dev.Delta != 2.5 {
		t.Fatalf("Δ= should win: %+v", dev)
	}
	if dev.Formatted != "2.5%" {
		t.Errorf("Formatted = %q, want 2.5%%", dev.Formatted)
	}

	if dev := ExtractDeviation("actuator stuck", "OAD_CMD", ""); dev != nil {
		t.Errorf("expected nil for template without placeholders, got %+v", dev)
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"0.004", "0.0040"},
		{"0.5", "0.50"},
		{"31.52", "31.5"},
		{"155.7", "156"},
		{"0", "0.0000"},
		{"not-a-number", "—"},
		{"", "—"},
	}
	for _, tc := range cases {
		if got := FormatValue(tc.raw); got != tc.want {
			t.Errorf("FormatValue(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestRenderEvidence(t *testing.T) {
	valA, valB, delta := 55.0, 71.2, 16.2
	ev := FaultEvidence{
		Pair:          "SAT",
		PairType:      "meas_setp",
		ColA:          "SAT_SPT",
		ColB:          "SA_TEMP",
		ValA:          &valA,
		ValB:          &valB,
		Delta:         &delta,
		Eps:           2,
		Unit:          "°F",
		DurationTicks: 12,
		StartTick:     40,
		EndTick:       51,
		TnaTag:        "DISAGREE",
	}

	got := RenderEvidence(ev)
	for _, want := range []string{
		"[FAULT] SAT (DISAGREE)",
		"SETPOINT SAT_SPT = 55.0°F",
		"MEASURED SA_TEMP = 71.2°F",
		"Δ=16.2°F (eps 2.0°F)",
		"duration: 12 ticks (tick 40–51)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered evidence missing %q:\n%s", want, got)
		}
	}
}

func TestRenderEvidenceLabels(t *testing.T) {
	ev := FaultEvidence{Pair: "OAD", PairType: "cmd_pos", ColA: "OAD_CMD", ColB: "OAD_POS", TnaTag: "DISAGREE"}
	got := RenderEvidence(ev)
	if !strings.Contains(got, "COMMAND OAD_CMD") || !strings.Contains(got, "POSITION OAD_POS") {
		t.Errorf("cmd_pos labels wrong:\n%s", got)
	}
	// missing values render as the placeholder, never panic
	if !strings.Contains(got, "= —") {
		t.Errorf("nil values should render as —:\n%s", got)
	}

	ev.PairType = "custom"
	got = RenderEvidence(ev)
	if !strings.Contains(got, "SENSOR A") || !strings.Contains(got, "SENSOR B") {
		t.Errorf("custom labels wrong:\n%s", got)
	}
}
