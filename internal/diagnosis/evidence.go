package diagnosis

import (
	"fmt"
	"strings"
	"time"
)

// FaultEvidence is one fault record produced by the fault-analysis
// engine. It is read-only input to rendering; this package never creates
// or mutates evidence.
type FaultEvidence struct {
	Pair          string   `json:"pair"`
	PairType      string   `json:"pair_type"`
	ColA          string   `json:"col_a"`
	ColB          string   `json:"col_b"`
	ValA          *float64 `json:"val_a"`
	ValB          *float64 `json:"val_b"`
	Delta         *float64 `json:"delta"`
	Eps           float64  `json:"eps"`
	Unit          string   `json:"unit"`
	DurationTicks int      `json:"duration_ticks"`
	StartTick     int      `json:"start_tick"`
	EndTick       int      `json:"end_tick"`
	StartTime     *float64 `json:"start_time,omitempty"`
	EndTime       *float64 `json:"end_time,omitempty"`
	TnaTag        string   `json:"tna_tag"`
}

// sideLabels returns the semantic labels for the two sides of a pair.
// The pair type changes how the evidence reads, not how it was compared.
func sideLabels(pairType string) (string, string) {
	switch pairType {
	case "cmd_pos":
		return "COMMAND", "POSITION"
	case "meas_setp":
		return "SETPOINT", "MEASURED"
	default:
		return "SENSOR A", "SENSOR B"
	}
}

// RenderEvidence produces the human-readable block for one fault.
func RenderEvidence(ev FaultEvidence) string {
	unit := ev.Unit
	if unit == "" {
		unit = resolveUnit(ev.ColA, "")
	}

	labelA, labelB := sideLabels(ev.PairType)

	b := strings.Builder{}
	fmt.Fprintf(&b, "[FAULT] %s (%s)\n", ev.Pair, ev.TnaTag)
	fmt.Fprintf(&b, "%s %s = %s\n", labelA, ev.ColA, renderValue(ev.ValA, unit))
	fmt.Fprintf(&b, "%s %s = %s\n", labelB, ev.ColB, renderValue(ev.ValB, unit))
	fmt.Fprintf(&b, "Δ=%s (eps %s)\n", renderValue(ev.Delta, unit), FormatFloat(ev.Eps)+unit)
	fmt.Fprintf(&b, "duration: %d ticks (tick %d–%d)", ev.DurationTicks, ev.StartTick, ev.EndTick)
	if window := renderWindow(ev.StartTime, ev.EndTime); window != "" {
		b.WriteString("\n" + window)
	}
	return b.String()
}

func renderValue(v *float64, unit string) string {
	if v == nil {
		return "—"
	}
	return FormatFloat(*v) + unit
}

func renderWindow(start, end *float64) string {
	if start == nil || end == nil {
		return ""
	}
	from := time.Unix(int64(*start), 0).UTC().Format(time.RFC3339)
	to := time.Unix(int64(*end), 0).UTC().Format(time.RFC3339)
	return fmt.Sprintf("window: %s → %s", from, to)
}
