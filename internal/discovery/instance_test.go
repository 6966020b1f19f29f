package discovery

import "testing"

func imuColumns() []ColumnSample {
	return []ColumnSample{
		{Name: "TimeUS", Sample: "123456"},
		{Name: "IMU_I", Sample: "0"},
		{Name: "IMU_AccX", Sample: "0.03"},
		{Name: "IMU_AccY", Sample: "-0.01"},
		{Name: "IMU_GyrZ", Sample: "0.002"},
		{Name: "IMU_Health", Sample: "1"},
		{Name: "BARO_I", Sample: "0"},
		{Name: "BARO_Press", Sample: "1013.2"},
	}
}

func TestDetectInstanceColumn(t *testing.T) {
	if got := DetectInstanceColumn(imuColumns()); got != "IMU_I" {
		t.Fatalf("DetectInstanceColumn = %q, want IMU_I", got)
	}
}

func TestDetectInstanceColumnRequiresSiblings(t *testing.T) {
	// E_ZONE_I has the suffix shape and a small-integer sample, but no
	// E_ZONE_* measurement columns exist, so it must not be selected.
	cols := []ColumnSample{
		{Name: "E_ZONE_I", Sample: "2"},
		{Name: "LITES_ON", Sample: "1"},
		{Name: "RM_TEMP", Sample: "71.5"},
	}
	if got := DetectInstanceColumn(cols); got != "" {
		t.Fatalf("DetectInstanceColumn = %q, want none", got)
	}
}

func TestDetectInstanceColumnSampleShape(t *testing.T) {
	cases := []struct {
		sample string
		want   string
	}{
		{"0", "IMU_I"},
		{"9", "IMU_I"},
		{"10", ""},      // out of range
		{"-1", ""},      // out of range
		{"0.0", ""},     // not an integer
		{"primary", ""}, // not numeric
		{"", ""},
	}
	for _, tc := range cases {
		cols := []ColumnSample{
			{Name: "IMU_I", Sample: tc.sample},
			{Name: "IMU_AccX", Sample: "0.1"},
		}
		if got := DetectInstanceColumn(cols); got != tc.want {
			t.Errorf("sample %q: DetectInstanceColumn = %q, want %q", tc.sample, got, tc.want)
		}
	}
}

func TestDetectInstanceColumnNameShape(t *testing.T) {
	cases := []struct {
		name string
		ok   bool
	}{
		{"IMU_I", true},
		{"BARO_Instance", true},
		{"GPS_INSTANCE", true},
		{"IMU_i", false},      // bare suffix is case-sensitive
		{"I_I", false},        // stem too short
		{"SENSOR_A_I", false}, // last segment too short
		{"IMUI", false},       // no separator
	}
	for _, tc := range cases {
		cols := []ColumnSample{
			{Name: tc.name, Sample: "0"},
			{Name: prefixOf(tc.name) + "_AccX", Sample: "0.1"},
		}
		got := DetectInstanceColumn(cols)
		if tc.ok && got != tc.name {
			t.Errorf("%q should qualify, got %q", tc.name, got)
		}
		if !tc.ok && got != "" {
			t.Errorf("%q should not qualify, got %q", tc.name, got)
		}
	}
}

// prefixOf builds a plausible sibling prefix for name-shape tests.
func prefixOf(name string) string {
	if p := instancePrefix(name); p != "" {
		return p
	}
	return name
}

func TestMatchInstances(t *testing.T) {
	pairs := MatchInstances(imuColumns(), "IMU_I")

	want := []SensorPairConfig{
		{Name: "IMU_AccX", Group: "custom", ColA: "IMU_AccX_I0", ColB: "IMU_AccX_I1", PairType: PairCustom, Eps: 0.5, Unit: "m/s²"},
		{Name: "IMU_AccY", Group: "custom", ColA: "IMU_AccY_I0", ColB: "IMU_AccY_I1", PairType: PairCustom, Eps: 0.5, Unit: "m/s²"},
		{Name: "IMU_GyrZ", Group: "custom", ColA: "IMU_GyrZ_I0", ColB: "IMU_GyrZ_I1", PairType: PairCustom, Eps: 0.1, Unit: "rad/s"},
	}

	if len(pairs) != len(want) {
		t.Fatalf("got %d pairs, want %d: %+v", len(pairs), len(want), pairs)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("pair %d = %+v, want %+v", i, pairs[i], want[i])
		}
	}
}

func TestMatchInstancesSkipsMetadataAndUnknown(t *testing.T) {
	cols := []ColumnSample{
		{Name: "IMU_I", Sample: "0"},
		{Name: "IMU_Err", Sample: "0"},        // health metadata
		{Name: "IMU_SampleRate", Sample: "1"}, // rate metadata
		{Name: "IMU_Mystery", Sample: "42"},   // unknown measurement
		{Name: "IMU_Temp", Sample: "31.2"},
	}
	pairs := MatchInstances(cols, "IMU_I")
	if len(pairs) != 1 || pairs[0].Name != "IMU_Temp" {
		t.Fatalf("only IMU_Temp should pair, got %+v", pairs)
	}
}

func TestVerifyInstances(t *testing.T) {
	result := Discover(imuColumns())
	if result.InstanceCol != "IMU_I" {
		t.Fatalf("InstanceCol = %q, want IMU_I", result.InstanceCol)
	}

	// both instances observed: nothing flagged
	verified := VerifyInstances(result, []string{"0", "1"})
	if len(verified.SingleInstanceSensors) != 0 {
		t.Errorf("no sensors should be flagged, got %v", verified.SingleInstanceSensors)
	}

	// only instance 0 present in the data: every pair is flagged
	verified = VerifyInstances(result, []string{"0"})
	if len(verified.SingleInstanceSensors) != len(result.Pairs) {
		t.Errorf("flagged %v, want all %d pairs", verified.SingleInstanceSensors, len(result.Pairs))
	}

	// flat-mode results pass through untouched
	flat := Result{Pairs: []SensorPairConfig{{Name: "SAT"}}}
	if got := VerifyInstances(flat, []string{"0"}); len(got.SingleInstanceSensors) != 0 {
		t.Errorf("flat result should not be flagged: %+v", got)
	}
}
