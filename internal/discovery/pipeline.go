package discovery

// Discover infers sensor pairs from one ordered column-sample set.
//
// The detector's verdict picks exactly one strategy: an instance column
// routes everything through instance matching (flat HVAC matching is
// skipped entirely), otherwise the flat HVAC matcher runs. An empty pair
// list is a valid outcome, never an error; callers surface it as a
// configure-manually state.
//
// Determinism is part of the contract: the same ordered input always
// yields the same pairs in the same order, because downstream UIs number
// pairs positionally.
func Discover(columns []ColumnSample) Result {
	s := detectScheme(columns)

	if s.isInstance() {
		return Result{
			Pairs:       MatchInstances(columns, s.instanceCol),
			InstanceCol: s.instanceCol,
		}
	}
	return Result{Pairs: MatchHvac(columns)}
}

func detectScheme(columns []ColumnSample) scheme {
	return scheme{instanceCol: DetectInstanceColumn(columns)}
}
