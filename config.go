package arjun

// Config collects the run-time options a Project call accepts. Zero value
// is the documented default behavior.
type Config struct {
	// Seed is accepted but not read: the grouping order sorts by incidence
	// and breaks ties by ascending variable number, whatever Seed is.
	Seed int64

	// Verbosity controls how much progress logging cmd/arjun emits; it has
	// no effect on the result.
	Verbosity int

	// OneByOne forces Mode One for every round, disabling the periodic
	// Many pass entirely. Slower but easier to reason about when
	// diagnosing a suspicious result.
	OneByOne bool

	// Guess runs the Inverse startup round before the main loop.
	Guess bool

	// SimplifyAtStart runs the pre-pass simplifier once before the first
	// round.
	SimplifyAtStart bool

	// SimplifyEveryRound re-runs the pre-pass simplifier before every
	// round, independent of SimplifyAtStart.
	SimplifyEveryRound bool

	// RecomputeSamplingSet ignores any `c ind` header in the input and
	// uses every formula variable as the initial sampling set S instead.
	RecomputeSamplingSet bool
}
