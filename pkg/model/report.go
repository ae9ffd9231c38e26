package model

// SchedulingMode identifies which partitioning strategy a run used.
type SchedulingMode string

const (
	ModeSmallRoster SchedulingMode = "small-roster"
	ModeFixedGroups SchedulingMode = "fixed-groups"
	ModeDynamicPool SchedulingMode = "dynamic-pool"
)

// StrategyName identifies the assignment strategy that settled a lab.
type StrategyName string

const (
	StrategyStandard  StrategyName = "standard"
	StrategyFlexible  StrategyName = "flexible"
	StrategyEmergency StrategyName = "emergency"
	StrategyNone      StrategyName = "unscheduled"
)

// LabOutcome records how a single lab fared during the run.
type LabOutcome struct {
	Strategy  StrategyName
	Sessions  int
	Covered   int
	Uncovered int
}

// CompletionReport aggregates per-trainee and per-group completion after a
// run. The engine always returns it, even for heavily partial schedules.
type CompletionReport struct {
	Mode     SchedulingMode
	LabCount int

	// Completed[id] is the number of labs covered by trainee id.
	Completed map[int]int
	Mean      float64
	Min       int
	Max       int

	// GroupCoverage is populated in fixed-group mode only, keyed by
	// GroupCoverageKey(lab, group).
	GroupCoverage map[string]bool

	Outcomes map[LabID]LabOutcome

	// Success is true when the mean completion ratio met the mode's
	// threshold. A false value is partial success, not failure.
	Success bool
}

// CompletionRatio returns the mean number of completed labs as a fraction of
// the catalog size.
func (r *CompletionReport) CompletionRatio() float64 {
	if r.LabCount == 0 {
		return 0
	}
	return r.Mean / float64(r.LabCount)
}
