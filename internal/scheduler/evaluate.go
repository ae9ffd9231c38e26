package scheduler

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"labrotation/pkg/model"
)

// evaluate aggregates per-trainee completion statistics and decides overall
// success for the mode's threshold. It always produces a report; a run below
// threshold is partial success, not an error.
func (r *run) evaluate(mode model.SchedulingMode) *model.CompletionReport {
	report := &model.CompletionReport{
		Mode:      mode,
		LabCount:  len(r.cat.Labs),
		Completed: make(map[int]int, r.cat.TotalTrainees),
		Outcomes:  make(map[model.LabID]model.LabOutcome, len(r.cat.Labs)),
	}

	counts := make([]float64, 0, r.cat.TotalTrainees)
	for id := 1; id <= r.cat.TotalTrainees; id++ {
		c := r.assigned.Count(id)
		report.Completed[id] = c
		counts = append(counts, float64(c))
	}
	report.Mean = stat.Mean(counts, nil)
	report.Min = int(floats.Min(counts))
	report.Max = int(floats.Max(counts))

	for _, lab := range r.cat.Labs {
		uncovered := len(r.poolFor(lab))
		sessions := 0
		for _, s := range r.sessions {
			if s.Lab.ID == lab.ID {
				sessions++
			}
		}
		strategy, ok := r.settledBy[lab.ID]
		if !ok {
			strategy = model.StrategyNone
		}
		report.Outcomes[lab.ID] = model.LabOutcome{
			Strategy:  strategy,
			Sessions:  sessions,
			Covered:   r.cat.TotalTrainees - uncovered,
			Uncovered: uncovered,
		}
	}

	switch mode {
	case model.ModeSmallRoster:
		report.Success = true
	case model.ModeFixedGroups:
		report.GroupCoverage = r.groupCoverage()
		placed := 0
		for _, ok := range report.GroupCoverage {
			if ok {
				placed++
			}
		}
		report.Success = float64(placed) >= r.cfg.FixedGroupThreshold*float64(len(report.GroupCoverage))
		r.log.Infof("fixed-group coverage: %d/%d (lab, group) pairs scheduled", placed, len(report.GroupCoverage))
	default:
		report.Success = report.CompletionRatio() >= r.cfg.SuccessThreshold
	}

	r.log.Infof("completion: mean %.1f/%d labs per trainee, min %d, max %d, success=%t",
		report.Mean, report.LabCount, report.Min, report.Max, report.Success)
	return report
}

// groupCoverage marks a (lab, group) pair covered when any committed session
// of the lab contains a member of the group.
func (r *run) groupCoverage() map[string]bool {
	coverage := make(map[string]bool)
	for _, lab := range r.cat.Labs {
		for _, group := range r.groupsFor(lab) {
			key := model.GroupCoverageKey(lab.ID, group.Name)
			coverage[key] = false
			for _, s := range r.sessions {
				if s.Lab.ID != lab.ID {
					continue
				}
				if anyOverlap(s.Trainees, group.Trainees) {
					coverage[key] = true
					break
				}
			}
		}
	}
	return coverage
}

func anyOverlap(a, b []int) bool {
	set := make(map[int]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		if set[v] {
			return true
		}
	}
	return false
}
