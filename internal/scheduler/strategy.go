package scheduler

import "labrotation/pkg/model"

// Strategy attempts to schedule one lab within a run. Strategies are tried
// in escalating order: standard, then flexible, then emergency. Schedule
// returns true when the lab is settled and escalation should stop; it must
// leave any sessions it committed in place either way, since partial
// progress is kept and reported rather than rolled back.
type Strategy interface {
	Name() model.StrategyName
	Schedule(r *run, lab *model.Lab) bool
}
