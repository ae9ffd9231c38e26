package scheduler

import "labrotation/pkg/model"

// emergencyStrategy is the final escalation. It scans days in randomized
// order (reduced labs only look at the final days), accepts any slot within
// a wide duration tolerance and a strongly reduced trainee floor, commits a
// single session with whatever subset is available and stops. The resulting
// under-coverage is recorded in the completion report, never treated as a
// hard failure.
type emergencyStrategy struct{}

func (emergencyStrategy) Name() model.StrategyName { return model.StrategyEmergency }

func (emergencyStrategy) Schedule(r *run, lab *model.Lab) bool {
	pool := r.poolFor(lab)
	if len(pool) == 0 {
		return true
	}

	floor := max(2, lab.MinTrainees/3)
	if lab.Reduced() {
		floor = max(2, lab.MinTrainees/2)
	}

	for _, day := range r.emergencyDays(lab) {
		slots := r.candidateSlots(day)
		r.rng.Shuffle(len(slots), func(i, j int) { slots[i], slots[j] = slots[j], slots[i] })
		for _, slot := range slots {
			if abs(slot.Duration()-lab.Duration) > r.cfg.EmergencyDurationTolerance {
				continue
			}
			rooms := r.availableRooms(lab, slot)
			if len(rooms) == 0 {
				continue
			}
			avail := r.availableFrom(pool, slot)
			if len(avail) < floor {
				continue
			}
			take := avail[:min(len(avail), lab.MaxTrainees)]
			r.commit(model.StrategyEmergency, lab, rooms[0], slot, take)
			r.log.Warnf("lab %q: emergency session with %d/%d trainees", lab.Name, len(take), r.cat.TotalTrainees)
			return true
		}
	}
	return false
}

// emergencyDays returns the shuffled day scan order: all days, or only the
// final ones for reduced labs.
func (r *run) emergencyDays(lab *model.Lab) []int {
	first := 0
	if lab.Reduced() {
		first = max(0, r.cfg.RotationDays-r.cfg.EmergencyLateDays)
	}
	days := make([]int, 0, r.cfg.RotationDays-first)
	for d := first; d < r.cfg.RotationDays; d++ {
		days = append(days, d)
	}
	r.rng.Shuffle(len(days), func(i, j int) { days[i], days[j] = days[j], days[i] })
	return days
}
