package scheduler

import (
	"math"
	"sort"

	"labrotation/pkg/model"
)

// flexibleStrategy is the first escalation: it tolerates near-match slot
// durations, lowers the group-size floor a bit further on every attempt,
// prefers low-conflict slots and the trainees furthest behind, and as a last
// resort packs leftover trainees onto the lab's existing sessions.
type flexibleStrategy struct{}

func (flexibleStrategy) Name() model.StrategyName { return model.StrategyFlexible }

func (flexibleStrategy) Schedule(r *run, lab *model.Lab) bool {
	if r.fixedMode {
		return scheduleFixedFlexible(r, lab)
	}
	return scheduleDynamicFlexible(r, lab)
}

// scheduleFixedFlexible retries the groups the standard strategy could not
// place, accepting slots within the duration tolerance.
func scheduleFixedFlexible(r *run, lab *model.Lab) bool {
	allPlaced := true
	for _, group := range r.groupsFor(lab) {
		key := model.GroupCoverageKey(lab.ID, group.Name)
		if r.groupPlaced[key] {
			continue
		}
		if placeGroup(r, lab, group, model.StrategyFlexible, r.cfg.FlexDurationTolerance) {
			r.groupPlaced[key] = true
		} else {
			allPlaced = false
		}
	}
	return allPlaced
}

func scheduleDynamicFlexible(r *run, lab *model.Lab) bool {
	pool := r.poolFor(lab)
	if len(pool) == 0 {
		return true
	}

	adjustedMin := max(1, int(float64(lab.MinTrainees)*r.cfg.FlexMinFactor))
	minSessions := (len(pool) + lab.MaxTrainees - 1) / lab.MaxTrainees
	created := 0

	for attempt := 1; attempt <= r.cfg.FlexAttempts && len(pool) > 0; attempt++ {
		flexFactor := math.Min(0.9, 0.5+0.1*float64(attempt))
		curMin := max(1, int(float64(adjustedMin)*flexFactor))

		committed := false
		for _, day := range r.lateFirstDays() {
			for _, slot := range r.slotsByConflict(day, lab) {
				for _, room := range r.availableRooms(lab, slot) {
					avail := r.availableFrom(pool, slot)
					if len(avail) < curMin {
						continue
					}
					// Fairness: trainees with the fewest completed labs first.
					sort.SliceStable(avail, func(i, j int) bool {
						return r.assigned.Count(avail[i]) < r.assigned.Count(avail[j])
					})
					take := avail[:min(len(avail), lab.MaxTrainees)]
					r.commit(model.StrategyFlexible, lab, room, slot, take)
					pool = removeAll(pool, take)
					created++
					committed = true
					break
				}
				if committed || len(pool) == 0 {
					break
				}
			}
			if committed || len(pool) == 0 {
				break
			}
		}

		if !committed && len(pool) > 0 && created >= minSessions/2 {
			pool = overfillSessions(r, lab, pool)
			covered := r.cat.TotalTrainees - len(pool)
			if float64(covered) >= r.cfg.OverfillCoverage*float64(r.cat.TotalTrainees) {
				return true
			}
		}
	}

	return len(pool) == 0 || created > 0
}

// slotsByConflict returns the day's tolerable-duration slots ordered by how
// many committed sessions they overlap, fewest first.
func (r *run) slotsByConflict(day int, lab *model.Lab) []model.TimeSlot {
	type ranked struct {
		slot      model.TimeSlot
		conflicts int
	}
	var candidates []ranked
	for _, slot := range r.candidateSlots(day) {
		if abs(slot.Duration()-lab.Duration) > r.cfg.FlexDurationTolerance {
			continue
		}
		conflicts := 0
		for _, s := range r.sessions {
			if slot.Overlaps(s.Slot) {
				conflicts++
			}
		}
		candidates = append(candidates, ranked{slot, conflicts})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].conflicts < candidates[j].conflicts
	})
	out := make([]model.TimeSlot, len(candidates))
	for i, c := range candidates {
		out[i] = c.slot
	}
	return out
}

// overfillSessions appends still-uncovered trainees to the lab's committed
// sessions beyond the nominal maximum, smallest session first. A trainee is
// only added to a session whose slot they are free for, so the no-double-
// booking invariant holds. Returns the shrunk pool.
func overfillSessions(r *run, lab *model.Lab, pool []int) []int {
	var own []*model.ScheduledSession
	for _, s := range r.sessions {
		if s.Lab.ID == lab.ID {
			own = append(own, s)
		}
	}
	if len(own) == 0 {
		return pool
	}
	remaining := pool[:0]
	for _, id := range pool {
		sort.SliceStable(own, func(i, j int) bool {
			return len(own[i].Trainees) < len(own[j].Trainees)
		})
		placed := false
		for _, s := range own {
			if r.traineeFree(id, s.Slot) {
				s.Trainees = append(s.Trainees, id)
				r.assigned.Assign(id, lab.ID)
				r.log.Debugf("overfill: trainee %d added to %s session at %s", id, lab.Name, s.Slot)
				placed = true
				break
			}
		}
		if !placed {
			remaining = append(remaining, id)
		}
	}
	return remaining
}
