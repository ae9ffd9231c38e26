package scheduler

import "labrotation/pkg/model"

// Rosters at or below this size can never fill a nominal group, so the
// standard strategy relaxes the minimum and the validator accepts the
// resulting undersized sessions.
const relaxedRosterMax = 10

// standardStrategy is the first attempt for every lab: exact slot durations,
// nominal group-size bounds, first valid combination wins.
type standardStrategy struct{}

func (standardStrategy) Name() model.StrategyName { return model.StrategyStandard }

func (standardStrategy) Schedule(r *run, lab *model.Lab) bool {
	if r.fixedMode {
		return scheduleFixedStandard(r, lab)
	}
	return scheduleDynamicStandard(r, lab)
}

// scheduleFixedStandard books one session per fixed group, scanning days in
// rotation order. Succeeds only when every group of the lab's class is
// placed.
func scheduleFixedStandard(r *run, lab *model.Lab) bool {
	allPlaced := true
	for _, group := range r.groupsFor(lab) {
		key := model.GroupCoverageKey(lab.ID, group.Name)
		if r.groupPlaced[key] {
			continue
		}
		if placeGroup(r, lab, group, model.StrategyStandard, 0) {
			r.groupPlaced[key] = true
		} else {
			r.log.Warnf("lab %q: no valid combination for group %s", lab.Name, group.Name)
			allPlaced = false
		}
	}
	return allPlaced
}

// placeGroup finds the first (day, slot, room) combination where the whole
// group is free. A zero tolerance requires an exact duration match.
func placeGroup(r *run, lab *model.Lab, group model.Group, strategy model.StrategyName, tolerance int) bool {
	for day := 0; day < r.cfg.RotationDays; day++ {
		for _, slot := range r.candidateSlots(day) {
			if abs(slot.Duration()-lab.Duration) > tolerance {
				continue
			}
			rooms := r.availableRooms(lab, slot)
			if len(rooms) == 0 {
				continue
			}
			free := true
			for _, id := range group.Trainees {
				if r.assigned.Has(id, lab.ID) || !r.traineeFree(id, slot) {
					free = false
					break
				}
			}
			if !free {
				continue
			}
			r.commit(strategy, lab, rooms[0], slot, group.Trainees)
			return true
		}
	}
	return false
}

// scheduleDynamicStandard drains the lab's pool of uncovered trainees across
// as many sessions as needed. Days and slots are visited in shuffled order
// so repeated runs spread load differently; reduced labs try the late half
// of the rotation first.
func scheduleDynamicStandard(r *run, lab *model.Lab) bool {
	pool := r.poolFor(lab)
	if len(pool) == 0 {
		return true
	}

	minNeeded := lab.MinTrainees
	if r.cat.TotalTrainees <= relaxedRosterMax {
		if relaxed := max(1, r.cat.TotalTrainees/2); relaxed < minNeeded {
			minNeeded = relaxed
		}
	}
	target := (len(pool) + lab.MaxTrainees - 1) / lab.MaxTrainees
	created := 0

	for _, day := range r.shuffledDays(lab) {
		if len(pool) == 0 || created >= target {
			break
		}
		slots := r.candidateSlots(day)
		r.rng.Shuffle(len(slots), func(i, j int) { slots[i], slots[j] = slots[j], slots[i] })
		for _, slot := range slots {
			if len(pool) == 0 || created >= target {
				break
			}
			if slot.Duration() != lab.Duration {
				continue
			}
			rooms := r.availableRooms(lab, slot)
			if len(rooms) == 0 {
				continue
			}
			avail := r.availableFrom(pool, slot)
			if len(avail) < minNeeded {
				continue
			}
			take := avail[:min(len(avail), lab.MaxTrainees)]
			r.commit(model.StrategyStandard, lab, rooms[0], slot, take)
			pool = removeAll(pool, take)
			created++
		}
	}

	covered := r.cat.TotalTrainees - len(pool)
	coverage := float64(covered) / float64(r.cat.TotalTrainees)
	r.log.Infof("lab %q: standard strategy covered %d/%d trainees (%.0f%%)",
		lab.Name, covered, r.cat.TotalTrainees, coverage*100)
	return coverage >= r.cfg.StandardLabCoverage
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
