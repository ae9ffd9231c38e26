package scheduler

// balance is a post-scheduling pass that evens out per-trainee completion:
// trainees at the minimum count are appended to existing sessions of labs
// they miss, when the session has spare capacity and no time conflict.
func (r *run) balance() {
	minCount, maxCount := r.completionBounds()
	if maxCount-minCount <= 1 {
		return
	}

	improvements := 0
	for id := 1; id <= r.cat.TotalTrainees; id++ {
		if r.assigned.Count(id) != minCount {
			continue
		}
		for _, lab := range r.cat.Labs {
			if r.assigned.Has(id, lab.ID) {
				continue
			}
			for _, s := range r.sessions {
				if s.Lab.ID != lab.ID || len(s.Trainees) >= lab.MaxTrainees {
					continue
				}
				if !r.traineeFree(id, s.Slot) {
					continue
				}
				s.Trainees = append(s.Trainees, id)
				r.assigned.Assign(id, lab.ID)
				r.log.Debugf("balance: trainee %d added to %s session at %s", id, lab.Name, s.Slot)
				improvements++
				break
			}
		}
	}
	if improvements > 0 {
		r.log.Infof("balance pass: %d assignments added", improvements)
	}
}

func (r *run) completionBounds() (minCount, maxCount int) {
	minCount = len(r.cat.Labs) + 1
	for id := 1; id <= r.cat.TotalTrainees; id++ {
		c := r.assigned.Count(id)
		if c < minCount {
			minCount = c
		}
		if c > maxCount {
			maxCount = c
		}
	}
	return minCount, maxCount
}
