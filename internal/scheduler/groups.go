package scheduler

import (
	"fmt"

	"labrotation/pkg/model"
)

// Mode picks the partitioning strategy for a roster size.
func (c *Configuration) Mode(totalTrainees int) model.SchedulingMode {
	switch {
	case totalTrainees <= c.SmallRosterMax:
		return model.ModeSmallRoster
	case totalTrainees >= c.FixedGroupMin && totalTrainees <= c.FixedGroupMax:
		return model.ModeFixedGroups
	default:
		return model.ModeDynamicPool
	}
}

// FixedGroups partitions the roster once per capacity class: lettered groups
// for standard labs and numbered groups for reduced labs. Ids are contiguous
// and the remainder goes to the first groups.
func FixedGroups(cfg *Configuration, totalTrainees int) map[model.CapacityClass][]model.Group {
	standard := contiguousGroups(totalTrainees, cfg.NumStandardGroups, func(i int) string {
		return string(rune('A' + i))
	})
	reduced := contiguousGroups(totalTrainees, cfg.NumReducedGroups, func(i int) string {
		return fmt.Sprintf("%d", i+1)
	})
	return map[model.CapacityClass][]model.Group{
		model.ClassStandard: standard,
		model.ClassReduced:  reduced,
	}
}

func contiguousGroups(total, n int, name func(i int) string) []model.Group {
	size := total / n
	rem := total % n
	groups := make([]model.Group, 0, n)
	next := 1
	for i := 0; i < n; i++ {
		sz := size
		if i < rem {
			sz++
		}
		end := next + sz
		if end > total+1 {
			end = total + 1
		}
		ids := make([]int, 0, end-next)
		for id := next; id < end; id++ {
			ids = append(ids, id)
		}
		groups = append(groups, model.Group{Name: name(i), Trainees: ids})
		next = end
	}
	return groups
}
