package scheduler

import (
	"fmt"

	"labrotation/pkg/model"
)

// Catalog holds the immutable inputs of one scheduling run.
type Catalog struct {
	Labs          []*model.Lab
	Rooms         []*model.Room
	TotalTrainees int
}

// Validate rejects malformed catalogs before the assignment engine runs. The
// engine assumes non-empty, internally consistent inputs.
func (c *Catalog) Validate() error {
	if c.TotalTrainees < 1 {
		return fmt.Errorf("total trainees must be at least 1, got %d", c.TotalTrainees)
	}
	if len(c.Labs) == 0 {
		return fmt.Errorf("catalog has no labs")
	}
	if len(c.Rooms) == 0 {
		return fmt.Errorf("catalog has no rooms")
	}
	roomNames := make(map[string]bool, len(c.Rooms))
	for _, r := range c.Rooms {
		if r.Name == "" {
			return fmt.Errorf("room with empty name")
		}
		if roomNames[r.Name] {
			return fmt.Errorf("duplicate room %q", r.Name)
		}
		roomNames[r.Name] = true
	}
	seen := make(map[model.LabID]bool, len(c.Labs))
	for _, l := range c.Labs {
		if seen[l.ID] {
			return fmt.Errorf("duplicate lab id %d", l.ID)
		}
		seen[l.ID] = true
		if l.Duration <= 0 {
			return fmt.Errorf("lab %q has non-positive duration %d", l.Name, l.Duration)
		}
		if l.MinTrainees < 1 || l.MinTrainees > l.MaxTrainees {
			return fmt.Errorf("lab %q has invalid group-size band [%d, %d]", l.Name, l.MinTrainees, l.MaxTrainees)
		}
		if len(l.EligibleRooms) == 0 {
			return fmt.Errorf("lab %q has no eligible rooms", l.Name)
		}
		for _, rn := range l.EligibleRooms {
			if !roomNames[rn] {
				return fmt.Errorf("lab %q references unknown room %q", l.Name, rn)
			}
		}
	}
	return nil
}

// Durations returns the distinct lab durations in the catalog.
func (c *Catalog) Durations() []int {
	seen := make(map[int]bool)
	var out []int
	for _, l := range c.Labs {
		if !seen[l.Duration] {
			seen[l.Duration] = true
			out = append(out, l.Duration)
		}
	}
	return out
}
