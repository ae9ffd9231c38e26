package scheduler

import "labrotation/pkg/model"

// Durations already covered by the fixed slots. Anything else gets two
// synthesized exact-duration candidates per day.
var standardDurations = map[int]bool{120: true, 150: true, 180: true, 240: true}

// CandidateSlots produces the ordered candidate time windows for one rotation
// day. The fixed slots come first; the late-morning slot deliberately crosses
// the lunch window, a business requirement carried over from the paper
// rotation plans. Durations not matching any fixed slot get a morning
// candidate anchored at day opening and an afternoon candidate anchored after
// lunch, when they fit the respective boundary.
func CandidateSlots(cfg *Configuration, day int, durations []int) []model.TimeSlot {
	at := func(start, end int) model.TimeSlot {
		return model.TimeSlot{Day: day, Start: start, End: end}
	}
	slots := []model.TimeSlot{
		at(8*60+30, 11*60),			// early morning
		at(11*60+10, 13*60+40),			// late morning, crosses lunch
		at(14*60+10, 17*60+10),			// afternoon
		at(cfg.DayStart, cfg.LunchStart),	// full morning
		at(8*60+30, 10*60+30),			// short morning
		at(10*60+40, 12*60+40),			// mid morning
		at(cfg.LunchEnd, 15*60+30),		// short afternoon
		at(14*60+10, 16*60+40),			// late afternoon
	}
	for _, d := range durations {
		if standardDurations[d] {
			continue
		}
		if cfg.DayStart+d <= cfg.LunchStart {
			slots = append(slots, at(cfg.DayStart, cfg.DayStart+d))
		}
		if cfg.LunchEnd+d <= cfg.DayEnd {
			slots = append(slots, at(cfg.LunchEnd, cfg.LunchEnd+d))
		}
	}
	return slots
}
