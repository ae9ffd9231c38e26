package scheduler

import (
	"fmt"

	"labrotation/pkg/model"
)

// Validate checks a committed session list for double-bookings and group-size
// violations. Returns false and a message for invalid schedules. Rosters at
// or below the relaxed-minimum threshold run undersized standard sessions
// legitimately, so only the maximum bound binds for them.
func Validate(sessions []*model.ScheduledSession, totalTrainees int) (bool, string) {
	var message string
	var valid bool = true
	var hasRoomCollision bool = false
	var hasTraineeCollision bool = false
	var hasSizeViolation bool = false

	for i, s1 := range sessions {
		for _, s2 := range sessions[i+1:] {
			if !s1.Slot.Overlaps(s2.Slot) {
				continue
			}
			if s1.Room.Name == s2.Room.Name {
				valid = false
				hasRoomCollision = true
				message += fmt.Sprintf("- Room %s booked twice at %s\n", s1.Room.Name, s1.Slot)
			}
			for _, t := range s1.Trainees {
				if containsINT(s2.Trainees, t) {
					valid = false
					hasTraineeCollision = true
					message += fmt.Sprintf("- Trainee %d double-booked at %s (%s / %s)\n",
						t, s1.Slot, s1.Lab.Name, s2.Lab.Name)
				}
			}
		}
	}

	// Size bounds only bind sessions the standard strategy committed; the
	// escalations relax them on purpose.
	for _, s := range sessions {
		if s.Strategy != model.StrategyStandard {
			continue
		}
		n := len(s.Trainees)
		minOK := n >= s.Lab.MinTrainees || totalTrainees <= relaxedRosterMax
		if !minOK || n > s.Lab.MaxTrainees {
			valid = false
			hasSizeViolation = true
			message += fmt.Sprintf("- Session %s has %d trainees, outside [%d, %d]\n",
				s, n, s.Lab.MinTrainees, s.Lab.MaxTrainees)
		}
	}

	if hasSizeViolation {
		message = "[FAIL]: Group size check.\n" + message
	} else {
		message = "[  OK]: Group size check.\n" + message
	}
	if hasTraineeCollision {
		message = "[FAIL]: Trainee collision check.\n" + message
	} else {
		message = "[  OK]: Trainee collision check.\n" + message
	}
	if hasRoomCollision {
		message = "[FAIL]: Room collision check.\n" + message
	} else {
		message = "[  OK]: Room collision check.\n" + message
	}

	return valid, message
}

func containsINT(s []int, e int) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}
