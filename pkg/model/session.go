package model

import "fmt"

// ScheduledSession is one committed (lab, room, slot, trainees) booking.
// Immutable once committed, except for the flexible-strategy overfill pass
// which may append trainees before the run ends.
type ScheduledSession struct {
	Lab      *Lab
	Room     *Room
	Slot     TimeSlot
	Trainees []int

	// Strategy is the assignment strategy that committed the session.
	Strategy StrategyName
}

func (s *ScheduledSession) String() string {
	return fmt.Sprintf("%s in %s at %s (%d trainees)", s.Lab.Name, s.Room.Name, s.Slot, len(s.Trainees))
}

// SessionCSVRow is the export format for one committed session.
type SessionCSVRow struct {
	LabName  string `csv:"lab"`
	Day      int    `csv:"day"`
	Start    string `csv:"start"`
	End      string `csv:"end"`
	Room     string `csv:"room"`
	Trainees int    `csv:"trainees"`
	IDs      string `csv:"trainee_ids"`
}
