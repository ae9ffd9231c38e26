package model

import "strings"

type LabID int

// CapacityClass determines the group-size band of a lab and how late in the
// rotation it is preferentially scheduled.
type CapacityClass string

const (
	ClassStandard CapacityClass = "standard"
	ClassReduced  CapacityClass = "reduced"
)

type Lab struct {
	ID          LabID  `csv:"lab_id"`
	Name        string `csv:"name"`
	Duration    int    `csv:"duration"`
	MinTrainees int    `csv:"min_trainees"`
	MaxTrainees int    `csv:"max_trainees"`
	RoomsSTR    string `csv:"rooms"`
	ClassSTR    string `csv:"class"`

	EligibleRooms []string      `csv:"-"`
	Class         CapacityClass `csv:"-"`
}

// Reduced reports whether the lab belongs to the reduced capacity class.
func (l *Lab) Reduced() bool {
	return l.Class == ClassReduced
}

// RoomAllowed reports whether the lab may take place in the named room.
func (l *Lab) RoomAllowed(name string) bool {
	for _, r := range l.EligibleRooms {
		if r == name {
			return true
		}
	}
	return false
}

// ParseRuntimeFields derives EligibleRooms and Class from the raw CSV columns.
func (l *Lab) ParseRuntimeFields() {
	l.EligibleRooms = nil
	for _, r := range strings.Split(l.RoomsSTR, "|") {
		r = strings.TrimSpace(r)
		if r != "" {
			l.EligibleRooms = append(l.EligibleRooms, r)
		}
	}
	if strings.EqualFold(strings.TrimSpace(l.ClassSTR), string(ClassReduced)) {
		l.Class = ClassReduced
	} else {
		l.Class = ClassStandard
	}
}
