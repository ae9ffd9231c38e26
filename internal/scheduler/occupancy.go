package scheduler

import "labrotation/pkg/model"

// RoomBooking is one committed reservation of a room.
type RoomBooking struct {
	Lab  model.LabID
	Slot model.TimeSlot
}

// RoomOccupancy tracks booked time windows per room. Invariant: no two
// bookings for the same room overlap.
type RoomOccupancy map[string][]RoomBooking

func NewRoomOccupancy(rooms []*model.Room) RoomOccupancy {
	occ := make(RoomOccupancy, len(rooms))
	for _, r := range rooms {
		occ[r.Name] = nil
	}
	return occ
}

// Available reports whether the room is free for the whole slot.
func (o RoomOccupancy) Available(room string, slot model.TimeSlot) bool {
	for _, b := range o[room] {
		if slot.Overlaps(b.Slot) {
			return false
		}
	}
	return true
}

// Book records a reservation. Callers must check Available first.
func (o RoomOccupancy) Book(room string, lab model.LabID, slot model.TimeSlot) {
	o[room] = append(o[room], RoomBooking{Lab: lab, Slot: slot})
}

// AssignmentIndex maps a trainee id to the set of labs already covered by a
// committed session. Entries only grow during a run.
type AssignmentIndex map[int]map[model.LabID]struct{}

func NewAssignmentIndex(totalTrainees int) AssignmentIndex {
	idx := make(AssignmentIndex, totalTrainees)
	for id := 1; id <= totalTrainees; id++ {
		idx[id] = make(map[model.LabID]struct{})
	}
	return idx
}

// Has reports whether the trainee already covered the lab.
func (a AssignmentIndex) Has(trainee int, lab model.LabID) bool {
	_, ok := a[trainee][lab]
	return ok
}

// Assign marks the lab as covered for the trainee.
func (a AssignmentIndex) Assign(trainee int, lab model.LabID) {
	a[trainee][lab] = struct{}{}
}

// Count returns the number of labs the trainee has covered so far.
func (a AssignmentIndex) Count(trainee int) int {
	return len(a[trainee])
}
