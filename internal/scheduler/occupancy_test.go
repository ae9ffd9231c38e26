package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"labrotation/pkg/model"
)

func TestRoomOccupancy(t *testing.T) {
	occ := NewRoomOccupancy([]*model.Room{{Name: "R1", Capacity: 20}, {Name: "R2", Capacity: 10}})

	morning := model.TimeSlot{Day: 0, Start: 510, End: 660}
	assert.True(t, occ.Available("R1", morning))

	occ.Book("R1", 1, morning)
	assert.False(t, occ.Available("R1", morning))
	assert.False(t, occ.Available("R1", model.TimeSlot{Day: 0, Start: 600, End: 720}))

	// Other room, other day and back-to-back windows stay free.
	assert.True(t, occ.Available("R2", morning))
	assert.True(t, occ.Available("R1", model.TimeSlot{Day: 1, Start: 510, End: 660}))
	assert.True(t, occ.Available("R1", model.TimeSlot{Day: 0, Start: 660, End: 780}))
}

func TestAssignmentIndex(t *testing.T) {
	idx := NewAssignmentIndex(3)

	assert.False(t, idx.Has(1, 7))
	assert.Equal(t, 0, idx.Count(1))

	idx.Assign(1, 7)
	idx.Assign(1, 9)
	idx.Assign(2, 7)

	assert.True(t, idx.Has(1, 7))
	assert.True(t, idx.Has(1, 9))
	assert.False(t, idx.Has(3, 7))
	assert.Equal(t, 2, idx.Count(1))
	assert.Equal(t, 1, idx.Count(2))
	assert.Equal(t, 0, idx.Count(3))
}
