package court

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCourt(t *testing.T) *Court {
	t.Helper()
	c, err := NewCourt("Court 1", "badminton", 2000, PricePerHour, []Slot{
		{StartTime: "08:00", EndTime: "09:00", Available: true},
		{StartTime: "09:00", EndTime: "10:00", Available: false},
		{StartTime: "10:00", EndTime: "11:00", Available: true},
	})
	require.NoError(t, err)
	return c
}

func TestNewCourt_Validation(t *testing.T) {
	slots := []Slot{{StartTime: "08:00", EndTime: "09:00", Available: true}}

	_, err := NewCourt("", "badminton", 2000, PricePerHour, slots)
	require.Error(t, err, "empty name")

	_, err = NewCourt("Court 1", "badminton", 0, PricePerHour, slots)
	require.Error(t, err, "zero price")

	_, err = NewCourt("Court 1", "badminton", 2000, "week", slots)
	require.Error(t, err, "bad price unit")

	_, err = NewCourt("Court 1", "badminton", 2000, PricePerHour, nil)
	require.Error(t, err, "no slots")

	_, err = NewCourt("Court 1", "badminton", 2000, PricePerHour, []Slot{
		{StartTime: "08:00", EndTime: "09:00"},
		{StartTime: "08:00", EndTime: "09:00"},
	})
	require.Error(t, err, "duplicate window")

	_, err = NewCourt("Court 1", "badminton", 2000, PricePerHour, []Slot{
		{StartTime: "09:00", EndTime: "08:00"},
	})
	require.Error(t, err, "end before start")
}

func TestCourt_AvailableSlotsFiltersAndKeepsOrder(t *testing.T) {
	c := newTestCourt(t)

	available := c.AvailableSlots()
	require.Len(t, available, 2)
	assert.Equal(t, "08:00", available[0].StartTime)
	assert.Equal(t, "10:00", available[1].StartTime)
}

func TestCourt_AvailableSlotsEmptyWhenFullyBooked(t *testing.T) {
	c, err := NewCourt("Court 1", "badminton", 2000, PricePerHour, []Slot{
		{StartTime: "08:00", EndTime: "09:00", Available: false},
	})
	require.NoError(t, err)

	available := c.AvailableSlots()
	assert.NotNil(t, available)
	assert.Empty(t, available)
}

func TestCourt_HasAvailableSlot(t *testing.T) {
	c := newTestCourt(t)

	assert.True(t, c.HasAvailableSlot(Slot{StartTime: "08:00", EndTime: "09:00"}))
	assert.False(t, c.HasAvailableSlot(Slot{StartTime: "09:00", EndTime: "10:00"}), "exists but booked")
	assert.False(t, c.HasAvailableSlot(Slot{StartTime: "23:00", EndTime: "23:30"}), "unknown window")
}

func TestCourt_SetSlotAvailability(t *testing.T) {
	c := newTestCourt(t)

	err := c.SetSlotAvailability([]Slot{
		{StartTime: "08:00", EndTime: "09:00"},
		{StartTime: "10:00", EndTime: "11:00"},
	}, false)
	require.NoError(t, err)
	assert.Empty(t, c.AvailableSlots())

	err = c.SetSlotAvailability([]Slot{{StartTime: "23:00", EndTime: "23:30"}}, false)
	require.Error(t, err, "unknown window must not no-op")
}

func TestSlot_Label(t *testing.T) {
	s := Slot{StartTime: "08:00", EndTime: "09:00"}
	assert.Equal(t, "08:00-09:00", s.Label())
}
