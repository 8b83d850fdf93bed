package booking

import "github.com/courthub/service-booking/internal/domain/court"

// SlotSelection is the set of slots a user has toggled on for one booking
// attempt. Membership is checked against the court's available inventory
// at selection time; duplicates are impossible because Toggle removes an
// existing member. Insertion order is preserved for stable display.
type SlotSelection struct {
	available []court.Slot
	chosen    []court.Slot
}

// NewSlotSelection starts an empty selection against a court's currently
// available slots.
func NewSlotSelection(c *court.Court) *SlotSelection {
	return &SlotSelection{available: c.AvailableSlots()}
}

// Toggle adds the slot if absent, removes it if present. A slot outside
// the available inventory is rejected with InvalidSlotError. Toggling the
// same slot twice restores the prior state.
func (s *SlotSelection) Toggle(slot court.Slot) error {
	for i, chosen := range s.chosen {
		if chosen.SameWindow(slot) {
			s.chosen = append(s.chosen[:i], s.chosen[i+1:]...)
			return nil
		}
	}

	for _, avail := range s.available {
		if avail.SameWindow(slot) {
			s.chosen = append(s.chosen, avail)
			return nil
		}
	}
	return &InvalidSlotError{Slot: slot}
}

// Clear empties the selection; used on modal close or successful submit.
func (s *SlotSelection) Clear() {
	s.chosen = nil
}

// Count returns the number of selected slots.
func (s *SlotSelection) Count() int {
	return len(s.chosen)
}

// Slots returns the selected slots in insertion order.
func (s *SlotSelection) Slots() []court.Slot {
	return append([]court.Slot(nil), s.chosen...)
}
