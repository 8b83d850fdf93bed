package booking

import (
	"fmt"
	"time"

	"github.com/courthub/service-booking/internal/domain/court"
)

// InvalidSlotError reports a toggle against a slot that is not part of the
// court's available inventory.
type InvalidSlotError struct {
	Slot court.Slot
}

func (e *InvalidSlotError) Error() string {
	return fmt.Sprintf("slot %s is not available for selection", e.Slot.Label())
}

// EmptySelectionError reports a booking attempt with no slots chosen.
type EmptySelectionError struct{}

func (e *EmptySelectionError) Error() string {
	return "at least one slot must be selected"
}

// NoDateError reports a build attempt before any booking date was chosen.
type NoDateError struct{}

func (e *NoDateError) Error() string {
	return "a booking date must be chosen"
}

// PastDateError reports a booking date before today's calendar day.
type PastDateError struct {
	Date time.Time
}

func (e *PastDateError) Error() string {
	return fmt.Sprintf("booking date %s is in the past", e.Date.Format("2006-01-02"))
}

// SubmissionConflictError reports that the backend rejected a submission
// because slot state changed concurrently. The caller must re-fetch the
// court's availability and let the user reselect; never retry with the
// stale selection.
type SubmissionConflictError struct {
	Slot court.Slot
}

func (e *SubmissionConflictError) Error() string {
	return fmt.Sprintf("slot %s was taken by another booking", e.Slot.Label())
}
