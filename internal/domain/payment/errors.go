package payment

import "fmt"

// ReconciliationErrorKind distinguishes the two failure classes after a
// gateway confirmation. The distinction is safety-critical: in the first
// case money has moved but the system of record disagrees.
type ReconciliationErrorKind string

const (
	// KindRecordedNotPersisted: the gateway confirmed the charge but the
	// booking/payment state could not be persisted. Must be escalated for
	// manual reconciliation, never dropped.
	KindRecordedNotPersisted ReconciliationErrorKind = "payment_recorded_but_not_persisted"

	// KindPaymentFailed: the charge itself failed; the user may retry.
	KindPaymentFailed ReconciliationErrorKind = "payment_failed"
)

// ReconciliationError wraps a reconciliation failure with its class.
type ReconciliationError struct {
	Kind          ReconciliationErrorKind
	TransactionID string
	Err           error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation failed (%s, txn %s): %v", e.Kind, e.TransactionID, e.Err)
}

func (e *ReconciliationError) Unwrap() error { return e.Err }

// AmountMismatchError reports that the gateway charged a different amount
// than the payable computed at charge-creation time. This is a fatal
// integration bug, not a recoverable condition.
type AmountMismatchError struct {
	ExpectedCents int64
	ChargedCents  int64
	TransactionID string
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("charged amount %d does not match expected payable %d (txn %s)",
		e.ChargedCents, e.ExpectedCents, e.TransactionID)
}
