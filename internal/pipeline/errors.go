package pipeline

import "fmt"

// PersistenceError is a storage failure for a single transaction row, other
// than the expected duplicate skip. It is counted and logged at row
// granularity; the rest of the customer's batch keeps going.
type PersistenceError struct {
	TransactionID string
	Err           error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting transaction %s: %v", e.TransactionID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
