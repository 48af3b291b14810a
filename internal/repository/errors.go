package repository

import "fmt"

// PersistenceError reports a failed store operation. Op names what was being
// done ("insert feedback", "find feedback"); Err is the driver error.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
