package graph

import "fmt"

// ExtractionError wraps a recognizer failure. Prior entities and edges of
// the affected text item are left untouched.
type ExtractionError struct {
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("entity extraction failed: %v", e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// StorageError wraps a persistence failure during a replace operation. The
// failed operation is all-or-nothing, so no partial entity or edge set
// remains.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}
