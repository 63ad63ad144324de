package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLevel    = errors.New("invalid level")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrInvalidBadgeKey = errors.New("invalid badge key")

	// Repositories return these so services can branch without knowing the driver.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	ErrInsertFailed     = errors.New("insert failed")
	ErrLookupFailed     = errors.New("lookup failed")
	ErrWriteFailed      = errors.New("write failed")
	ErrBatchFetchFailed = errors.New("batch fetch failed")
)

// StoreError is a storage-layer failure. Kind is one of the Err*Failed
// sentinels and Err is the underlying reason; errors.Is matches both.
type StoreError struct {
	Kind error
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func InsertFailed(op string, err error) error {
	return &StoreError{Kind: ErrInsertFailed, Op: op, Err: err}
}

func LookupFailed(op string, err error) error {
	return &StoreError{Kind: ErrLookupFailed, Op: op, Err: err}
}

func WriteFailed(op string, err error) error {
	return &StoreError{Kind: ErrWriteFailed, Op: op, Err: err}
}

func BatchFetchFailed(op string, err error) error {
	return &StoreError{Kind: ErrBatchFetchFailed, Op: op, Err: err}
}

// IsStoreError reports whether err carries a storage failure of any kind.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
