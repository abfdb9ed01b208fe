package scan

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPayload means the scanned text is not a challenge
	// payload, nothing was sent to the tracker
	ErrMalformedPayload = errors.New("malformed_payload")

	// ErrScanRejected is matched by every ScanRejectedError
	ErrScanRejected = errors.New("scan_rejected")
)

// ScanRejectedError is returned when the tracker refuses a payload,
// Reason is the tracker's error code
type ScanRejectedError struct {
	Reason string
	err    error
}

func (e *ScanRejectedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrScanRejected, e.Reason)
}

func (e *ScanRejectedError) Is(target error) bool {
	return target == ErrScanRejected
}

func (e *ScanRejectedError) Unwrap() error {
	return e.err
}
