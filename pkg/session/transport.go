package session

import "fmt"

// Transport opens devices by USB vendor and product ID.
type Transport interface {
	// Open locates the device and returns a handle for writing
	// feature reports. Returns a TransportError on failure.
	Open(vendorID, productID uint16) (Device, error)
}

// Device is an open device handle.
type Device interface {
	// WriteFeatureReport sends one feature report. The first byte is
	// the report ID.
	WriteFeatureReport(data []byte) error

	// Close releases the handle. Safe to call multiple times.
	Close() error
}

// Cause classifies transport failures.
type Cause uint8

const (
	// CauseNotFound means no matching device is connected.
	CauseNotFound Cause = iota
	// CausePermission means the device node exists but is not
	// accessible (typically a udev rule is missing).
	CausePermission
	// CauseWrite means a feature report write failed.
	CauseWrite
)

// String returns the cause name.
func (c Cause) String() string {
	switch c {
	case CauseNotFound:
		return "device not found"
	case CausePermission:
		return "permission denied"
	case CauseWrite:
		return "write failed"
	default:
		return "unknown"
	}
}

// TransportError wraps a transport failure with its cause.
type TransportError struct {
	Cause Cause
	Err   error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Err == nil {
		return e.Cause.String()
	}
	return fmt.Sprintf("%s: %v", e.Cause, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a TransportError.
func NewTransportError(cause Cause, err error) *TransportError {
	return &TransportError{Cause: cause, Err: err}
}
