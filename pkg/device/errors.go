package device

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned when the device cannot be reached
	ErrNotConnected = errors.New("device not connected")

	// ErrNotFound is returned when a device path does not exist
	ErrNotFound = errors.New("not found on device")
)

// Response codes reported by MTP devices
const (
	CodeGeneralError          uint32 = 0x2002
	CodeSessionNotOpen        uint32 = 0x2003
	CodeInvalidTransactionID  uint32 = 0x2004
	CodeOperationNotSupported uint32 = 0x2005
	CodeIncompleteTransfer    uint32 = 0x2007
	CodeInvalidObjectHandle   uint32 = 0x2009
	CodeStoreFull             uint32 = 0x200C
	CodeDeviceBusy            uint32 = 0x2019
	CodeTransactionCancelled  uint32 = 0x201F
)

// ProtocolError is a failure reported by the device with a protocol response code.
// These failures are usually transient.
type ProtocolError struct {
	Op   string
	Path string
	Code uint32
	Err  error
}

func (e *ProtocolError) Error() string {
	msg := fmt.Sprintf("%s %s: device error 0x%04X", e.Op, e.Path, e.Code)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// ProtocolCode extracts the response code from err if it wraps a ProtocolError
func ProtocolCode(err error) (uint32, bool) {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe.Code, true
	}
	return 0, false
}

// IsNotFound reports whether err indicates a missing device path
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
