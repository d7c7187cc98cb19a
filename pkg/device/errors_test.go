package device

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProtocolError(t *testing.T) {
	inner := errors.New("usb stall")
	err := &ProtocolError{Op: "download", Path: "/DCIM/a.jpg", Code: CodeIncompleteTransfer, Err: inner}

	assert.Equal(t, "download /DCIM/a.jpg: device error 0x2007: usb stall", err.Error())
	assert.ErrorIs(t, err, inner)

	code, ok := ProtocolCode(fmt.Errorf("wrapped: %w", err))
	assert.True(t, ok)
	assert.Equal(t, CodeIncompleteTransfer, code)
}

func TestProtocolCodeGenericError(t *testing.T) {
	code, ok := ProtocolCode(errors.New("plain"))
	assert.False(t, ok)
	assert.Zero(t, code)

	_, ok = ProtocolCode(nil)
	assert.False(t, ok)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("/x: %w", ErrNotFound)))
	assert.False(t, IsNotFound(ErrNotConnected))
}
