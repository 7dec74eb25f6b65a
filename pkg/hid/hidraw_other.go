//go:build !linux

package hid

import (
	"errors"

	"github.com/macropad-tool/macropad-go/pkg/session"
)

// Transport is a placeholder on platforms without hidraw.
type Transport struct{}

// NewTransport creates a Transport that cannot open devices.
func NewTransport() *Transport {
	return &Transport{}
}

// Open always fails; only Linux hidraw is supported.
func (t *Transport) Open(vendorID, productID uint16) (session.Device, error) {
	return nil, session.NewTransportError(session.CauseNotFound,
		errors.New("hidraw transport requires linux"))
}

var _ session.Transport = (*Transport)(nil)
