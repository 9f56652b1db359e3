// Package client implements the FTMS session layer: the feature and range
// reader, the realtime data updater, the control point controller, and the
// fitness machine facade that ties them to a GATT transport.
package client

import "errors"

var (
	// ErrCharacteristicNotFound reports a mandatory characteristic
	// missing at connect. Fatal for the session.
	ErrCharacteristicNotFound = errors.New("characteristic not found")

	// ErrProtocol reports an indication whose request op code does not
	// match the inflight request.
	ErrProtocol = errors.New("indication for different request")

	// ErrTimeout reports a control operation exceeding its deadline.
	ErrTimeout = errors.New("control operation timed out")

	// ErrDisconnected reports the transport dropping while an operation
	// was pending.
	ErrDisconnected = errors.New("disconnected")

	// ErrNotConnected reports an operation on a machine that has no
	// active session.
	ErrNotConnected = errors.New("not connected")

	// ErrUnsupportedMachineType reports a machine type with no realtime
	// data characteristic.
	ErrUnsupportedMachineType = errors.New("unsupported machine type")
)
