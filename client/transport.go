package client

import "context"

// NotifyHandler is called for each notification or indication of a
// subscribed characteristic.
type NotifyHandler func(data []byte)

// DisconnectHandler is called once when the transport connection drops,
// with the cause when known.
type DisconnectHandler func(err error)

// Transport is the GATT boundary the session layer drives. Characteristics
// are addressed by their 16-bit UUID. Implementations return
// ErrCharacteristicNotFound for operations on characteristics the peer
// does not expose.
type Transport interface {
	// Connect establishes the connection and discovers the FTMS and
	// device information services.
	Connect(ctx context.Context) error

	// Disconnect tears the connection down. Safe to call when already
	// disconnected.
	Disconnect() error

	// Connected reports whether the connection is established.
	Connected() bool

	// HasCharacteristic reports whether the peer exposes a
	// characteristic. Valid after Connect.
	HasCharacteristic(uuid uint16) bool

	// Read reads a characteristic value.
	Read(ctx context.Context, uuid uint16) ([]byte, error)

	// Write writes a characteristic value.
	Write(ctx context.Context, uuid uint16, data []byte) error

	// Subscribe enables notifications or indications on a characteristic.
	// The handler runs on the transport's dispatch context.
	Subscribe(ctx context.Context, uuid uint16, fn NotifyHandler) error

	// Unsubscribe disables a prior subscription.
	Unsubscribe(ctx context.Context, uuid uint16) error

	// SetDisconnectHandler registers the handler invoked when the
	// connection drops.
	SetDisconnectHandler(fn DisconnectHandler)
}
