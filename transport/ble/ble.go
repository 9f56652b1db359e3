// Package ble implements the GATT transport on tinygo.org/x/bluetooth,
// plus scanning helpers that surface advertising fitness machines.
//
// The adapter must be enabled (adapter.Enable) before use. Works on Linux
// (BlueZ), macOS (CoreBluetooth) and Windows (WinRT) through the
// bluetooth package's backends.
package ble

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"tinygo.org/x/bluetooth"

	"github.com/kabili207/ftms-go/client"
	"github.com/kabili207/ftms-go/core"
	"github.com/kabili207/ftms-go/core/advert"
)

// Compile-time interface check.
var _ client.Transport = (*Transport)(nil)

var fitnessMachineService = bluetooth.New16BitUUID(core.ServiceUUID)

// knownChars is every characteristic the session layer may address,
// resolved once at discovery.
var knownChars = []uint16{
	core.CharFeature,
	core.CharTreadmillData,
	core.CharCrossTrainerData,
	core.CharRowerData,
	core.CharIndoorBikeData,
	core.CharTrainingStatus,
	core.CharSpeedRange,
	core.CharInclineRange,
	core.CharResistanceRange,
	core.CharHeartRateRange,
	core.CharPowerRange,
	core.CharControlPoint,
	core.CharMachineStatus,
	core.CharManufacturerName,
	core.CharModelNumber,
	core.CharSerialNumber,
	core.CharSoftwareRevision,
	core.CharHardwareRevision,
}

// Config holds the configuration for a BLE transport.
type Config struct {
	// Adapter is the bluetooth adapter to use. Defaults to
	// bluetooth.DefaultAdapter. Must already be enabled.
	Adapter *bluetooth.Adapter

	// Address is the peer to connect to.
	Address bluetooth.Address

	// Logger is the logger to use. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Transport implements client.Transport over a BLE GATT connection.
type Transport struct {
	cfg Config
	log *slog.Logger

	mu           sync.RWMutex
	connected    bool
	device       bluetooth.Device
	chars        map[uint16]bluetooth.DeviceCharacteristic
	onDisconnect client.DisconnectHandler
}

// New creates a BLE transport for the given peer.
func New(cfg Config) *Transport {
	if cfg.Adapter == nil {
		cfg.Adapter = bluetooth.DefaultAdapter
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Transport{
		cfg: cfg,
		log: cfg.Logger.WithGroup("ble"),
	}
}

// Connect establishes the GATT connection and discovers the FTMS and
// device information characteristics.
func (t *Transport) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.cfg.Adapter.SetConnectHandler(func(device bluetooth.Device, connected bool) {
		if connected || device.Address != t.cfg.Address {
			return
		}
		t.mu.Lock()
		wasConnected := t.connected
		t.connected = false
		handler := t.onDisconnect
		t.mu.Unlock()
		if wasConnected {
			t.log.Info("peer disconnected", "address", t.cfg.Address.String())
			if handler != nil {
				handler(client.ErrDisconnected)
			}
		}
	})

	device, err := t.cfg.Adapter.Connect(t.cfg.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", t.cfg.Address.String(), err)
	}

	chars, err := discoverCharacteristics(device)
	if err != nil {
		_ = device.Disconnect()
		return err
	}

	t.mu.Lock()
	t.device = device
	t.chars = chars
	t.connected = true
	t.mu.Unlock()

	t.log.Info("connected", "address", t.cfg.Address.String(), "characteristics", len(chars))
	return nil
}

// discoverCharacteristics resolves every known characteristic of the FTMS
// and device information services.
func discoverCharacteristics(device bluetooth.Device) (map[uint16]bluetooth.DeviceCharacteristic, error) {
	services, err := device.DiscoverServices([]bluetooth.UUID{fitnessMachineService})
	if err != nil {
		return nil, fmt.Errorf("%w: FTMS service", client.ErrCharacteristicNotFound)
	}

	// Device information is optional; discover it separately so a missing
	// service does not fail the connect.
	if dis, err := device.DiscoverServices([]bluetooth.UUID{bluetooth.New16BitUUID(core.DeviceInfoServiceUUID)}); err == nil {
		services = append(services, dis...)
	}

	chars := make(map[uint16]bluetooth.DeviceCharacteristic)
	for _, svc := range services {
		found, err := svc.DiscoverCharacteristics(nil)
		if err != nil {
			return nil, fmt.Errorf("discovering characteristics: %w", err)
		}
		for _, c := range found {
			for _, id := range knownChars {
				if c.UUID() == bluetooth.New16BitUUID(id) {
					chars[id] = c
					break
				}
			}
		}
	}
	return chars, nil
}

// Disconnect tears the GATT connection down.
func (t *Transport) Disconnect() error {
	t.mu.Lock()
	connected := t.connected
	device := t.device
	t.connected = false
	t.mu.Unlock()

	if !connected {
		return nil
	}
	return device.Disconnect()
}

// Connected reports whether the GATT connection is established.
func (t *Transport) Connected() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.connected
}

// SetDisconnectHandler registers the disconnect handler.
func (t *Transport) SetDisconnectHandler(fn client.DisconnectHandler) {
	t.mu.Lock()
	t.onDisconnect = fn
	t.mu.Unlock()
}

// HasCharacteristic reports whether the peer exposes a characteristic.
func (t *Transport) HasCharacteristic(uuid uint16) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.chars[uuid]
	return ok
}

func (t *Transport) characteristic(uuid uint16) (bluetooth.DeviceCharacteristic, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.chars[uuid]
	if !ok {
		return bluetooth.DeviceCharacteristic{}, fmt.Errorf("%w: %#04x", client.ErrCharacteristicNotFound, uuid)
	}
	return c, nil
}

// Read reads a characteristic value.
func (t *Transport) Read(ctx context.Context, uuid uint16) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := t.characteristic(uuid)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 512)
	n, err := c.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("reading %#04x: %w", uuid, err)
	}
	return buf[:n], nil
}

// Write writes a characteristic value.
func (t *Transport) Write(ctx context.Context, uuid uint16, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c, err := t.characteristic(uuid)
	if err != nil {
		return err
	}
	if _, err := c.WriteWithoutResponse(data); err != nil {
		return fmt.Errorf("writing %#04x: %w", uuid, err)
	}
	return nil
}

// Subscribe enables notifications or indications on a characteristic.
func (t *Transport) Subscribe(ctx context.Context, uuid uint16, fn client.NotifyHandler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c, err := t.characteristic(uuid)
	if err != nil {
		return err
	}
	// The notification buffer is reused by the stack; hand out a copy.
	return c.EnableNotifications(func(buf []byte) {
		fn(bytes.Clone(buf))
	})
}

// Unsubscribe disables notifications on a characteristic.
func (t *Transport) Unsubscribe(ctx context.Context, uuid uint16) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c, err := t.characteristic(uuid)
	if err != nil {
		return err
	}
	return c.EnableNotifications(nil)
}

// ScanResult is one advertising fitness machine seen during a scan.
type ScanResult struct {
	Address     bluetooth.Address
	RSSI        int16
	Name        string
	MachineType core.MachineType
}

// Scan reports advertising fitness machines until the context is
// cancelled. Advertisements without valid FTMS service data are skipped.
// The callback runs on the adapter's scan goroutine.
func Scan(ctx context.Context, adapter *bluetooth.Adapter, fn func(ScanResult)) error {
	if adapter == nil {
		adapter = bluetooth.DefaultAdapter
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- adapter.Scan(func(a *bluetooth.Adapter, r bluetooth.ScanResult) {
			for _, sd := range r.ServiceData() {
				if sd.UUID != fitnessMachineService {
					continue
				}
				mt, err := advert.ParseServiceData(sd.Data)
				if err != nil {
					continue
				}
				fn(ScanResult{
					Address:     r.Address,
					RSSI:        r.RSSI,
					Name:        r.LocalName(),
					MachineType: mt,
				})
			}
		})
	}()

	select {
	case <-ctx.Done():
		_ = adapter.StopScan()
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
