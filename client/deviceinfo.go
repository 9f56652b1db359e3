package client

import (
	"context"

	"github.com/kabili207/ftms-go/core"
)

// DeviceInfo holds the Device Information Service strings. Fields the
// peer does not expose are empty.
type DeviceInfo struct {
	Manufacturer     string
	Model            string
	SerialNumber     string
	SoftwareRevision string
	HardwareRevision string
}

// ReadDeviceInfo reads the device information strings best-effort:
// missing characteristics leave their fields empty and read failures are
// not fatal.
func ReadDeviceInfo(ctx context.Context, t Transport) DeviceInfo {
	var info DeviceInfo
	for _, c := range []struct {
		uuid uint16
		dst  *string
	}{
		{core.CharManufacturerName, &info.Manufacturer},
		{core.CharModelNumber, &info.Model},
		{core.CharSerialNumber, &info.SerialNumber},
		{core.CharSoftwareRevision, &info.SoftwareRevision},
		{core.CharHardwareRevision, &info.HardwareRevision},
	} {
		if !t.HasCharacteristic(c.uuid) {
			continue
		}
		if data, err := t.Read(ctx, c.uuid); err == nil {
			*c.dst = string(data)
		}
	}
	return info
}
