package client

import (
	"bytes"
	"context"
	"fmt"

	"github.com/kabili207/ftms-go/core"
	"github.com/kabili207/ftms-go/core/serializer"
)

// rangeChars maps each range-bearing setting to its characteristic, value
// format and public setting name, in read order.
var rangeChars = []struct {
	setting core.MachineSettings
	uuid    uint16
	format  string
	name    string
}{
	{core.SettingSpeed, core.CharSpeedRange, "u2.01", "target_speed"},
	{core.SettingIncline, core.CharInclineRange, "s2.1", "target_inclination"},
	{core.SettingResistance, core.CharResistanceRange, "s2.1", "target_resistance"},
	{core.SettingPower, core.CharPowerRange, "s2", "target_power"},
	{core.SettingHeartRate, core.CharHeartRateRange, "u1", "target_heart_rate"},
}

// ReadFeatures performs the one-shot read of the Feature characteristic
// and the optional range characteristics.
//
// The settings bitmap is pruned twice: settings that make no sense for the
// machine type are cleared first, then every range-bearing setting whose
// range characteristic is absent. The returned tables are immutable for
// the session.
func ReadFeatures(ctx context.Context, t Transport, mt core.MachineType) (core.MachineFeatures, core.MachineSettings, map[string]core.SettingRange, error) {
	data, err := t.Read(ctx, core.CharFeature)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("reading features: %w", err)
	}
	if len(data) != 8 {
		return 0, 0, nil, fmt.Errorf("%w: feature value of %d bytes", serializer.ErrInvalidFormat, len(data))
	}

	features := core.MachineFeatures(uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24)
	settings := core.MachineSettings(uint32(data[4]) | uint32(data[5])<<8 | uint32(data[6])<<16 | uint32(data[7])<<24)

	// Clear settings the machine type cannot meaningfully control.
	switch mt {
	case core.MachineTreadmill:
		settings &^= core.SettingResistance | core.SettingPower
	case core.MachineCrossTrainer, core.MachineIndoorBike, core.MachineRower:
		settings &^= core.SettingSpeed | core.SettingIncline
	}

	ranges := make(map[string]core.SettingRange)
	for _, rc := range rangeChars {
		if !settings.Has(rc.setting) {
			continue
		}
		if !t.HasCharacteristic(rc.uuid) {
			settings &^= rc.setting
			continue
		}
		sr, err := readRange(ctx, t, rc.uuid, rc.format)
		if err != nil {
			return 0, 0, nil, fmt.Errorf("reading %s range: %w", rc.name, err)
		}
		ranges[rc.name] = sr
	}

	return features, settings, ranges, nil
}

// readRange reads one range characteristic as three consecutive scaled
// numbers (min, max, step). Trailing bytes fail.
func readRange(ctx context.Context, t Transport, uuid uint16, format string) (core.SettingRange, error) {
	data, err := t.Read(ctx, uuid)
	if err != nil {
		return core.SettingRange{}, err
	}

	num := serializer.MustNum(format)
	r := bytes.NewReader(data)

	values := [3]float64{}
	for i := range values {
		v, err := num.Decode(r)
		if err != nil {
			return core.SettingRange{}, err
		}
		switch x := v.(type) {
		case int64:
			values[i] = float64(x)
		case float64:
			values[i] = x
		}
	}
	if r.Len() != 0 {
		return core.SettingRange{}, fmt.Errorf("%w: %d bytes after range value", serializer.ErrTrailingData, r.Len())
	}

	return core.SettingRange{Min: values[0], Max: values[1], Step: values[2]}, nil
}

// settingFor maps a control op code to the settings bit that advertises
// it. Op codes with no bit (start, stop, reset, request control) are
// always permitted.
func settingFor(code uint8) (core.MachineSettings, bool) {
	switch code {
	case 0x02:
		return core.SettingSpeed, true
	case 0x03:
		return core.SettingIncline, true
	case 0x04:
		return core.SettingResistance, true
	case 0x05:
		return core.SettingPower, true
	case 0x06:
		return core.SettingHeartRate, true
	case 0x09:
		return core.SettingEnergy, true
	case 0x0A:
		return core.SettingSteps, true
	case 0x0B:
		return core.SettingStrides, true
	case 0x0C:
		return core.SettingDistance, true
	case 0x0D:
		return core.SettingTime, true
	case 0x0E:
		return core.SettingTimeTwoZones, true
	case 0x0F:
		return core.SettingTimeThreeZones, true
	case 0x10:
		return core.SettingTimeFiveZones, true
	case 0x11:
		return core.SettingBikeSimulation, true
	case 0x12:
		return core.SettingCircumference, true
	case 0x13:
		return core.SettingSpinDown, true
	case 0x14:
		return core.SettingCadence, true
	default:
		return 0, false
	}
}
