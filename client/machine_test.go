package client

import (
	"context"
	"testing"

	"github.com/kabili207/ftms-go/core"
	"github.com/kabili207/ftms-go/core/models"
)

// treadmillFake builds a transport exposing a complete treadmill: feature
// table, realtime data, control point, machine status and device info,
// with an indication loop answering every control write with SUCCESS.
func treadmillFake() *fakeTransport {
	ft := newFakeTransport(core.CharTreadmillData, core.CharControlPoint, core.CharMachineStatus)
	ft.setRead(core.CharFeature, featureValue(core.FeatureHeartRate|core.FeatureDistance, core.SettingSpeed))
	ft.setRead(core.CharSpeedRange, []byte{0x64, 0x00, 0xD0, 0x07, 0x0A, 0x00})
	ft.setRead(core.CharManufacturerName, []byte("Acme Fitness"))
	ft.setRead(core.CharModelNumber, []byte("TR-9000"))
	ft.onWrite = func(uuid uint16, data []byte) error {
		if uuid == core.CharControlPoint {
			ft.notify(core.CharControlPoint, []byte{0x80, data[0], 0x01})
		}
		return nil
	}
	return ft
}

func TestMachineConnect(t *testing.T) {
	ft := treadmillFake()
	rec := &eventRecorder{}
	m, err := NewTreadmill(Config{Transport: ft, Callback: rec.callback, RSSI: -60, HasRSSI: true})
	if err != nil {
		t.Fatalf("NewTreadmill failed: %v", err)
	}

	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if info := m.DeviceInfo(); info.Manufacturer != "Acme Fitness" || info.Model != "TR-9000" {
		t.Errorf("device info = %+v", info)
	}
	if m.Features() != core.FeatureHeartRate|core.FeatureDistance {
		t.Errorf("features = %#x", uint32(m.Features()))
	}
	if m.Settings() != core.SettingSpeed {
		t.Errorf("settings = %#x, want speed", uint32(m.Settings()))
	}
	if sr := m.Ranges()["target_speed"]; sr.Max != 20.0 {
		t.Errorf("speed range = %+v", sr)
	}

	// The attach-time RSSI surfaces once as an update event.
	update, ok := rec.last().(UpdateEvent)
	if !ok || update.Data["rssi"] != int64(-60) {
		t.Errorf("last event = %+v, want rssi update", rec.last())
	}
	if v, ok := m.Properties().Int("rssi"); !ok || v != -60 {
		t.Errorf("cached rssi = %d (%v)", v, ok)
	}
}

func TestMachineSupportedProperties(t *testing.T) {
	ft := treadmillFake()
	m, err := NewTreadmill(Config{Transport: ft})
	if err != nil {
		t.Fatalf("NewTreadmill failed: %v", err)
	}
	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	want := map[string]bool{"speed_instant": true, "distance_total": true, "heart_rate": true}
	got := m.SupportedProperties()
	if len(got) != len(want) {
		t.Fatalf("SupportedProperties = %v", got)
	}
	for _, name := range got {
		if !want[name] {
			t.Errorf("unexpected property %q", name)
		}
	}

	if available := m.AvailableProperties(); len(available) <= len(got) {
		t.Errorf("AvailableProperties = %v, want more than supported", available)
	}
}

func TestMachineCommandNotSupported(t *testing.T) {
	ft := treadmillFake()
	m, err := NewTreadmill(Config{Transport: ft})
	if err != nil {
		t.Fatalf("NewTreadmill failed: %v", err)
	}
	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	writesBefore := len(ft.writtenTo(core.CharControlPoint))

	// Treadmills never expose the resistance target; the command is
	// rejected before touching the transport.
	result, err := m.SetTargetResistance(context.Background(), 5.0)
	if err != nil {
		t.Fatalf("SetTargetResistance failed: %v", err)
	}
	if result != models.ResultNotSupported {
		t.Errorf("result = %v, want NOT_SUPPORTED", result)
	}
	if len(ft.writtenTo(core.CharControlPoint)) != writesBefore {
		t.Error("unsupported command reached the transport")
	}
}

func TestMachineCommandFlow(t *testing.T) {
	ft := treadmillFake()
	rec := &eventRecorder{}
	m, err := NewTreadmill(Config{Transport: ft, Callback: rec.callback})
	if err != nil {
		t.Fatalf("NewTreadmill failed: %v", err)
	}
	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	result, err := m.SetTargetSpeed(context.Background(), 8.5)
	if err != nil {
		t.Fatalf("SetTargetSpeed failed: %v", err)
	}
	if result != models.ResultSuccess {
		t.Fatalf("result = %v, want SUCCESS", result)
	}

	setup, ok := rec.last().(SetupEvent)
	if !ok || setup.Name != "target_speed" || setup.Value != 8.5 {
		t.Fatalf("last event = %+v, want target_speed setup", rec.last())
	}
	if v := m.Properties().Settings()["target_speed"]; v != 8.5 {
		t.Errorf("cached setting = %v, want 8.5", v)
	}
}

func TestMachineTargetTimeArity(t *testing.T) {
	ft := treadmillFake()
	ft.setRead(core.CharFeature, featureValue(0, core.SettingTime|core.SettingTimeTwoZones))
	m, err := NewTreadmill(Config{Transport: ft})
	if err != nil {
		t.Fatalf("NewTreadmill failed: %v", err)
	}
	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if result, err := m.SetTargetTime(context.Background(), 300); err != nil || result != models.ResultSuccess {
		t.Errorf("SetTargetTime(300) = (%v, %v), want SUCCESS", result, err)
	}
	if result, err := m.SetTargetTime(context.Background(), 1, 2, 3, 4); err != nil || result != models.ResultInvalidParameter {
		t.Errorf("SetTargetTime of 4 zones = (%v, %v), want INVALID_PARAMETER", result, err)
	}
}

func TestMachineRealtimeEvents(t *testing.T) {
	ft := treadmillFake()
	rec := &eventRecorder{}
	m, err := NewTreadmill(Config{Transport: ft, Callback: rec.callback})
	if err != nil {
		t.Fatalf("NewTreadmill failed: %v", err)
	}
	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	ft.notify(core.CharTreadmillData, []byte{0x00, 0x00, 0x52, 0x03})

	update, ok := rec.last().(UpdateEvent)
	if !ok || update.Data["speed_instant"] != 8.5 {
		t.Fatalf("last event = %+v, want speed update", rec.last())
	}
	if v, ok := m.Properties().Float("speed_instant"); !ok || v != 8.5 {
		t.Errorf("cached speed = %v (%v)", v, ok)
	}

	live := m.Properties().Live()
	if len(live) != 1 || live[0] != "speed_instant" {
		t.Errorf("live properties = %v, want speed_instant", live)
	}
}

func TestMachineDisconnectResets(t *testing.T) {
	ft := treadmillFake()
	m, err := NewTreadmill(Config{Transport: ft})
	if err != nil {
		t.Fatalf("NewTreadmill failed: %v", err)
	}
	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if _, err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	ft.drop()
	if m.Connected() {
		t.Error("machine still connected after drop")
	}

	if _, err := m.Stop(context.Background()); err != ErrNotConnected {
		t.Errorf("Stop after drop = %v, want ErrNotConnected", err)
	}

	// Reconnecting re-authorises from scratch.
	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("reconnect failed: %v", err)
	}
	writesBefore := len(ft.writtenTo(core.CharControlPoint))
	if _, err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start after reconnect failed: %v", err)
	}
	writes := ft.writtenTo(core.CharControlPoint)
	if len(writes) != writesBefore+2 {
		t.Errorf("wrote %d new requests, want re-auth plus START", len(writes)-writesBefore)
	}
}
