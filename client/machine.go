package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/kabili207/ftms-go/core"
	"github.com/kabili207/ftms-go/core/models"
)

// Config configures a fitness machine session.
type Config struct {
	// Transport is the GATT connection to drive. Required.
	Transport Transport

	// Callback receives every session event. Optional; the machine's
	// property cache is maintained either way. Must be fast and
	// non-blocking: it runs on the transport's dispatch context.
	Callback Callback

	// Timeout bounds each control operation. Default: DefaultTimeout.
	Timeout time.Duration

	// RSSI is the advertisement RSSI at attach time; when HasRSSI is set
	// it is surfaced once as an Update event after connect.
	RSSI    int16
	HasRSSI bool

	// Logger for session events. Falls back to slog.Default() if nil.
	Logger *slog.Logger
}

// Machine is the fitness machine facade: it orchestrates connect, the
// one-shot static reads and the subscriptions, exposes the typed control
// commands, and caches the latest properties and settings.
type Machine struct {
	cfg         Config
	log         *slog.Logger
	t           Transport
	machineType core.MachineType
	dataModel   *models.RealtimeModel
	dataUUID    uint16

	controller *Controller
	updater    *Updater
	props      *Properties

	// Static tables, read once per session.
	haveStatic bool
	deviceInfo DeviceInfo
	features   core.MachineFeatures
	settings   core.MachineSettings
	ranges     map[string]core.SettingRange
}

// newMachine wires a facade for one machine type.
func newMachine(mt core.MachineType, cfg Config) (*Machine, error) {
	model, uuid, ok := models.RealtimeFor(mt)
	if !ok {
		return nil, ErrUnsupportedMachineType
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := &Machine{
		cfg:         cfg,
		log:         logger.WithGroup("ftms"),
		t:           cfg.Transport,
		machineType: mt,
		dataModel:   model,
		dataUUID:    uuid,
		props:       NewProperties(),
	}
	m.controller = NewController(cfg.Transport, m.onEvent, cfg.Timeout, logger)
	m.updater = NewUpdater(model, m.onEvent, logger)
	return m, nil
}

// onEvent merges each event into the property cache before handing it to
// the user callback.
func (m *Machine) onEvent(e Event) {
	m.props.Apply(e)
	if m.cfg.Callback != nil {
		m.cfg.Callback(e)
	}
}

// Connect establishes the session: transport connect, one-shot static
// reads (device info, features, settings, ranges) and the realtime and
// control subscriptions.
func (m *Machine) Connect(ctx context.Context) error {
	if m.t.Connected() {
		return nil
	}

	m.t.SetDisconnectHandler(m.onDisconnect)
	if err := m.t.Connect(ctx); err != nil {
		return err
	}
	m.log.Debug("connected", "machine_type", m.machineType)

	if !m.haveStatic {
		m.deviceInfo = ReadDeviceInfo(ctx, m.t)

		features, settings, ranges, err := ReadFeatures(ctx, m.t, m.machineType)
		if err != nil {
			return err
		}
		m.features, m.settings, m.ranges = features, settings, ranges
		m.haveStatic = true
		m.log.Debug("read static tables", "features", uint32(features), "settings", uint32(settings))
	}

	if err := m.controller.Subscribe(ctx); err != nil {
		return err
	}
	if err := m.updater.Subscribe(ctx, m.t, m.dataUUID); err != nil {
		return err
	}

	if m.cfg.HasRSSI {
		m.onEvent(UpdateEvent{Data: map[string]any{"rssi": int64(m.cfg.RSSI)}})
	}
	return nil
}

// Disconnect tears the session down.
func (m *Machine) Disconnect(ctx context.Context) error {
	if !m.t.Connected() {
		return nil
	}
	// Best effort: the peer may already be gone.
	_ = m.updater.Unsubscribe(ctx, m.t, m.dataUUID)
	return m.t.Disconnect()
}

// onDisconnect resets the session-scoped state.
func (m *Machine) onDisconnect(err error) {
	if err != nil {
		m.log.Debug("disconnected", "err", err)
	}
	m.controller.Reset()
	m.updater.Reset()
	m.props.Reset()
}

// Connected reports whether the session is established.
func (m *Machine) Connected() bool {
	return m.t.Connected()
}

// MachineType returns the machine type the session is bound to.
func (m *Machine) MachineType() core.MachineType {
	return m.machineType
}

// DeviceInfo returns the device information strings read at connect.
func (m *Machine) DeviceInfo() DeviceInfo {
	return m.deviceInfo
}

// Features returns the machine features bitmap.
func (m *Machine) Features() core.MachineFeatures {
	return m.features
}

// Settings returns the pruned target settings bitmap.
func (m *Machine) Settings() core.MachineSettings {
	return m.settings
}

// Ranges returns the setting ranges read at connect, keyed by setting
// name.
func (m *Machine) Ranges() map[string]core.SettingRange {
	out := make(map[string]core.SettingRange, len(m.ranges))
	for k, v := range m.ranges {
		out[k] = v
	}
	return out
}

// SupportedProperties returns the realtime properties this machine
// reports, based on its features bitmap.
func (m *Machine) SupportedProperties() []string {
	return m.dataModel.SupportedFields(m.features)
}

// AvailableProperties returns every realtime property the machine type
// may report.
func (m *Machine) AvailableProperties() []string {
	return m.dataModel.SupportedFields(^core.MachineFeatures(0))
}

// Properties returns the session property cache.
func (m *Machine) Properties() *Properties {
	return m.props
}

// COMMANDS

func (m *Machine) writeCommand(ctx context.Context, req models.ControlRequest) (models.ResultCode, error) {
	if !m.t.Connected() {
		return 0, ErrNotConnected
	}
	if setting, ok := settingFor(uint8(req.Code)); ok && !m.settings.Has(setting) {
		return models.ResultNotSupported, nil
	}
	return m.controller.WriteCommand(ctx, req)
}

// RequestControl explicitly authorizes the session. Commands call it
// transparently; it is exposed for probing.
func (m *Machine) RequestControl(ctx context.Context) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlRequestControl})
}

// Reset resets the machine and releases control.
func (m *Machine) Reset(ctx context.Context) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlReset})
}

// Start starts or resumes the training session.
func (m *Machine) Start(ctx context.Context) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlStartResume})
}

// Stop stops the training session.
func (m *Machine) Stop(ctx context.Context) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlStopPause, Param: models.StopPauseStop})
}

// Pause pauses the training session.
func (m *Machine) Pause(ctx context.Context) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlStopPause, Param: models.StopPausePause})
}

// SetTargetSpeed sets the target speed in km/h.
func (m *Machine) SetTargetSpeed(ctx context.Context, kmh float64) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlSpeed, Param: kmh})
}

// SetTargetInclination sets the target inclination in percent.
func (m *Machine) SetTargetInclination(ctx context.Context, percent float64) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlIncline, Param: percent})
}

// SetTargetResistance sets the unitless target resistance level.
func (m *Machine) SetTargetResistance(ctx context.Context, level float64) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlResistance, Param: level})
}

// SetTargetPower sets the target power in watts.
func (m *Machine) SetTargetPower(ctx context.Context, watts int64) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlPower, Param: watts})
}

// SetTargetHeartRate sets the target heart rate in BPM.
func (m *Machine) SetTargetHeartRate(ctx context.Context, bpm int64) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlHeartRate, Param: bpm})
}

// SetTargetEnergy sets the targeted expended energy in kcal.
func (m *Machine) SetTargetEnergy(ctx context.Context, kcal int64) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlEnergy, Param: kcal})
}

// SetTargetSteps sets the targeted number of steps.
func (m *Machine) SetTargetSteps(ctx context.Context, steps int64) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlSteps, Param: steps})
}

// SetTargetStrides sets the targeted number of strides.
func (m *Machine) SetTargetStrides(ctx context.Context, strides int64) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlStrides, Param: strides})
}

// SetTargetDistance sets the targeted distance in meters.
func (m *Machine) SetTargetDistance(ctx context.Context, meters int64) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlDistance, Param: meters})
}

// SetTargetTime sets the targeted training time. One value is a plain
// training time; 2, 3 or 5 values target times in heart rate zones. Any
// other count yields INVALID_PARAMETER.
func (m *Machine) SetTargetTime(ctx context.Context, seconds ...int64) (models.ResultCode, error) {
	req, err := models.NewTargetTimeRequest(seconds)
	if err != nil {
		return models.ResultInvalidParameter, nil
	}
	return m.writeCommand(ctx, req)
}

// SetIndoorBikeSimulation sets the indoor bike simulation parameters.
func (m *Machine) SetIndoorBikeSimulation(ctx context.Context, p models.IndoorBikeSimulation) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlBikeSimulation, Param: p})
}

// SetWheelCircumference sets the wheel circumference in millimeters.
func (m *Machine) SetWheelCircumference(ctx context.Context, mm float64) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlCircumference, Param: mm})
}

// SpinDownStart starts the spin down calibration procedure.
func (m *Machine) SpinDownStart(ctx context.Context) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlSpinDown, Param: models.SpinDownStart})
}

// SpinDownIgnore ignores a requested spin down procedure.
func (m *Machine) SpinDownIgnore(ctx context.Context) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlSpinDown, Param: models.SpinDownIgnore})
}

// SetTargetCadence sets the targeted cadence in 1/min.
func (m *Machine) SetTargetCadence(ctx context.Context, rpm float64) (models.ResultCode, error) {
	return m.writeCommand(ctx, models.ControlRequest{Code: models.ControlCadence, Param: rpm})
}
