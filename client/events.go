package client

import "github.com/kabili207/ftms-go/core/models"

// ControlSource identifies what triggered a control or setup event.
type ControlSource int

const (
	// SourceCallback marks events synthesised from our own successful
	// control requests.
	SourceCallback ControlSource = iota
	// SourceUser marks events triggered on the machine's own controls.
	SourceUser
	// SourceSafety marks stops triggered by the safety key.
	SourceSafety
	// SourceOther marks machine-initiated changes.
	SourceOther
)

func (s ControlSource) String() string {
	switch s {
	case SourceCallback:
		return "callback"
	case SourceUser:
		return "user"
	case SourceSafety:
		return "safety"
	case SourceOther:
		return "other"
	default:
		return "unknown"
	}
}

// ControlID identifies a simple control transition.
type ControlID int

const (
	ControlStart ControlID = iota
	ControlStop
	ControlPause
	ControlReset
)

func (c ControlID) String() string {
	switch c {
	case ControlStart:
		return "start"
	case ControlStop:
		return "stop"
	case ControlPause:
		return "pause"
	case ControlReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event is the tagged union delivered to the session callback. Type()
// returns the stable tag string.
type Event interface {
	Type() string
}

// Callback receives every event of a session. It is invoked on the
// transport's dispatch context and must be fast and non-blocking.
type Callback func(Event)

// UpdateEvent carries the delta of realtime training data with respect to
// the previously emitted snapshot.
type UpdateEvent struct {
	// Data maps leaf field names to their new values.
	Data map[string]any
}

func (UpdateEvent) Type() string { return "update" }

// SetupEvent reports a changed target setting, either acknowledged from
// our own request or announced by the machine.
type SetupEvent struct {
	Source ControlSource

	// Name is the public setting name, e.g. "target_speed".
	Name string

	// Value is the setting value: float64, int64, []int64 or
	// models.IndoorBikeSimulation.
	Value any
}

func (SetupEvent) Type() string { return "setup" }

// ControlEvent reports a start/stop/pause/reset transition.
type ControlEvent struct {
	ID     ControlID
	Source ControlSource
}

func (e ControlEvent) Type() string { return e.ID.String() }

// TrainingStatusEvent reports a training status change.
type TrainingStatusEvent struct {
	Code models.TrainingStatusCode

	// Text is the optional status string, valid when HasText is set.
	Text    string
	HasText bool
}

func (TrainingStatusEvent) Type() string { return "training_status" }

// SpinDownEvent reports progress of the spin down calibration procedure:
// either the acknowledged client request (Code set) or the machine's
// status report (Status set).
type SpinDownEvent struct {
	// Code is the request parameter when the event stems from our own
	// SPIN_DOWN request.
	Code models.SpinDownControlCode

	// Status is the machine-reported phase, when it stems from a machine
	// status notification.
	Status models.SpinDownStatusCode

	// TargetSpeed is the calibration speed window, when the machine
	// provided one.
	TargetSpeed *models.SpinDownSpeed
}

func (SpinDownEvent) Type() string { return "spin_down" }
