// Package models defines the concrete FTMS characteristic records: the
// per-machine realtime data models, the control point request and response
// indication, the machine status and training status records, and the
// spin-down calibration data.
//
// The wire layouts follow the FTMS v1.0 specification; section references
// in doc comments point there.
package models

import "fmt"

// ControlCode is a Fitness Machine Control Point op code.
//
// Described in section 4.16.1: Fitness Machine Control Point Procedure
// Requirements.
type ControlCode uint8

const (
	ControlRequestControl ControlCode = 0x00
	ControlReset          ControlCode = 0x01
	ControlSpeed          ControlCode = 0x02
	ControlIncline        ControlCode = 0x03
	ControlResistance     ControlCode = 0x04
	ControlPower          ControlCode = 0x05
	ControlHeartRate      ControlCode = 0x06
	ControlStartResume    ControlCode = 0x07
	ControlStopPause      ControlCode = 0x08
	ControlEnergy         ControlCode = 0x09
	ControlSteps          ControlCode = 0x0A
	ControlStrides        ControlCode = 0x0B
	ControlDistance       ControlCode = 0x0C
	ControlTime1          ControlCode = 0x0D
	ControlTime2          ControlCode = 0x0E
	ControlTime3          ControlCode = 0x0F
	ControlTime5          ControlCode = 0x10
	ControlBikeSimulation ControlCode = 0x11
	ControlCircumference  ControlCode = 0x12
	ControlSpinDown       ControlCode = 0x13
	ControlCadence        ControlCode = 0x14
	ControlResponse       ControlCode = 0x80
)

func (c ControlCode) String() string {
	switch c {
	case ControlRequestControl:
		return "REQUEST_CONTROL"
	case ControlReset:
		return "RESET"
	case ControlSpeed:
		return "SET_SPEED"
	case ControlIncline:
		return "SET_INCLINE"
	case ControlResistance:
		return "SET_RESISTANCE"
	case ControlPower:
		return "SET_POWER"
	case ControlHeartRate:
		return "SET_HEART_RATE"
	case ControlStartResume:
		return "START_RESUME"
	case ControlStopPause:
		return "STOP_PAUSE"
	case ControlEnergy:
		return "SET_ENERGY"
	case ControlSteps:
		return "SET_STEPS"
	case ControlStrides:
		return "SET_STRIDES"
	case ControlDistance:
		return "SET_DISTANCE"
	case ControlTime1:
		return "SET_TIME_1"
	case ControlTime2:
		return "SET_TIME_2"
	case ControlTime3:
		return "SET_TIME_3"
	case ControlTime5:
		return "SET_TIME_5"
	case ControlBikeSimulation:
		return "SET_BIKE_SIMULATION"
	case ControlCircumference:
		return "SET_WHEEL_CIRCUMFERENCE"
	case ControlSpinDown:
		return "SPIN_DOWN"
	case ControlCadence:
		return "SET_CADENCE"
	case ControlResponse:
		return "RESPONSE"
	default:
		return fmt.Sprintf("UNKNOWN(%#02x)", uint8(c))
	}
}

// ResultCode is the completion result of a control point procedure,
// carried in the response indication.
//
// Described in section 4.16.2.22: Procedure Complete.
type ResultCode uint8

const (
	ResultSuccess          ResultCode = 0x01
	ResultNotSupported     ResultCode = 0x02
	ResultInvalidParameter ResultCode = 0x03
	ResultFailed           ResultCode = 0x04
	ResultNotPermitted     ResultCode = 0x05
)

func (r ResultCode) String() string {
	switch r {
	case ResultSuccess:
		return "SUCCESS"
	case ResultNotSupported:
		return "NOT_SUPPORTED"
	case ResultInvalidParameter:
		return "INVALID_PARAMETER"
	case ResultFailed:
		return "FAILED"
	case ResultNotPermitted:
		return "NOT_PERMITTED"
	default:
		return fmt.Sprintf("UNKNOWN(%#02x)", uint8(r))
	}
}

// MachineStatusCode is a Fitness Machine Status op code.
//
// Described in section 4.17: Fitness Machine Status.
type MachineStatusCode uint8

const (
	StatusReset          MachineStatusCode = 0x01
	StatusStopPause      MachineStatusCode = 0x02
	StatusStopSafety     MachineStatusCode = 0x03
	StatusStartResume    MachineStatusCode = 0x04
	StatusSpeed          MachineStatusCode = 0x05
	StatusIncline        MachineStatusCode = 0x06
	StatusResistance     MachineStatusCode = 0x07
	StatusPower          MachineStatusCode = 0x08
	StatusHeartRate      MachineStatusCode = 0x09
	StatusEnergy         MachineStatusCode = 0x0A
	StatusSteps          MachineStatusCode = 0x0B
	StatusStrides        MachineStatusCode = 0x0C
	StatusDistance       MachineStatusCode = 0x0D
	StatusTime1          MachineStatusCode = 0x0E
	StatusTime2          MachineStatusCode = 0x0F
	StatusTime3          MachineStatusCode = 0x10
	StatusTime5          MachineStatusCode = 0x11
	StatusBikeSimulation MachineStatusCode = 0x12
	StatusCircumference  MachineStatusCode = 0x13
	StatusSpinDown       MachineStatusCode = 0x14
	StatusCadence        MachineStatusCode = 0x15
	StatusLostControl    MachineStatusCode = 0xFF
)

func (c MachineStatusCode) String() string {
	switch c {
	case StatusReset:
		return "RESET"
	case StatusStopPause:
		return "STOP_PAUSE"
	case StatusStopSafety:
		return "STOP_SAFETY"
	case StatusStartResume:
		return "START_RESUME"
	case StatusSpeed:
		return "SPEED"
	case StatusIncline:
		return "INCLINE"
	case StatusResistance:
		return "RESISTANCE"
	case StatusPower:
		return "POWER"
	case StatusHeartRate:
		return "HEART_RATE"
	case StatusEnergy:
		return "ENERGY"
	case StatusSteps:
		return "STEPS"
	case StatusStrides:
		return "STRIDES"
	case StatusDistance:
		return "DISTANCE"
	case StatusTime1:
		return "TIME_1"
	case StatusTime2:
		return "TIME_2"
	case StatusTime3:
		return "TIME_3"
	case StatusTime5:
		return "TIME_5"
	case StatusBikeSimulation:
		return "BIKE_SIMULATION"
	case StatusCircumference:
		return "WHEEL_CIRCUMFERENCE"
	case StatusSpinDown:
		return "SPIN_DOWN"
	case StatusCadence:
		return "CADENCE"
	case StatusLostControl:
		return "LOST_CONTROL"
	default:
		return fmt.Sprintf("UNKNOWN(%#02x)", uint8(c))
	}
}

// StopPauseCode selects between stopping and pausing in STOP_PAUSE control
// requests and status reports.
//
// Described in section 4.16.2.9: Stop or Pause Procedure.
type StopPauseCode uint8

const (
	StopPauseStop  StopPauseCode = 0x01
	StopPausePause StopPauseCode = 0x02
)

func (c StopPauseCode) String() string {
	if c == StopPausePause {
		return "pause"
	}
	return "stop"
}

// SpinDownControlCode is the client-side parameter of a SPIN_DOWN control
// request.
type SpinDownControlCode uint8

const (
	SpinDownStart  SpinDownControlCode = 0x01
	SpinDownIgnore SpinDownControlCode = 0x02
)

func (c SpinDownControlCode) String() string {
	if c == SpinDownIgnore {
		return "ignore"
	}
	return "start"
}

// SpinDownStatusCode is the machine-side spin down phase reported through
// the machine status characteristic.
//
// Described in section 4.17, Table 4.27.
type SpinDownStatusCode uint8

const (
	SpinDownRequested    SpinDownStatusCode = 0x01
	SpinDownSuccess      SpinDownStatusCode = 0x02
	SpinDownError        SpinDownStatusCode = 0x03
	SpinDownStopPedaling SpinDownStatusCode = 0x04
)

func (c SpinDownStatusCode) String() string {
	switch c {
	case SpinDownRequested:
		return "requested"
	case SpinDownSuccess:
		return "success"
	case SpinDownError:
		return "error"
	case SpinDownStopPedaling:
		return "stop_pedaling"
	default:
		return fmt.Sprintf("UNKNOWN(%#02x)", uint8(c))
	}
}

// TrainingStatusCode is the current training state of the machine.
//
// Described in section 4.10.1.2: Training Status Field.
type TrainingStatusCode uint8

const (
	TrainingOther                 TrainingStatusCode = 0x00
	TrainingIdle                  TrainingStatusCode = 0x01
	TrainingWarmingUp             TrainingStatusCode = 0x02
	TrainingLowIntensityInterval  TrainingStatusCode = 0x03
	TrainingHighIntensityInterval TrainingStatusCode = 0x04
	TrainingRecoveryInterval      TrainingStatusCode = 0x05
	TrainingIsometric             TrainingStatusCode = 0x06
	TrainingHeartRateControl      TrainingStatusCode = 0x07
	TrainingFitnessTest           TrainingStatusCode = 0x08
	TrainingSpeedTooLow           TrainingStatusCode = 0x09
	TrainingSpeedTooHigh          TrainingStatusCode = 0x0A
	TrainingCoolDown              TrainingStatusCode = 0x0B
	TrainingWattControl           TrainingStatusCode = 0x0C
	TrainingManualMode            TrainingStatusCode = 0x0D
	TrainingPreWorkout            TrainingStatusCode = 0x0E
	TrainingPostWorkout           TrainingStatusCode = 0x0F
)

func (c TrainingStatusCode) String() string {
	switch c {
	case TrainingOther:
		return "other"
	case TrainingIdle:
		return "idle"
	case TrainingWarmingUp:
		return "warming_up"
	case TrainingLowIntensityInterval:
		return "low_intensity_interval"
	case TrainingHighIntensityInterval:
		return "high_intensity_interval"
	case TrainingRecoveryInterval:
		return "recovery_interval"
	case TrainingIsometric:
		return "isometric"
	case TrainingHeartRateControl:
		return "heart_rate_control"
	case TrainingFitnessTest:
		return "fitness_test"
	case TrainingSpeedTooLow:
		return "speed_too_low"
	case TrainingSpeedTooHigh:
		return "speed_too_high"
	case TrainingCoolDown:
		return "cool_down"
	case TrainingWattControl:
		return "watt_control"
	case TrainingManualMode:
		return "manual_mode"
	case TrainingPreWorkout:
		return "pre_workout"
	case TrainingPostWorkout:
		return "post_workout"
	default:
		return fmt.Sprintf("UNKNOWN(%#02x)", uint8(c))
	}
}

// Training status flags byte.
const (
	trainingFlagStringPresent  = 0x01
	trainingFlagExtendedString = 0x02
)
