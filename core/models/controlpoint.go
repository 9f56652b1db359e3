package models

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/kabili207/ftms-go/core/serializer"
)

// ErrInvalidTargetTime reports a target time request whose zone count is
// not one of 1, 2, 3 or 5.
var ErrInvalidTargetTime = errors.New("target time must have 1, 2, 3 or 5 zone values")

// controlData is the code-switched parameter table of the Fitness Machine
// Control Point characteristic. The FeatureBit of each target maps it to
// its MachineSettings bit.
//
// Described in section 4.16: Fitness Machine Control Point.
var controlData = serializer.NewModel("ControlPoint",
	serializer.Field{Name: "target_speed", Format: "u2.01", FeatureBit: 0, Code: int(ControlSpeed)},
	serializer.Field{Name: "target_inclination", Format: "s2.1", FeatureBit: 1, Code: int(ControlIncline)},
	serializer.Field{Name: "target_resistance", Format: "s2.1", FeatureBit: 2, Code: int(ControlResistance)},
	serializer.Field{Name: "target_power", Format: "s2", FeatureBit: 3, Code: int(ControlPower)},
	serializer.Field{Name: "target_heart_rate", Format: "u1", FeatureBit: 4, Code: int(ControlHeartRate)},
	serializer.Field{Name: "stop_pause", Format: "u1", FeatureBit: serializer.NoBit, Code: int(ControlStopPause)},
	serializer.Field{Name: "target_energy", Format: "u2", FeatureBit: 5, Code: int(ControlEnergy)},
	serializer.Field{Name: "target_steps", Format: "u2", FeatureBit: 6, Code: int(ControlSteps)},
	serializer.Field{Name: "target_strides", Format: "u2", FeatureBit: 7, Code: int(ControlStrides)},
	serializer.Field{Name: "target_distance", Format: "u3", FeatureBit: 8, Code: int(ControlDistance)},
	serializer.Field{Name: "target_time_1", Format: "u2", Count: 1, FeatureBit: 9, Code: int(ControlTime1)},
	serializer.Field{Name: "target_time_2", Format: "u2", Count: 2, FeatureBit: 10, Code: int(ControlTime2)},
	serializer.Field{Name: "target_time_3", Format: "u2", Count: 3, FeatureBit: 11, Code: int(ControlTime3)},
	serializer.Field{Name: "target_time_5", Format: "u2", Count: 5, FeatureBit: 12, Code: int(ControlTime5)},
	serializer.Field{Name: "indoor_bike_simulation", Model: indoorBikeSimulationData, FeatureBit: 13, Code: int(ControlBikeSimulation)},
	serializer.Field{Name: "wheel_circumference", Format: "u2.1", FeatureBit: 14, Code: int(ControlCircumference)},
	serializer.Field{Name: "spin_down", Format: "u1", FeatureBit: 15, Code: int(ControlSpinDown)},
	serializer.Field{Name: "target_cadence", Format: "u2.5", FeatureBit: 16, Code: int(ControlCadence)},
)

// ControlRequest is one control point request: an op code and its single
// parameter, if the op code takes one.
type ControlRequest struct {
	Code ControlCode

	// Param is the request parameter: float64 for scaled targets, int64
	// for integer targets, []int64 for target time zones, StopPauseCode,
	// SpinDownControlCode or IndoorBikeSimulation. Nil for parameterless
	// requests.
	Param any
}

// NewTargetTimeRequest builds a target time request, selecting the zone
// variant op code from the number of values.
func NewTargetTimeRequest(seconds []int64) (ControlRequest, error) {
	var code ControlCode
	switch len(seconds) {
	case 1:
		code = ControlTime1
	case 2:
		code = ControlTime2
	case 3:
		code = ControlTime3
	case 5:
		code = ControlTime5
	default:
		return ControlRequest{}, ErrInvalidTargetTime
	}
	return ControlRequest{Code: code, Param: seconds}, nil
}

// Encode serialises the request to its wire form: the op code byte plus
// the encoded parameter.
func (r ControlRequest) Encode() ([]byte, error) {
	var w bytes.Buffer
	if err := controlData.EncodeCode(&w, uint8(r.Code), wireParam(r.Param)); err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", r.Code, err)
	}
	return w.Bytes(), nil
}

// ParamField returns the public name of the request's parameter field.
// Zone-variant names collapse to "target_time".
func (r ControlRequest) ParamField() (string, bool) {
	f, _, ok := controlData.FieldByCode(uint8(r.Code))
	if !ok {
		return "", false
	}
	return stripZoneSuffix(f.Name), true
}

// wireParam lowers the typed request parameters to the codec value kinds.
func wireParam(v any) any {
	switch x := v.(type) {
	case StopPauseCode:
		return int64(x)
	case SpinDownControlCode:
		return int64(x)
	case IndoorBikeSimulation:
		return x.toMap()
	default:
		return v
	}
}

// stripZoneSuffix removes the trailing zone-count digit from the time
// variant field names, so "target_time_2" reads as "target_time".
func stripZoneSuffix(name string) string {
	if len(name) >= 2 && name[len(name)-1] >= '0' && name[len(name)-1] <= '9' && name[len(name)-2] == '_' {
		return name[:len(name)-2]
	}
	return name
}

// ControlIndication is the response indication of the control point: a
// fixed {response op, request op, result} triple plus any procedure
// response parameters.
//
// Described in section 4.16.2.22: Procedure Complete.
type ControlIndication struct {
	RequestCode ControlCode
	Result      ResultCode

	// Params holds any response parameter bytes after the result code
	// (the spin down target speed window on SPIN_DOWN success).
	Params []byte
}

// DecodeControlIndication parses a control point indication.
func DecodeControlIndication(data []byte) (ControlIndication, error) {
	if len(data) < 3 {
		return ControlIndication{}, io.ErrUnexpectedEOF
	}
	if data[0] != uint8(ControlResponse) {
		return ControlIndication{}, fmt.Errorf("%w: indication op %#02x", serializer.ErrInvalidFormat, data[0])
	}
	return ControlIndication{
		RequestCode: ControlCode(data[1]),
		Result:      ResultCode(data[2]),
		Params:      data[3:],
	}, nil
}
