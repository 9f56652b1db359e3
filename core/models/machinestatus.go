package models

import "github.com/kabili207/ftms-go/core/serializer"

// machineStatusData is the code-switched parameter table of the Fitness
// Machine Status characteristic. The status-side resistance parameter is
// a u1.1, unlike the control request's s2.1.
//
// Described in section 4.17: Fitness Machine Status.
var machineStatusData = serializer.NewModel("MachineStatus",
	serializer.Field{Name: "stop_pause", Format: "u1", FeatureBit: serializer.NoBit, Code: int(StatusStopPause)},
	serializer.Field{Name: "target_speed", Format: "u2.01", FeatureBit: serializer.NoBit, Code: int(StatusSpeed)},
	serializer.Field{Name: "target_inclination", Format: "s2.1", FeatureBit: serializer.NoBit, Code: int(StatusIncline)},
	serializer.Field{Name: "target_resistance", Format: "u1.1", FeatureBit: serializer.NoBit, Code: int(StatusResistance)},
	serializer.Field{Name: "target_power", Format: "s2", FeatureBit: serializer.NoBit, Code: int(StatusPower)},
	serializer.Field{Name: "target_heart_rate", Format: "u1", FeatureBit: serializer.NoBit, Code: int(StatusHeartRate)},
	serializer.Field{Name: "target_energy", Format: "u2", FeatureBit: serializer.NoBit, Code: int(StatusEnergy)},
	serializer.Field{Name: "target_steps", Format: "u2", FeatureBit: serializer.NoBit, Code: int(StatusSteps)},
	serializer.Field{Name: "target_strides", Format: "u2", FeatureBit: serializer.NoBit, Code: int(StatusStrides)},
	serializer.Field{Name: "target_distance", Format: "u3", FeatureBit: serializer.NoBit, Code: int(StatusDistance)},
	serializer.Field{Name: "target_time_1", Format: "u2", Count: 1, FeatureBit: serializer.NoBit, Code: int(StatusTime1)},
	serializer.Field{Name: "target_time_2", Format: "u2", Count: 2, FeatureBit: serializer.NoBit, Code: int(StatusTime2)},
	serializer.Field{Name: "target_time_3", Format: "u2", Count: 3, FeatureBit: serializer.NoBit, Code: int(StatusTime3)},
	serializer.Field{Name: "target_time_5", Format: "u2", Count: 5, FeatureBit: serializer.NoBit, Code: int(StatusTime5)},
	serializer.Field{Name: "indoor_bike_simulation", Model: indoorBikeSimulationData, FeatureBit: serializer.NoBit, Code: int(StatusBikeSimulation)},
	serializer.Field{Name: "wheel_circumference", Format: "u2.1", FeatureBit: serializer.NoBit, Code: int(StatusCircumference)},
	serializer.Field{Name: "spin_down_status", Format: "u1", FeatureBit: serializer.NoBit, Code: int(StatusSpinDown)},
	serializer.Field{Name: "target_cadence", Format: "u2.5", FeatureBit: serializer.NoBit, Code: int(StatusCadence)},
)

// MachineStatus is one decoded machine status notification.
type MachineStatus struct {
	Code MachineStatusCode

	// FieldName is the public name of the status parameter, or empty for
	// parameterless status codes. Zone-variant names collapse to
	// "target_time".
	FieldName string

	// Value is the typed parameter value: float64, int64, []int64,
	// StopPauseCode, SpinDownStatusCode or IndoorBikeSimulation.
	Value any
}

// DecodeMachineStatus parses a machine status notification.
func DecodeMachineStatus(data []byte) (MachineStatus, error) {
	code, field, value, err := machineStatusData.DecodeCode(data)
	if err != nil {
		return MachineStatus{}, err
	}

	status := MachineStatus{Code: MachineStatusCode(code)}
	if field == "" {
		return status, nil
	}

	status.FieldName = stripZoneSuffix(field)
	switch field {
	case "stop_pause":
		if v, ok := value.(int64); ok {
			status.Value = StopPauseCode(v)
		}
	case "spin_down_status":
		if v, ok := value.(int64); ok {
			status.Value = SpinDownStatusCode(v)
		}
	case "indoor_bike_simulation":
		if m, ok := value.(map[string]any); ok {
			status.Value = simulationFromMap(m)
		}
	default:
		status.Value = value
	}
	return status, nil
}
