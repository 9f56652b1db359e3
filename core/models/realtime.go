package models

import (
	"github.com/kabili207/ftms-go/core"
	"github.com/kabili207/ftms-go/core/serializer"
)

// RealtimeModel couples a bitmask-gated field table with the machine
// specific decode quirks of its realtime data characteristic.
type RealtimeModel struct {
	model       *serializer.Model
	machineType core.MachineType
}

// Name returns the model name.
func (m *RealtimeModel) Name() string {
	return m.model.Name
}

// MachineType returns the machine type the model belongs to.
func (m *RealtimeModel) MachineType() core.MachineType {
	return m.machineType
}

// Decode parses one realtime notification into a flat field map and
// reports whether the record's More Data bit was set. Cross trainer
// records additionally carry the movement direction in bit 15 of the
// flags word, independent of the field gating.
func (m *RealtimeModel) Decode(data []byte) (fields map[string]any, moreData bool, err error) {
	fields, mask, err := m.model.DecodeBitmask(data)
	if err != nil {
		return nil, false, err
	}
	if m.machineType == core.MachineCrossTrainer {
		dir := core.DirectionForward
		if mask&0x8000 != 0 {
			dir = core.DirectionBackward
		}
		fields["movement_direction"] = dir
	}
	return fields, mask&1 != 0, nil
}

// SupportedFields returns the leaf field names this machine can report,
// given its features bitmap.
func (m *RealtimeModel) SupportedFields(features core.MachineFeatures) []string {
	out := m.model.SupportedFields(uint32(features))
	if m.machineType == core.MachineCrossTrainer {
		out = append(out, "movement_direction")
	}
	return out
}

// Shared nested records.
//
// Described in sections 4.4 (treadmill), 4.5 (cross trainer), 4.8 (rower)
// and 4.9 (indoor bike): Data Field tables.
var (
	inclinationData = serializer.NewModel("InclinationData",
		serializer.Field{Name: "inclination", Format: "s2.1", FeatureBit: serializer.NoBit},
		serializer.Field{Name: "ramp_angle", Format: "s2.1", FeatureBit: serializer.NoBit},
	)

	energyData = serializer.NewModel("EnergyData",
		serializer.Field{Name: "energy_total", Format: "u2", FeatureBit: serializer.NoBit},
		serializer.Field{Name: "energy_per_hour", Format: "u2", FeatureBit: serializer.NoBit},
		serializer.Field{Name: "energy_per_minute", Format: "u1", FeatureBit: serializer.NoBit},
	)

	treadmillElevationGain = serializer.NewModel("ElevationGainData",
		serializer.Field{Name: "elevation_gain_positive", Format: "u2.1", FeatureBit: serializer.NoBit},
		serializer.Field{Name: "elevation_gain_negative", Format: "u2.1", FeatureBit: serializer.NoBit},
	)

	crossTrainerElevationGain = serializer.NewModel("ElevationGainData",
		serializer.Field{Name: "elevation_gain_positive", Format: "u2", FeatureBit: serializer.NoBit},
		serializer.Field{Name: "elevation_gain_negative", Format: "u2", FeatureBit: serializer.NoBit},
	)

	forceOnBeltData = serializer.NewModel("ForceOnBeltData",
		serializer.Field{Name: "force_on_belt", Format: "s2", FeatureBit: serializer.NoBit},
		serializer.Field{Name: "power_output", Format: "s2", FeatureBit: serializer.NoBit},
	)

	stepRateData = serializer.NewModel("StepRateData",
		serializer.Field{Name: "step_rate_instant", Format: "u2", FeatureBit: serializer.NoBit},
		serializer.Field{Name: "step_rate_average", Format: "u2", FeatureBit: serializer.NoBit},
	)

	strokeRateData = serializer.NewModel("StrokeRateData",
		serializer.Field{Name: "stroke_rate_instant", Format: "u1.5", FeatureBit: serializer.NoBit},
		serializer.Field{Name: "stroke_count", Format: "u2", FeatureBit: serializer.NoBit},
	)
)

// TreadmillData is the Treadmill Data characteristic (0x2ACD) model.
var TreadmillData = &RealtimeModel{
	machineType: core.MachineTreadmill,
	model: serializer.NewModel("TreadmillData",
		serializer.Field{Name: "speed_instant", Format: "u2.01", FeatureBit: serializer.NoBit},
		serializer.Field{Name: "speed_average", Format: "u2.01", FeatureBit: 0},
		serializer.Field{Name: "distance_total", Format: "u3", FeatureBit: 2},
		serializer.Field{Name: "inclination", Model: inclinationData, FeatureBit: 3},
		serializer.Field{Name: "elevation_gain", Model: treadmillElevationGain, FeatureBit: 4},
		serializer.Field{Name: "pace_instant", Format: "u1.1", FeatureBit: 5},
		serializer.Field{Name: "pace_average", Format: "u1.1", FeatureBit: 5},
		serializer.Field{Name: "energy", Model: energyData, FeatureBit: 9},
		serializer.Field{Name: "heart_rate", Format: "u1", FeatureBit: 10},
		serializer.Field{Name: "metabolic_equivalent", Format: "u1.1", FeatureBit: 11},
		serializer.Field{Name: "time_elapsed", Format: "u2", FeatureBit: 12},
		serializer.Field{Name: "time_remaining", Format: "u2", FeatureBit: 13},
		serializer.Field{Name: "force_on_belt", Model: forceOnBeltData, FeatureBit: 15},
		serializer.Field{Name: "step_count", Format: "u3", FeatureBit: 6},
	),
}

// CrossTrainerData is the Cross Trainer Data characteristic (0x2ACE) model.
var CrossTrainerData = &RealtimeModel{
	machineType: core.MachineCrossTrainer,
	model: serializer.NewModel("CrossTrainerData",
		serializer.Field{Name: "speed_instant", Format: "u2.01", FeatureBit: serializer.NoBit},
		serializer.Field{Name: "speed_average", Format: "u2.01", FeatureBit: 0},
		serializer.Field{Name: "distance_total", Format: "u3", FeatureBit: 2},
		serializer.Field{Name: "step_rate", Model: stepRateData, FeatureBit: 6},
		serializer.Field{Name: "stride_count", Format: "u2", FeatureBit: 8},
		serializer.Field{Name: "elevation_gain", Model: crossTrainerElevationGain, FeatureBit: 4},
		serializer.Field{Name: "inclination", Model: inclinationData, FeatureBit: 3},
		serializer.Field{Name: "resistance_level", Format: "s2.1", FeatureBit: 7},
		serializer.Field{Name: "power_instant", Format: "s2", FeatureBit: 14},
		serializer.Field{Name: "power_average", Format: "s2", FeatureBit: 14},
		serializer.Field{Name: "energy", Model: energyData, FeatureBit: 9},
		serializer.Field{Name: "heart_rate", Format: "u1", FeatureBit: 10},
		serializer.Field{Name: "metabolic_equivalent", Format: "u1.1", FeatureBit: 11},
		serializer.Field{Name: "time_elapsed", Format: "u2", FeatureBit: 12},
		serializer.Field{Name: "time_remaining", Format: "u2", FeatureBit: 13},
	),
}

// RowerData is the Rower Data characteristic (0x2AD1) model.
var RowerData = &RealtimeModel{
	machineType: core.MachineRower,
	model: serializer.NewModel("RowerData",
		serializer.Field{Name: "stroke_rate", Model: strokeRateData, FeatureBit: serializer.NoBit},
		serializer.Field{Name: "stroke_rate_average", Format: "u1.5", FeatureBit: 1},
		serializer.Field{Name: "distance_total", Format: "u3", FeatureBit: 2},
		serializer.Field{Name: "split_time_instant", Format: "u2", FeatureBit: 5},
		serializer.Field{Name: "split_time_average", Format: "u2", FeatureBit: 5},
		serializer.Field{Name: "power_instant", Format: "s2", FeatureBit: 14},
		serializer.Field{Name: "power_average", Format: "s2", FeatureBit: 14},
		serializer.Field{Name: "resistance_level", Format: "s2", FeatureBit: 7},
		serializer.Field{Name: "energy", Model: energyData, FeatureBit: 9},
		serializer.Field{Name: "heart_rate", Format: "u1", FeatureBit: 10},
		serializer.Field{Name: "metabolic_equivalent", Format: "u1.1", FeatureBit: 11},
		serializer.Field{Name: "time_elapsed", Format: "u2", FeatureBit: 12},
		serializer.Field{Name: "time_remaining", Format: "u2", FeatureBit: 13},
	),
}

// IndoorBikeData is the Indoor Bike Data characteristic (0x2AD2) model.
var IndoorBikeData = &RealtimeModel{
	machineType: core.MachineIndoorBike,
	model: serializer.NewModel("IndoorBikeData",
		serializer.Field{Name: "speed_instant", Format: "u2.01", FeatureBit: serializer.NoBit},
		serializer.Field{Name: "speed_average", Format: "u2.01", FeatureBit: 0},
		serializer.Field{Name: "cadence_instant", Format: "u2.5", FeatureBit: 1},
		serializer.Field{Name: "cadence_average", Format: "u2.5", FeatureBit: 1},
		serializer.Field{Name: "distance_total", Format: "u3", FeatureBit: 2},
		serializer.Field{Name: "resistance_level", Format: "s2", FeatureBit: 7},
		serializer.Field{Name: "power_instant", Format: "s2", FeatureBit: 14},
		serializer.Field{Name: "power_average", Format: "s2", FeatureBit: 14},
		serializer.Field{Name: "energy", Model: energyData, FeatureBit: 9},
		serializer.Field{Name: "heart_rate", Format: "u1", FeatureBit: 10},
		serializer.Field{Name: "metabolic_equivalent", Format: "u1.1", FeatureBit: 11},
		serializer.Field{Name: "time_elapsed", Format: "u2", FeatureBit: 12},
		serializer.Field{Name: "time_remaining", Format: "u2", FeatureBit: 13},
	),
}

// RealtimeFor returns the realtime model and notify characteristic UUID
// for a machine type.
func RealtimeFor(mt core.MachineType) (*RealtimeModel, uint16, bool) {
	switch mt {
	case core.MachineTreadmill:
		return TreadmillData, core.CharTreadmillData, true
	case core.MachineCrossTrainer:
		return CrossTrainerData, core.CharCrossTrainerData, true
	case core.MachineRower:
		return RowerData, core.CharRowerData, true
	case core.MachineIndoorBike:
		return IndoorBikeData, core.CharIndoorBikeData, true
	default:
		return nil, 0, false
	}
}
