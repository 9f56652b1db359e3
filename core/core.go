// Package core provides the shared FTMS identity and capability types:
// machine types, the feature and target-setting flag sets read from the
// Fitness Machine Feature characteristic, setting value ranges, and the
// 16-bit UUIDs of every characteristic the client consumes.
package core

import "fmt"

// MachineType is the fitness machine type flag set from the advertisement
// service data. A valid value has exactly one bit set.
//
// Described in section 3.1.2: Fitness Machine Type Field.
type MachineType uint8

const (
	MachineTreadmill    MachineType = 1 << 0
	MachineCrossTrainer MachineType = 1 << 1
	MachineStepClimber  MachineType = 1 << 2
	MachineStairClimber MachineType = 1 << 3
	MachineRower        MachineType = 1 << 4
	MachineIndoorBike   MachineType = 1 << 5
)

// IsValid returns true if exactly one known machine type bit is set.
func (m MachineType) IsValid() bool {
	if m == 0 || m > MachineIndoorBike {
		return false
	}
	return m&(m-1) == 0
}

func (m MachineType) String() string {
	switch m {
	case MachineTreadmill:
		return "treadmill"
	case MachineCrossTrainer:
		return "cross_trainer"
	case MachineStepClimber:
		return "step_climber"
	case MachineStairClimber:
		return "stair_climber"
	case MachineRower:
		return "rower"
	case MachineIndoorBike:
		return "indoor_bike"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(m))
	}
}

// MovementDirection reports the belt/pedal direction. Used by cross
// trainers only, derived from bit 15 of the realtime data flags word.
type MovementDirection uint8

const (
	DirectionForward  MovementDirection = 0
	DirectionBackward MovementDirection = 1
)

func (d MovementDirection) String() string {
	if d == DirectionBackward {
		return "backward"
	}
	return "forward"
}

// MachineFeatures is the Fitness Machine Features bitmap, the first u32 of
// the Feature characteristic. Bits gate which realtime data fields the
// machine reports.
//
// Described in section 4.3.1.1: Fitness Machine Features Field.
type MachineFeatures uint32

const (
	FeatureAverageSpeed        MachineFeatures = 1 << 0
	FeatureCadence             MachineFeatures = 1 << 1
	FeatureDistance            MachineFeatures = 1 << 2
	FeatureInclination         MachineFeatures = 1 << 3
	FeatureElevationGain       MachineFeatures = 1 << 4
	FeaturePace                MachineFeatures = 1 << 5
	FeatureStepCount           MachineFeatures = 1 << 6
	FeatureResistance          MachineFeatures = 1 << 7
	FeatureStrideCount         MachineFeatures = 1 << 8
	FeatureExpendedEnergy      MachineFeatures = 1 << 9
	FeatureHeartRate           MachineFeatures = 1 << 10
	FeatureMetabolicEquivalent MachineFeatures = 1 << 11
	FeatureElapsedTime         MachineFeatures = 1 << 12
	FeatureRemainingTime       MachineFeatures = 1 << 13
	FeaturePowerMeasurement    MachineFeatures = 1 << 14
	FeatureForceOnBelt         MachineFeatures = 1 << 15
	FeatureUserDataRetention   MachineFeatures = 1 << 16
)

// Has returns true if all bits of f are set.
func (m MachineFeatures) Has(f MachineFeatures) bool {
	return m&f == f
}

// MachineSettings is the Target Setting Features bitmap, the second u32 of
// the Feature characteristic. Bits enumerate the controllable settings.
//
// Described in section 4.3.1.2: Target Setting Features Field.
type MachineSettings uint32

const (
	SettingSpeed          MachineSettings = 1 << 0
	SettingIncline        MachineSettings = 1 << 1
	SettingResistance     MachineSettings = 1 << 2
	SettingPower          MachineSettings = 1 << 3
	SettingHeartRate      MachineSettings = 1 << 4
	SettingEnergy         MachineSettings = 1 << 5
	SettingSteps          MachineSettings = 1 << 6
	SettingStrides        MachineSettings = 1 << 7
	SettingDistance       MachineSettings = 1 << 8
	SettingTime           MachineSettings = 1 << 9
	SettingTimeTwoZones   MachineSettings = 1 << 10
	SettingTimeThreeZones MachineSettings = 1 << 11
	SettingTimeFiveZones  MachineSettings = 1 << 12
	SettingBikeSimulation MachineSettings = 1 << 13
	SettingCircumference  MachineSettings = 1 << 14
	SettingSpinDown       MachineSettings = 1 << 15
	SettingCadence        MachineSettings = 1 << 16
)

// Has returns true if all bits of s are set.
func (m MachineSettings) Has(s MachineSettings) bool {
	return m&s == s
}

// SettingRange is the inclusive value range of a controllable setting, read
// from its supported-range characteristic.
type SettingRange struct {
	Min  float64
	Max  float64
	Step float64
}

// 16-bit GATT UUIDs of the FTMS service and its characteristics.
const (
	ServiceUUID uint16 = 0x1826

	CharFeature          uint16 = 0x2ACC // Read: features u32 + settings u32
	CharTreadmillData    uint16 = 0x2ACD // Notify: realtime data
	CharCrossTrainerData uint16 = 0x2ACE // Notify: realtime data
	CharRowerData        uint16 = 0x2AD1 // Notify: realtime data
	CharIndoorBikeData   uint16 = 0x2AD2 // Notify: realtime data
	CharTrainingStatus   uint16 = 0x2AD3 // Read/Notify: status code + optional text
	CharSpeedRange       uint16 = 0x2AD4 // Read: (min, max, step) u2.01
	CharInclineRange     uint16 = 0x2AD5 // Read: (min, max, step) s2.1
	CharResistanceRange  uint16 = 0x2AD6 // Read: (min, max, step) s2.1
	CharHeartRateRange   uint16 = 0x2AD7 // Read: (min, max, step) u1
	CharPowerRange       uint16 = 0x2AD8 // Read: (min, max, step) s2
	CharControlPoint     uint16 = 0x2AD9 // Write/Indicate: control requests
	CharMachineStatus    uint16 = 0x2ADA // Notify: async machine status
)

// Device Information Service UUIDs, read best-effort at connect.
const (
	DeviceInfoServiceUUID uint16 = 0x180A

	CharManufacturerName uint16 = 0x2A29
	CharModelNumber      uint16 = 0x2A24
	CharSerialNumber     uint16 = 0x2A25
	CharSoftwareRevision uint16 = 0x2A28
	CharHardwareRevision uint16 = 0x2A27
)
