package client

import "github.com/kabili207/ftms-go/core"

// New creates a fitness machine session for any controllable machine
// type. Step and stair climbers have no realtime data characteristic and
// are rejected.
func New(mt core.MachineType, cfg Config) (*Machine, error) {
	return newMachine(mt, cfg)
}

// NewTreadmill creates a treadmill session.
func NewTreadmill(cfg Config) (*Machine, error) {
	return newMachine(core.MachineTreadmill, cfg)
}

// NewCrossTrainer creates a cross trainer session.
func NewCrossTrainer(cfg Config) (*Machine, error) {
	return newMachine(core.MachineCrossTrainer, cfg)
}

// NewRower creates a rower session.
func NewRower(cfg Config) (*Machine, error) {
	return newMachine(core.MachineRower, cfg)
}

// NewIndoorBike creates an indoor bike session.
func NewIndoorBike(cfg Config) (*Machine, error) {
	return newMachine(core.MachineIndoorBike, cfg)
}
