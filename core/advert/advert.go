// Package advert parses the FTMS advertisement service data.
//
// Fitness machines attach a small payload to the 0x1826 service data AD
// structure: a flags byte followed by the machine type bits. Some machines
// ship the two machine type bytes in the wrong order, so the parser ORs
// them together rather than treating them as a little-endian word.
package advert

import (
	"fmt"

	"github.com/kabili207/ftms-go/core"
)

// flagFitnessMachine is bit 0 of the service data flags byte. It must be
// set for the advertiser to be a fitness machine.
const flagFitnessMachine = 0x01

// NotFitnessMachineError reports that advertisement service data did not
// identify a fitness machine. Data holds the raw service data payload, or
// nil if the 0x1826 service data structure was absent.
type NotFitnessMachineError struct {
	Data []byte
}

func (e *NotFitnessMachineError) Error() string {
	if e.Data == nil {
		return "not a fitness machine: no service data"
	}
	return fmt.Sprintf("not a fitness machine: service data %#x", e.Data)
}

// ParseServiceData extracts the machine type from the 0x1826 service data
// payload. The payload must be 2 or 3 bytes: a flags byte with the fitness
// machine bit set, followed by one or two machine type bytes resolving to
// exactly one known machine type.
func ParseServiceData(data []byte) (core.MachineType, error) {
	if data == nil {
		return 0, &NotFitnessMachineError{}
	}
	if len(data) < 2 || len(data) > 3 {
		return 0, &NotFitnessMachineError{Data: data}
	}
	if data[0]&flagFitnessMachine == 0 {
		return 0, &NotFitnessMachineError{Data: data}
	}

	mt := data[1]
	if len(data) == 3 {
		mt |= data[2]
	}

	machine := core.MachineType(mt)
	if !machine.IsValid() {
		return 0, &NotFitnessMachineError{Data: data}
	}
	return machine, nil
}
