package models

import (
	"bytes"
	"fmt"

	"github.com/kabili207/ftms-go/core/serializer"
)

// SpinDownSpeed is the target speed window returned when the spin down
// procedure is accepted.
//
// Described in section 4.16.2.20: Spin Down Control Procedure.
type SpinDownSpeed struct {
	// Low is the target speed low value in km/h.
	Low float64
	// High is the target speed high value in km/h.
	High float64
}

var spinDownSpeedData = serializer.NewModel("SpinDownSpeed",
	serializer.Field{Name: "low", Format: "u2.01", FeatureBit: serializer.NoBit},
	serializer.Field{Name: "high", Format: "u2.01", FeatureBit: serializer.NoBit},
)

// DecodeSpinDownSpeed parses the optional response parameters of a
// successful SPIN_DOWN request. Empty input yields nil; anything other
// than a complete speed window fails.
func DecodeSpinDownSpeed(params []byte) (*SpinDownSpeed, error) {
	if len(params) == 0 {
		return nil, nil
	}
	if len(params) != spinDownSpeedData.Size() {
		return nil, fmt.Errorf("%w: spin down response of %d bytes", serializer.ErrTrailingData, len(params))
	}

	r := bytes.NewReader(params)
	fields, err := spinDownSpeedData.DecodePlain(r)
	if err != nil {
		return nil, err
	}

	var speed SpinDownSpeed
	if v, ok := fields["low"].(float64); ok {
		speed.Low = v
	}
	if v, ok := fields["high"].(float64); ok {
		speed.High = v
	}
	return &speed, nil
}
