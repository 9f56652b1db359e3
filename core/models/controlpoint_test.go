package models

import (
	"bytes"
	"errors"
	"testing"
)

func TestControlRequestEncode(t *testing.T) {
	tests := []struct {
		name string
		req  ControlRequest
		wire []byte
	}{
		{
			name: "request control",
			req:  ControlRequest{Code: ControlRequestControl},
			wire: []byte{0x00},
		},
		{
			name: "reset",
			req:  ControlRequest{Code: ControlReset},
			wire: []byte{0x01},
		},
		{
			name: "set speed",
			req:  ControlRequest{Code: ControlSpeed, Param: 8.5},
			wire: []byte{0x02, 0x52, 0x03},
		},
		{
			name: "set incline negative",
			req:  ControlRequest{Code: ControlIncline, Param: -2.5},
			wire: []byte{0x03, 0xE7, 0xFF},
		},
		{
			name: "set power",
			req:  ControlRequest{Code: ControlPower, Param: int64(230)},
			wire: []byte{0x05, 0xE6, 0x00},
		},
		{
			name: "stop",
			req:  ControlRequest{Code: ControlStopPause, Param: StopPauseStop},
			wire: []byte{0x08, 0x01},
		},
		{
			name: "pause",
			req:  ControlRequest{Code: ControlStopPause, Param: StopPausePause},
			wire: []byte{0x08, 0x02},
		},
		{
			name: "set distance",
			req:  ControlRequest{Code: ControlDistance, Param: int64(5000)},
			wire: []byte{0x0C, 0x88, 0x13, 0x00},
		},
		{
			name: "spin down start",
			req:  ControlRequest{Code: ControlSpinDown, Param: SpinDownStart},
			wire: []byte{0x13, 0x01},
		},
		{
			name: "simulation",
			req: ControlRequest{Code: ControlBikeSimulation, Param: IndoorBikeSimulation{
				WindSpeed:         2.0,
				Grade:             1.5,
				RollingResistance: 0.004,
				WindResistance:    0.51,
			}},
			wire: []byte{0x11, 0xD0, 0x07, 0x96, 0x00, 0x28, 0x33},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.Encode()
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if !bytes.Equal(got, tt.wire) {
				t.Errorf("Encode = %#x, want %#x", got, tt.wire)
			}
		})
	}
}

func TestTargetTimeRequest(t *testing.T) {
	tests := []struct {
		seconds []int64
		code    ControlCode
		wire    []byte
		wantErr bool
	}{
		{seconds: []int64{300}, code: ControlTime1, wire: []byte{0x0D, 0x2C, 0x01}},
		{seconds: []int64{60, 120}, code: ControlTime2, wire: []byte{0x0E, 0x3C, 0x00, 0x78, 0x00}},
		{seconds: []int64{60, 120, 180}, code: ControlTime3, wire: []byte{0x0F, 0x3C, 0x00, 0x78, 0x00, 0xB4, 0x00}},
		{seconds: []int64{10, 20, 30, 40, 50}, code: ControlTime5, wire: []byte{0x10, 0x0A, 0x00, 0x14, 0x00, 0x1E, 0x00, 0x28, 0x00, 0x32, 0x00}},
		{seconds: nil, wantErr: true},
		{seconds: []int64{1, 2, 3, 4}, wantErr: true},
		{seconds: []int64{1, 2, 3, 4, 5, 6}, wantErr: true},
	}

	for _, tt := range tests {
		req, err := NewTargetTimeRequest(tt.seconds)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTargetTime) {
				t.Errorf("NewTargetTimeRequest(%v) err = %v, want ErrInvalidTargetTime", tt.seconds, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewTargetTimeRequest(%v) failed: %v", tt.seconds, err)
			continue
		}
		if req.Code != tt.code {
			t.Errorf("NewTargetTimeRequest(%v) code = %v, want %v", tt.seconds, req.Code, tt.code)
		}
		if name, _ := req.ParamField(); name != "target_time" {
			t.Errorf("ParamField() = %q, want target_time", name)
		}
		wire, err := req.Encode()
		if err != nil {
			t.Errorf("Encode failed: %v", err)
			continue
		}
		if !bytes.Equal(wire, tt.wire) {
			t.Errorf("Encode(%v) = %#x, want %#x", tt.seconds, wire, tt.wire)
		}
	}
}

func TestParamField(t *testing.T) {
	tests := []struct {
		code ControlCode
		name string
		ok   bool
	}{
		{ControlSpeed, "target_speed", true},
		{ControlCadence, "target_cadence", true},
		{ControlTime5, "target_time", true},
		{ControlBikeSimulation, "indoor_bike_simulation", true},
		{ControlRequestControl, "", false},
		{ControlStartResume, "", false},
	}

	for _, tt := range tests {
		name, ok := ControlRequest{Code: tt.code}.ParamField()
		if name != tt.name || ok != tt.ok {
			t.Errorf("ParamField(%v) = (%q, %v), want (%q, %v)", tt.code, name, ok, tt.name, tt.ok)
		}
	}
}

func TestDecodeControlIndication(t *testing.T) {
	ind, err := DecodeControlIndication([]byte{0x80, 0x02, 0x01})
	if err != nil {
		t.Fatalf("DecodeControlIndication failed: %v", err)
	}
	if ind.RequestCode != ControlSpeed || ind.Result != ResultSuccess || len(ind.Params) != 0 {
		t.Errorf("indication = %+v, want speed/success", ind)
	}

	ind, err = DecodeControlIndication([]byte{0x80, 0x13, 0x01, 0xE8, 0x03, 0xD0, 0x07})
	if err != nil {
		t.Fatalf("DecodeControlIndication failed: %v", err)
	}
	if ind.RequestCode != ControlSpinDown || len(ind.Params) != 4 {
		t.Errorf("indication = %+v, want spin down with 4 param bytes", ind)
	}

	if _, err := DecodeControlIndication([]byte{0x80, 0x02}); err == nil {
		t.Error("short indication decoded, want error")
	}
	if _, err := DecodeControlIndication([]byte{0x00, 0x02, 0x01}); err == nil {
		t.Error("indication with bad response op decoded, want error")
	}
}

func TestDecodeSpinDownSpeed(t *testing.T) {
	speed, err := DecodeSpinDownSpeed([]byte{0xE8, 0x03, 0xD0, 0x07})
	if err != nil {
		t.Fatalf("DecodeSpinDownSpeed failed: %v", err)
	}
	if speed == nil || speed.Low != 10.0 || speed.High != 20.0 {
		t.Errorf("speed = %+v, want low 10 high 20", speed)
	}

	speed, err = DecodeSpinDownSpeed(nil)
	if err != nil || speed != nil {
		t.Errorf("DecodeSpinDownSpeed(nil) = (%v, %v), want (nil, nil)", speed, err)
	}

	if _, err := DecodeSpinDownSpeed([]byte{0xE8, 0x03, 0xD0, 0x07, 0x00}); err == nil {
		t.Error("oversized spin down response decoded, want error")
	}
}
