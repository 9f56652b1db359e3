package serializer

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestParseNum(t *testing.T) {
	tests := []struct {
		format  string
		size    int
		factor  float64
		signed  bool
		wantErr bool
	}{
		{format: "u1", size: 1},
		{format: "u2", size: 2},
		{format: "u3", size: 3},
		{format: "u4", size: 4},
		{format: "s2", size: 2, signed: true},
		{format: "u2.01", size: 2, factor: 0.01},
		{format: "s2.1", size: 2, factor: 0.1, signed: true},
		{format: "u2.5", size: 2, factor: 0.5},
		{format: "u1.0001", size: 1, factor: 0.0001},
		{format: "s2.001", size: 2, factor: 0.001, signed: true},
		{format: "", wantErr: true},
		{format: "x2", wantErr: true},
		{format: "u0", wantErr: true},
		{format: "u5", wantErr: true},
		{format: "u2.", wantErr: true},
		{format: "u2.x", wantErr: true},
		{format: "u2,1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			n, err := ParseNum(tt.format)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseNum(%q) succeeded, want error", tt.format)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseNum(%q) failed: %v", tt.format, err)
			}
			if n.size != tt.size || n.factor != tt.factor || n.signed != tt.signed {
				t.Errorf("ParseNum(%q) = {size:%d factor:%v signed:%v}, want {size:%d factor:%v signed:%v}",
					tt.format, n.size, n.factor, n.signed, tt.size, tt.factor, tt.signed)
			}
		})
	}
}

func TestNumEncodeDecode(t *testing.T) {
	tests := []struct {
		name   string
		format string
		value  any
		wire   []byte
	}{
		{name: "u2 plain", format: "u2", value: int64(128), wire: []byte{0x80, 0x00}},
		{name: "s2.1 negative", format: "s2.1", value: -12.8, wire: []byte{0x80, 0xFF}},
		{name: "u2 absent", format: "u2", value: nil, wire: []byte{0xFF, 0xFF}},
		{name: "s2 absent", format: "s2", value: nil, wire: []byte{0xFF, 0x7F}},
		{name: "u2.1 absent", format: "u2.1", value: nil, wire: []byte{0xFF, 0xFF}},
		{name: "u2.01 speed", format: "u2.01", value: 1.05, wire: []byte{0x69, 0x00}},
		{name: "u1 byte", format: "u1", value: int64(60), wire: []byte{0x3C}},
		{name: "u3 distance", format: "u3", value: int64(0x010203), wire: []byte{0x03, 0x02, 0x01}},
		{name: "s2 negative power", format: "s2", value: int64(-100), wire: []byte{0x9C, 0xFF}},
		{name: "u2.5 cadence", format: "u2.5", value: 90.5, wire: []byte{0xB5, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := MustNum(tt.format)

			var w bytes.Buffer
			if err := n.Encode(&w, tt.value); err != nil {
				t.Fatalf("Encode(%v) failed: %v", tt.value, err)
			}
			if !bytes.Equal(w.Bytes(), tt.wire) {
				t.Fatalf("Encode(%v) = %#x, want %#x", tt.value, w.Bytes(), tt.wire)
			}
			if w.Len() != n.Size() {
				t.Errorf("Encode wrote %d bytes, want %d", w.Len(), n.Size())
			}

			got, err := n.Decode(bytes.NewReader(tt.wire))
			if err != nil {
				t.Fatalf("Decode(%#x) failed: %v", tt.wire, err)
			}
			if got != tt.value {
				t.Errorf("Decode(%#x) = %v, want %v", tt.wire, got, tt.value)
			}
		})
	}
}

func TestNumRoundTrip(t *testing.T) {
	tests := []struct {
		format string
		values []any
	}{
		{format: "u1", values: []any{int64(0), int64(1), int64(254), nil}},
		{format: "u2", values: []any{int64(0), int64(128), int64(65534), nil}},
		{format: "s2", values: []any{int64(-32768), int64(-1), int64(0), int64(32766), nil}},
		{format: "u2.01", values: []any{0.0, 0.01, 1.05, 655.34, nil}},
		{format: "s2.1", values: []any{-3276.8, -12.8, 0.0, 12.5, nil}},
		{format: "u1.0001", values: []any{0.0, 0.0025, 0.0128, nil}},
	}

	for _, tt := range tests {
		n := MustNum(tt.format)
		for _, v := range tt.values {
			var w bytes.Buffer
			if err := n.Encode(&w, v); err != nil {
				t.Errorf("%s: Encode(%v) failed: %v", tt.format, v, err)
				continue
			}
			got, err := n.Decode(bytes.NewReader(w.Bytes()))
			if err != nil {
				t.Errorf("%s: Decode(%#x) failed: %v", tt.format, w.Bytes(), err)
				continue
			}
			if got != v {
				t.Errorf("%s: round trip %v -> %#x -> %v", tt.format, v, w.Bytes(), got)
			}
		}
	}
}

func TestNumDecodeShort(t *testing.T) {
	n := MustNum("u2")
	if _, err := n.Decode(bytes.NewReader([]byte{0x01})); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Decode of short stream = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestNumEncodeOutOfRange(t *testing.T) {
	tests := []struct {
		format string
		value  any
	}{
		{format: "u1", value: int64(256)},
		{format: "u1", value: int64(-1)},
		{format: "s2", value: int64(32768)},
		{format: "u2.01", value: 700.0},
	}

	for _, tt := range tests {
		n := MustNum(tt.format)
		var w bytes.Buffer
		if err := n.Encode(&w, tt.value); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("%s: Encode(%v) = %v, want ErrInvalidFormat", tt.format, tt.value, err)
		}
	}
}
