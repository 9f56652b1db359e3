package serializer

import (
	"bytes"
	"fmt"
)

// List reads and writes a fixed number of identically-formatted elements.
// FTMS uses it for the heart-rate zone time arrays (1, 2, 3 or 5 × u2).
type List struct {
	elem Num
	n    int
}

// NewList builds a list serializer of n elements of the given format.
func NewList(elem Num, n int) List {
	if n <= 0 {
		panic("serializer: list length must be positive")
	}
	return List{elem: elem, n: n}
}

// Decode reads all elements. Absent elements decode as zero.
func (l List) Decode(r *bytes.Reader) (any, error) {
	out := make([]int64, l.n)
	for i := range out {
		v, err := l.elem.Decode(r)
		if err != nil {
			return nil, err
		}
		if x, ok := v.(int64); ok {
			out[i] = x
		}
	}
	return out, nil
}

// Encode writes all elements. The value must be an []int64 of exactly the
// configured length.
func (l List) Encode(w *bytes.Buffer, v any) error {
	values, ok := v.([]int64)
	if !ok || len(values) != l.n {
		return fmt.Errorf("%w: expected %d elements", ErrInvalidFormat, l.n)
	}
	for _, x := range values {
		if err := l.elem.Encode(w, x); err != nil {
			return err
		}
	}
	return nil
}

// Size returns the total encoded byte count.
func (l List) Size() int {
	return l.elem.Size() * l.n
}
