// Package tensorutils provides utilities for working with dense
// tensors
package tensorutils

import (
	"fmt"

	"gorgonia.org/tensor"
)

// Slice implements a struct that can be used for slicing tensors.
//
// Given a tensor T and a Slice S, T.Slice(..., S, ...) is equivalent to
// T[..., S.start:S.end:S.step, ...]
type Slice struct {
	start, end, step int
}

// Start returns the start index for the tensor slice
func (s Slice) Start() int {
	return s.start
}

// End returns the ending index for the tensor slice
func (s Slice) End() int {
	return s.end
}

// Step returns the step for the tensor slice
func (s Slice) Step() int {
	return s.step
}

// NewSlice returns a new Slice that can be used to slice tensors
func NewSlice(start, stop, step int) Slice {
	return Slice{start, stop, step}
}

// Float64s returns the data of t as a []float64, converting the
// backing data if needed. The returned slice is freshly allocated
// unless t is already backed by a []float64, in which case the
// backing slice itself is returned.
func Float64s(t *tensor.Dense) ([]float64, error) {
	switch data := t.Data().(type) {
	case []float64:
		return data, nil
	case []float32:
		out := make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
		return out, nil
	case []uint8:
		out := make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
		return out, nil
	case []int:
		out := make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
		return out, nil
	case float64:
		return []float64{data}, nil
	default:
		return nil, fmt.Errorf("float64s: cannot convert backing data of "+
			"type %T", data)
	}
}

// Float32s returns the data of t as a []float32, converting the
// backing data if needed. The returned slice is freshly allocated
// unless t is already backed by a []float32, in which case the
// backing slice itself is returned.
func Float32s(t *tensor.Dense) ([]float32, error) {
	switch data := t.Data().(type) {
	case []float32:
		return data, nil
	case []float64:
		out := make([]float32, len(data))
		for i, v := range data {
			out[i] = float32(v)
		}
		return out, nil
	case []uint8:
		out := make([]float32, len(data))
		for i, v := range data {
			out[i] = float32(v)
		}
		return out, nil
	case []int:
		out := make([]float32, len(data))
		for i, v := range data {
			out[i] = float32(v)
		}
		return out, nil
	case float32:
		return []float32{data}, nil
	default:
		return nil, fmt.Errorf("float32s: cannot convert backing data of "+
			"type %T", data)
	}
}

// Ints returns the data of t as a []int, truncating floating point
// backing data if needed. The returned slice is freshly allocated
// unless t is already backed by a []int, in which case the backing
// slice itself is returned.
func Ints(t *tensor.Dense) ([]int, error) {
	switch data := t.Data().(type) {
	case []int:
		return data, nil
	case []float64:
		out := make([]int, len(data))
		for i, v := range data {
			out[i] = int(v)
		}
		return out, nil
	case []float32:
		out := make([]int, len(data))
		for i, v := range data {
			out[i] = int(v)
		}
		return out, nil
	case []uint8:
		out := make([]int, len(data))
		for i, v := range data {
			out[i] = int(v)
		}
		return out, nil
	case float64:
		return []int{int(data)}, nil
	case int:
		return []int{data}, nil
	default:
		return nil, fmt.Errorf("ints: cannot convert backing data of "+
			"type %T", data)
	}
}

// SetRow copies the data of row into row i of the batch tensor. The
// size of row must equal the size of a single batch row, and the two
// tensors must share a data type.
func SetRow(batch, row *tensor.Dense, i int) error {
	rows := batch.Shape()[0]
	if i < 0 || i >= rows {
		return fmt.Errorf("setRow: index %d out of range [0, %d)", i, rows)
	}

	size := batch.Shape().TotalSize() / rows
	if rowSize := row.Shape().TotalSize(); rowSize != size {
		return fmt.Errorf("setRow: row size %d does not match batch row "+
			"size %d", rowSize, size)
	}

	switch data := batch.Data().(type) {
	case []float64:
		src, ok := row.Data().([]float64)
		if !ok {
			return fmt.Errorf("setRow: batch and row have differing types")
		}
		copy(data[i*size:(i+1)*size], src)
	case []float32:
		src, ok := row.Data().([]float32)
		if !ok {
			return fmt.Errorf("setRow: batch and row have differing types")
		}
		copy(data[i*size:(i+1)*size], src)
	case []uint8:
		src, ok := row.Data().([]uint8)
		if !ok {
			return fmt.Errorf("setRow: batch and row have differing types")
		}
		copy(data[i*size:(i+1)*size], src)
	case []int:
		src, ok := row.Data().([]int)
		if !ok {
			return fmt.Errorf("setRow: batch and row have differing types")
		}
		copy(data[i*size:(i+1)*size], src)
	default:
		return fmt.Errorf("setRow: cannot copy backing data of type %T", data)
	}
	return nil
}
