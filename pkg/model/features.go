package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Features is the output of a preprocessor transform for a single row.
// It is either a *SparseVector or a *mat.VecDense.
type Features interface {
	Len() int
}

// SparseVector stores the non-zero entries of one encoded row.
type SparseVector struct {
	Dim     int
	Indices []int
	Values  []float64
}

func (s *SparseVector) Len() int {
	return s.Dim
}

// NNZ returns the number of stored entries.
func (s *SparseVector) NNZ() int {
	return len(s.Indices)
}

// ToDense expands the stored entries into a dense vector of length Dim.
func (s *SparseVector) ToDense() *mat.VecDense {
	data := make([]float64, s.Dim)
	for i, idx := range s.Indices {
		data[idx] += s.Values[i]
	}
	return mat.NewVecDense(s.Dim, data)
}

// Densify returns a dense view of f. Dense inputs are returned unchanged.
func Densify(f Features) (*mat.VecDense, error) {
	switch v := f.(type) {
	case *SparseVector:
		return v.ToDense(), nil
	case *mat.VecDense:
		return v, nil
	case nil:
		return nil, fmt.Errorf("densify: nil features")
	default:
		return nil, fmt.Errorf("densify: unsupported features type %T", f)
	}
}
