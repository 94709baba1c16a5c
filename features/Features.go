// Package features maps raw interaction states to fixed-length
// numeric feature vectors suitable for linear value approximation.
package features

import (
	"sort"

	"github.com/yyc3/adaptive/transition"
	"gonum.org/v1/gonum/mat"
)

// Length is the fixed dimensionality of every feature vector. Weight
// vectors and feature vectors must agree on this length so that
// feature indices stay aligned across value and gradient computation.
const Length int = 100

// Extract derives the feature vector of a state. If the state carries
// a non-empty precomputed vector, that vector wins and no derivation
// occurs. Otherwise the first element is the normalized context length
// and each environment value contributes one scalar: numeric values
// as-is, booleans as 1/0. Values of any other type are skipped.
//
// The result always has exactly Length elements; shorter derivations
// are zero-padded and longer ones truncated. Extract is pure and never
// fails.
func Extract(s transition.State) *mat.VecDense {
	if s.Features != nil && s.Features.Len() > 0 {
		return fit(rawValues(s.Features))
	}

	values := make([]float64, 0, Length)
	values = append(values, float64(len(s.Context))/1000.0)

	// Go randomizes map iteration, so environment keys are visited in
	// sorted order to keep extraction deterministic.
	keys := make([]string, 0, len(s.Environment))
	for key := range s.Environment {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch v := s.Environment[key].(type) {
		case float64:
			values = append(values, v)
		case float32:
			values = append(values, float64(v))
		case int:
			values = append(values, float64(v))
		case int64:
			values = append(values, float64(v))
		case bool:
			if v {
				values = append(values, 1.0)
			} else {
				values = append(values, 0.0)
			}
		}
	}

	return fit(values)
}

// fit pads or truncates values to exactly Length elements.
func fit(values []float64) *mat.VecDense {
	fitted := make([]float64, Length)
	copy(fitted, values)
	return mat.NewVecDense(Length, fitted)
}

// rawValues copies a mat.Vector into a plain slice.
func rawValues(v mat.Vector) []float64 {
	values := make([]float64, v.Len())
	for i := 0; i < v.Len(); i++ {
		values[i] = v.AtVec(i)
	}
	return values
}
