// Package policy implements linear value policies and the registry
// that tracks them.
//
// A policy estimates the value of a state as the dot product of its
// weight vector with the state's feature vector. Policies are mutable
// only through gradient application, an explicit weight set, or
// transfer initialization; every other component treats them as
// read-only.
package policy

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/yyc3/adaptive/features"
	"github.com/yyc3/adaptive/utils/matutils"
	"github.com/yyc3/adaptive/utils/matutils/initializers/weights"
)

// Version is the version string stamped on newly created policies.
const Version string = "v1"

// Metrics holds the cumulative performance statistics of a policy.
type Metrics struct {
	TotalReward     float64 `json:"totalReward"`
	AverageReward   float64 `json:"averageReward"`
	SuccessRate     float64 `json:"successRate"`
	UpdateCount     int     `json:"updateCount"`
	ImprovementRate float64 `json:"improvementRate"`
}

// Policy is a named, versioned linear value model.
type Policy struct {
	ID        string
	Name      string
	Version   string
	Metrics   Metrics
	CreatedAt time.Time
	UpdatedAt time.Time

	weights *mat.VecDense
}

// New creates a policy with a fresh id and weights drawn from the
// argument initializer over all features.Length indices.
func New(name string, init weights.Initializer) *Policy {
	w := mat.NewVecDense(features.Length, nil)
	init.Initialize(w)

	now := time.Now()
	return &Policy{
		ID:        uuid.NewString(),
		Name:      name,
		Version:   Version,
		CreatedAt: now,
		UpdatedAt: now,
		weights:   w,
	}
}

// Value returns the estimated value of a feature vector under the
// policy: the dot product of the policy's weights with the features.
func (p *Policy) Value(featureVec mat.Vector) float64 {
	return mat.Dot(p.weights, featureVec)
}

// Weights returns the policy's weight vector. The returned vector is
// live; callers other than the learner must not modify it.
func (p *Policy) Weights() *mat.VecDense {
	return p.weights
}

// SetWeights replaces the policy's weights. The new weights must have
// exactly features.Length elements.
func (p *Policy) SetWeights(w *mat.VecDense) error {
	if w.Len() != features.Length {
		return fmt.Errorf("setweights: invalid length \n\twant(%v)"+
			"\n\thave(%v)", features.Length, w.Len())
	}

	p.weights = w
	p.UpdatedAt = time.Now()
	return nil
}

// ApplyGradient adds an accumulated gradient into the policy's weights
// and records the update. This is the only mutation path used by the
// online learning loop.
func (p *Policy) ApplyGradient(gradient *mat.VecDense) {
	p.weights.AddVec(p.weights, gradient)
	p.Metrics.UpdateCount++
	p.UpdatedAt = time.Now()
}

// Score is the composite ranking used to order policies: average
// reward scaled by success rate.
func (p *Policy) Score() float64 {
	return p.Metrics.AverageReward * p.Metrics.SuccessRate
}

// Clone returns a deep copy of the policy. Mutating the clone's
// weights never affects the original.
func (p *Policy) Clone() *Policy {
	clone := *p

	data := make([]float64, p.weights.Len())
	copy(data, p.weights.RawVector().Data)
	clone.weights = mat.NewVecDense(len(data), data)

	return &clone
}

// String returns the string representation of the policy.
func (p *Policy) String() string {
	baseStr := "Policy %v (%v) | Score: %v \nWeights: %v"
	return fmt.Sprintf(baseStr, p.Name, p.ID, p.Score(),
		matutils.Format(p.weights))
}

// policyJSON mirrors Policy with exported weights for serialization.
type policyJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	Weights   []float64 `json:"weights"`
	Metrics   Metrics   `json:"metrics"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MarshalJSON implements the json.Marshaler interface
func (p *Policy) MarshalJSON() ([]byte, error) {
	data := make([]float64, p.weights.Len())
	copy(data, p.weights.RawVector().Data)

	return json.Marshal(policyJSON{
		ID:        p.ID,
		Name:      p.Name,
		Version:   p.Version,
		Weights:   data,
		Metrics:   p.Metrics,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (p *Policy) UnmarshalJSON(data []byte) error {
	var record policyJSON
	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}

	values := make([]float64, features.Length)
	copy(values, record.Weights)

	p.ID = record.ID
	p.Name = record.Name
	p.Version = record.Version
	p.Metrics = record.Metrics
	p.CreatedAt = record.CreatedAt
	p.UpdatedAt = record.UpdatedAt
	p.weights = mat.NewVecDense(features.Length, values)
	return nil
}
