package policy

// MetricComparison reports one performance metric for both compared
// policies. WinnerID is the id of the policy with the strictly higher
// value, or empty on a tie.
type MetricComparison struct {
	A        float64 `json:"a"`
	B        float64 `json:"b"`
	WinnerID string  `json:"winnerId,omitempty"`
}

// Comparison is the result of comparing two policies. WinnerID is
// decided by the same composite score that ranks policies in Best, so
// comparing (A, B) and (B, A) always reports the same winner.
type Comparison struct {
	WinnerID      string           `json:"winnerId"`
	AverageReward MetricComparison `json:"averageReward"`
	SuccessRate   MetricComparison `json:"successRate"`
}

// Compare compares two registered policies metric by metric. It
// returns a not-found error if either id is absent.
func (r *Registry) Compare(idA, idB string) (Comparison, error) {
	a, ok := r.policies[idA]
	if !ok {
		return Comparison{}, &Error{Op: "compare", Err: ErrNotFound}
	}
	b, ok := r.policies[idB]
	if !ok {
		return Comparison{}, &Error{Op: "compare", Err: ErrNotFound}
	}

	result := Comparison{
		AverageReward: compareMetric(a, b, a.Metrics.AverageReward,
			b.Metrics.AverageReward),
		SuccessRate: compareMetric(a, b, a.Metrics.SuccessRate,
			b.Metrics.SuccessRate),
	}

	// The overall winner uses the composite score. Exact score ties
	// fall back to first-seen order so that swapping the operands
	// cannot change the winner.
	switch {
	case a.Score() > b.Score():
		result.WinnerID = a.ID
	case b.Score() > a.Score():
		result.WinnerID = b.ID
	default:
		result.WinnerID = r.firstSeen(a.ID, b.ID)
	}

	return result, nil
}

func compareMetric(a, b *Policy, valueA, valueB float64) MetricComparison {
	comparison := MetricComparison{A: valueA, B: valueB}
	if valueA > valueB {
		comparison.WinnerID = a.ID
	} else if valueB > valueA {
		comparison.WinnerID = b.ID
	}
	return comparison
}

// firstSeen returns whichever of the two ids was registered first.
func (r *Registry) firstSeen(idA, idB string) string {
	for _, id := range r.order {
		if id == idA || id == idB {
			return id
		}
	}
	return idA
}
