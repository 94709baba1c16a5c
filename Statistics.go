package adaptive

// PolicySummary is a snapshot of the active policy's identity and
// performance.
type PolicySummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Version       string  `json:"version"`
	UpdateCount   int     `json:"updateCount"`
	AverageReward float64 `json:"averageReward"`
	SuccessRate   float64 `json:"successRate"`
}

// Statistics is a snapshot of the engine's learning progress.
type Statistics struct {
	EpisodeCount    int           `json:"episodeCount"`
	TotalReward     float64       `json:"totalReward"`
	BufferSize      int           `json:"bufferSize"`
	PolicyCount     int           `json:"policiesCount"`
	ExplorationRate float64       `json:"explorationRate"`
	CurrentPolicy   PolicySummary `json:"currentPolicy"`
}

// Statistics returns a snapshot of the engine's learning progress and
// a summary of the active policy.
func (e *Engine) Statistics() Statistics {
	e.mu.RLock()
	defer e.mu.RUnlock()

	stats := Statistics{
		EpisodeCount:    e.learner.Episodes(),
		TotalReward:     e.learner.TotalReward(),
		BufferSize:      e.buffer.Len(),
		PolicyCount:     e.registry.Len(),
		ExplorationRate: e.config.ExplorationRate,
	}

	if active := e.registry.Active(); active != nil {
		stats.CurrentPolicy = PolicySummary{
			ID:            active.ID,
			Name:          active.Name,
			Version:       active.Version,
			UpdateCount:   active.Metrics.UpdateCount,
			AverageReward: active.Metrics.AverageReward,
			SuccessRate:   active.Metrics.SuccessRate,
		}
	}

	return stats
}
