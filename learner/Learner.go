// Package learner implements the policy learner: epsilon-greedy
// action selection, the temporal-difference update over sampled
// batches, exploration-rate decay, performance-metric refresh, and
// supervised fine-tuning.
package learner

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yyc3/adaptive/expreplay"
	"github.com/yyc3/adaptive/features"
	"github.com/yyc3/adaptive/policy"
	"github.com/yyc3/adaptive/transition"
	"github.com/yyc3/adaptive/utils/floatutils"
	"github.com/yyc3/adaptive/utils/matutils"
)

const (
	// metricsWindow is the number of most recent experiences over
	// which the success rate and windowed reward are computed.
	metricsWindow int = 100

	// warmUpEpisodes is the number of completed update cycles before
	// the improvement rate starts being computed.
	warmUpEpisodes int = 10
)

// actionBonuses are fixed per-type priors added to a state's estimated
// value when ranking candidate actions, reflecting the relative
// utility of each action kind before any learning has occurred.
var actionBonuses = map[transition.ActionType]float64{
	transition.Generate:  0.05,
	transition.Reason:    0.04,
	transition.Retrieve:  0.03,
	transition.Summarize: 0.02,
	transition.Clarify:   0.01,
}

// Learner drives the online learning loop against the registry's
// active policy. All mutating methods must be serialized by the owner;
// the Learner itself performs no locking.
type Learner struct {
	registry *policy.Registry
	buffer   *expreplay.Buffer
	config   *Config

	src rand.Source
	rng *rand.Rand

	episodes    int
	totalReward float64
	recorded    int
}

// New creates a Learner operating on the argument registry and replay
// buffer. The config is shared with the caller so that exploration
// decay is externally observable.
func New(registry *policy.Registry, buffer *expreplay.Buffer,
	config *Config, seed uint64) *Learner {

	src := rand.NewSource(seed)
	return &Learner{
		registry: registry,
		buffer:   buffer,
		config:   config,
		src:      src,
		rng:      rand.New(src),
	}
}

// SelectAction chooses an action for a state with an epsilon-greedy
// rule: with probability ExplorationRate a uniformly random action
// type is returned; otherwise the action type maximizing the estimated
// state value plus its prior bonus wins, with ties broken in canonical
// order. When no policy is active the learner falls back to
// exploration.
func (l *Learner) SelectAction(s transition.State) transition.Action {
	if l.rng.Float64() < l.config.ExplorationRate {
		return l.explore()
	}

	active := l.registry.Active()
	if active == nil {
		return l.explore()
	}

	stateValue := active.Value(features.Extract(s))

	types := transition.Types()
	actionValues := mat.NewVecDense(len(types), nil)
	for i, actionType := range types {
		actionValues.SetVec(i, stateValue+actionBonuses[actionType])
	}

	greedyAction := matutils.MaxVec(actionValues)
	return transition.Action{
		Type:       types[greedyAction],
		Parameters: map[string]interface{}{},
	}
}

// explore picks uniformly among the action types with empty
// parameters.
func (l *Learner) explore() transition.Action {
	types := transition.Types()

	probabilities := make([]float64, len(types))
	for i := range probabilities {
		probabilities[i] = 1.0 / float64(len(types))
	}
	dist := distuv.NewCategorical(probabilities, l.src)

	return transition.Action{
		Type:       types[int(dist.Rand())],
		Parameters: map[string]interface{}{},
	}
}

// EvaluateState returns the active policy's estimated value of a
// state, or 0 when no policy is active.
func (l *Learner) EvaluateState(s transition.State) float64 {
	active := l.registry.Active()
	if active == nil {
		return 0
	}
	return active.Value(features.Extract(s))
}

// RecordExperience appends an experience to the replay buffer and
// accumulates its reward. Every UpdateFrequency-th experience, by
// buffer-length modulo, triggers an update cycle.
func (l *Learner) RecordExperience(e transition.Experience) {
	l.buffer.Add(e)
	l.totalReward += e.Reward
	l.recorded++

	if l.buffer.Len()%l.config.UpdateFrequency == 0 {
		l.update()
	}
}

// update runs one cycle of the online loop: sample a batch, compute
// every TD error against the pre-update weights, apply the summed
// gradient to the active policy, refresh its metrics, decay the
// exploration rate, and count the episode. An empty buffer or a
// missing active policy makes the cycle a no-op.
func (l *Learner) update() {
	active := l.registry.Active()
	if active == nil || l.buffer.Len() == 0 {
		return
	}

	batch := l.buffer.Sample(l.config.BatchSize)
	active.ApplyGradient(l.gradient(active, batch))
	l.refreshMetrics(active)

	l.config.ExplorationRate = floatutils.ClipInterval(
		l.config.ExplorationRate*l.config.ExplorationDecay,
		r1.Interval{Min: l.config.MinExploration, Max: 1.0},
	)
	l.episodes++
}

// gradient accumulates the TD gradient of a batch against a policy's
// current weights. For each transition the TD error is
// reward + discount*V(nextState) - V(state), and every feature index
// accumulates learningRate * tdError * feature. Gradients are summed
// over the batch, not averaged, so the effective step size scales with
// the batch size. Nothing here mutates the policy, so all TD errors in
// the batch see the same pre-update weights.
func (l *Learner) gradient(p *policy.Policy,
	batch []transition.Experience) *mat.VecDense {

	grad := mat.NewVecDense(features.Length, nil)
	for _, e := range batch {
		stateFeatures := features.Extract(e.State)
		nextFeatures := features.Extract(e.NextState)

		tdError := e.Reward +
			l.config.DiscountFactor*p.Value(nextFeatures) -
			p.Value(stateFeatures)

		grad.AddScaledVec(grad, l.config.LearningRate*tdError,
			stateFeatures)
	}
	return grad
}

// refreshMetrics recomputes a policy's performance statistics. The
// success rate and windowed reward come from the most recent
// metricsWindow experiences; the average reward is cumulative over
// everything ever recorded. The improvement rate compares the
// previously recorded average against the fresh windowed average and
// is only computed once past the warm-up episode count.
func (l *Learner) refreshMetrics(p *policy.Policy) {
	recent := l.buffer.Recent(metricsWindow)

	var positive int
	rewards := make([]float64, len(recent))
	for i, e := range recent {
		rewards[i] = e.Reward
		if e.Reward > 0 {
			positive++
		}
	}

	previousAverage := p.Metrics.AverageReward

	p.Metrics.TotalReward = l.totalReward
	if l.recorded > 0 {
		p.Metrics.AverageReward = l.totalReward / float64(l.recorded)
	}
	if len(recent) > 0 {
		p.Metrics.SuccessRate = float64(positive) / float64(len(recent))
	}

	if l.episodes >= warmUpEpisodes && previousAverage != 0 {
		windowed := stat.Mean(rewards, nil)
		p.Metrics.ImprovementRate = (windowed - previousAverage) /
			math.Abs(previousAverage) * 100.0
	}
}

// FineTune runs supervised epochs of the TD update over the supplied
// experiences against the policy with the argument id, which becomes
// active. Each epoch reshuffles the experience list and processes it
// in consecutive batches of BatchSize, including a trailing short
// batch. Metrics are refreshed once after all epochs complete.
func (l *Learner) FineTune(id string,
	experiences []transition.Experience, epochs int) error {

	p, ok := l.registry.Get(id)
	if !ok {
		return &policy.Error{Op: "finetune", Err: policy.ErrNotFound}
	}
	l.registry.SwitchActive(id)

	work := make([]transition.Experience, len(experiences))
	copy(work, experiences)

	for epoch := 0; epoch < epochs; epoch++ {
		l.rng.Shuffle(len(work), func(i, j int) {
			work[i], work[j] = work[j], work[i]
		})

		for start := 0; start < len(work); start += l.config.BatchSize {
			end := start + l.config.BatchSize
			if end > len(work) {
				end = len(work)
			}
			p.ApplyGradient(l.gradient(p, work[start:end]))
		}
	}

	l.refreshMetrics(p)
	return nil
}

// Episodes returns the number of completed update cycles.
func (l *Learner) Episodes() int {
	return l.episodes
}

// TotalReward returns the cumulative reward over every recorded
// experience.
func (l *Learner) TotalReward() float64 {
	return l.totalReward
}

// Recorded returns the total number of experiences ever recorded,
// including ones since evicted from the buffer.
func (l *Learner) Recorded() int {
	return l.recorded
}
