// Package adaptive implements an online policy-learning engine for an
// assistant feature: an experience-replay reinforcement-learning loop
// with linear value approximation, epsilon-greedy exploration, and
// cross-task weight transfer.
//
// The Engine owns a policy registry, a bounded experience replay
// buffer, and the learning configuration. It is safe for concurrent
// use: mutating operations are serialized under a single mutex per
// Engine, and read-only operations may run concurrently with each
// other. No operation performs I/O or blocks on external resources.
package adaptive

import (
	"sync"

	"github.com/yyc3/adaptive/expreplay"
	"github.com/yyc3/adaptive/learner"
	"github.com/yyc3/adaptive/policy"
	"github.com/yyc3/adaptive/trackers"
	"github.com/yyc3/adaptive/transition"
)

// Config configures the learning behaviour of an Engine. See
// learner.DefaultConfig for the default values.
type Config = learner.Config

// DefaultConfig returns the default learning configuration.
func DefaultConfig() Config {
	return learner.DefaultConfig()
}

// Engine is the public surface of the policy-learning core. Create
// one with New and share it by pointer; the zero value is not usable.
type Engine struct {
	mu sync.RWMutex

	config   Config
	registry *policy.Registry
	buffer   *expreplay.Buffer
	learner  *learner.Learner
	trackers []trackers.Tracker

	// initial is the configuration the Engine was created with, kept
	// so Reset can restore the starting exploration rate.
	initial Config
	seed    uint64
}

// New creates an Engine with the argument configuration and seed. The
// registry starts with a single active default policy.
func New(config Config, seed uint64) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	buffer, err := expreplay.New(config.BufferSize, seed)
	if err != nil {
		return nil, err
	}

	registry := policy.NewRegistry(seed)
	e := &Engine{
		config:   config,
		registry: registry,
		buffer:   buffer,
		initial:  config,
		seed:     seed,
	}
	e.learner = learner.New(registry, buffer, &e.config, seed)

	return e, nil
}

// SelectAction chooses an action for a state under the epsilon-greedy
// rule of the active policy.
func (e *Engine) SelectAction(s transition.State) transition.Action {
	// Action selection consumes the learner's random stream, so it
	// takes the write lock even though it never touches weights.
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.learner.SelectAction(s)
}

// RecordExperience stores an observed transition. Every
// UpdateFrequency-th record triggers an update cycle against the
// active policy.
func (e *Engine) RecordExperience(exp transition.Experience) {
	e.mu.Lock()
	defer e.mu.Unlock()

	before := e.learner.Episodes()
	e.learner.RecordExperience(exp)

	if e.learner.Episodes() != before {
		e.notifyTrackers()
	}
}

// notifyTrackers reports the active policy's fresh average reward to
// every registered tracker after a completed update cycle.
func (e *Engine) notifyTrackers() {
	active := e.registry.Active()
	if active == nil {
		return
	}
	for _, t := range e.trackers {
		t.Track(active.Metrics.AverageReward)
	}
}

// EvaluateState returns the active policy's estimated value of a
// state.
func (e *Engine) EvaluateState(s transition.State) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.learner.EvaluateState(s)
}

// CreatePolicy creates and registers a new policy with randomly
// initialized weights. The new policy does not become active.
func (e *Engine) CreatePolicy(name string) *policy.Policy {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.registry.Create(name)
}

// SwitchPolicy makes the policy with the argument id active for
// action selection. Unknown ids are a no-op returning false.
func (e *Engine) SwitchPolicy(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.registry.SwitchActive(id)
}

// BestPolicy returns the registered policy with the highest composite
// score, or nil when the registry is empty.
func (e *Engine) BestPolicy() *policy.Policy {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.registry.Best()
}

// ComparePolicies compares two registered policies metric by metric.
// It returns a policy.ErrNotFound error if either id is unknown.
func (e *Engine) ComparePolicies(idA, idB string) (policy.Comparison, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.registry.Compare(idA, idB)
}

// TransferKnowledge creates a new policy whose weights are the source
// policy's scaled by adaptationRate, registered under targetName with
// zeroed metrics. It returns a policy.ErrNotFound error if the source
// id is unknown.
func (e *Engine) TransferKnowledge(sourceID, targetName string,
	adaptationRate float64) (*policy.Policy, error) {

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.registry.Transfer(sourceID, targetName, adaptationRate)
}

// FineTunePolicy runs supervised epochs of the TD update over the
// supplied experiences against the policy with the argument id, which
// becomes active. It returns a policy.ErrNotFound error if the id is
// unknown.
func (e *Engine) FineTunePolicy(id string,
	experiences []transition.Experience, epochs int) error {

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.learner.FineTune(id, experiences, epochs)
}

// ExportPolicy returns a deep copy of the policy with the argument id,
// or nil if the id is unknown. Persistence of the copy is the host's
// responsibility.
func (e *Engine) ExportPolicy(id string) *policy.Policy {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.registry.Export(id)
}

// ImportPolicy registers a policy as-is, overwriting any existing
// entry with the same id.
func (e *Engine) ImportPolicy(p *policy.Policy) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.registry.Import(p)
}

// RegisterTracker registers a tracker to be notified after every
// completed update cycle.
func (e *Engine) RegisterTracker(t trackers.Tracker) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.trackers = append(e.trackers, t)
}

// Reset clears the replay buffer and the registry, reinitializes a
// fresh active default policy, and restores the initial learning
// configuration.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.config = e.initial
	e.buffer.Clear()
	e.registry = policy.NewRegistry(e.seed)
	e.learner = learner.New(e.registry, e.buffer, &e.config, e.seed)
}
