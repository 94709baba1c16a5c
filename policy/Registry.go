package policy

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yyc3/adaptive/utils/matutils/initializers/weights"
)

const (
	// DefaultName is the name of the policy created at registry
	// initialization.
	DefaultName string = "default"

	// Newly created policies draw their weights uniformly from
	// [initLow, initHigh).
	initLow  float64 = 0.0
	initHigh float64 = 0.01
)

// Registry holds every known policy and tracks which one is active
// for action selection. Distinct ids are always distinct entries; the
// registry never merges policies.
type Registry struct {
	policies map[string]*Policy

	// order records ids in first-seen order. Ranking ties are broken
	// in favour of the earlier id.
	order []string

	activeID string
	initDist distuv.Uniform
}

// NewRegistry creates a registry holding a single active default
// policy whose weights are drawn from the seeded uniform initializer.
func NewRegistry(seed uint64) *Registry {
	r := &Registry{
		policies: make(map[string]*Policy),
		initDist: distuv.Uniform{
			Min: initLow,
			Max: initHigh,
			Src: rand.NewSource(seed),
		},
	}

	defaultPolicy := r.Create(DefaultName)
	r.activeID = defaultPolicy.ID

	return r
}

// Create creates, registers, and returns a new policy with randomly
// initialized weights. The new policy does not become active.
func (r *Registry) Create(name string) *Policy {
	p := New(name, weights.NewLinearUV(r.initDist))
	r.register(p)
	return p
}

// register inserts a policy, tracking first-seen order for ids not
// seen before.
func (r *Registry) register(p *Policy) {
	if _, seen := r.policies[p.ID]; !seen {
		r.order = append(r.order, p.ID)
	}
	r.policies[p.ID] = p
}

// Get returns the policy with the argument id.
func (r *Registry) Get(id string) (*Policy, bool) {
	p, ok := r.policies[id]
	return p, ok
}

// Active returns the policy currently used for action selection, or
// nil if none is active.
func (r *Registry) Active() *Policy {
	return r.policies[r.activeID]
}

// SwitchActive makes the policy with the argument id active. If the id
// is unknown the call is a no-op and false is returned.
func (r *Registry) SwitchActive(id string) bool {
	if _, ok := r.policies[id]; !ok {
		return false
	}

	r.activeID = id
	return true
}

// Best returns the policy with the highest composite score, or nil if
// the registry is empty. Ties are broken by first-seen order.
func (r *Registry) Best() *Policy {
	var best *Policy
	for _, id := range r.order {
		p := r.policies[id]
		if best == nil || p.Score() > best.Score() {
			best = p
		}
	}
	return best
}

// Transfer creates a new policy for a different task by scaling every
// weight of the source policy by adaptationRate. The new policy has a
// fresh id, zeroed metrics, and is registered under targetName. The
// source policy is neither consulted further nor altered.
func (r *Registry) Transfer(sourceID, targetName string,
	adaptationRate float64) (*Policy, error) {

	source, ok := r.policies[sourceID]
	if !ok {
		return nil, &Error{Op: "transfer", Err: ErrNotFound}
	}

	p := New(targetName, weights.NewLinearUV(weights.NewZeroUV()))
	p.Weights().ScaleVec(adaptationRate, source.Weights())

	r.register(p)
	return p, nil
}

// Import registers a policy as-is, overwriting any existing entry with
// the same id.
func (r *Registry) Import(p *Policy) {
	r.register(p)
}

// Export returns a deep copy of the policy with the argument id, or
// nil if the id is unknown.
func (r *Registry) Export(id string) *Policy {
	p, ok := r.policies[id]
	if !ok {
		return nil
	}
	return p.Clone()
}

// SetWeights replaces the weights of the policy with the argument id.
// This is the registry's explicit weight-set operation; the only other
// weight mutation paths are gradient application and transfer.
func (r *Registry) SetWeights(id string, w *mat.VecDense) error {
	p, ok := r.policies[id]
	if !ok {
		return &Error{Op: "setweights", Err: ErrNotFound}
	}
	return p.SetWeights(w)
}

// Len returns the number of registered policies.
func (r *Registry) Len() int {
	return len(r.policies)
}

// Policies returns every registered policy in first-seen order.
func (r *Registry) Policies() []*Policy {
	all := make([]*Policy, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.policies[id])
	}
	return all
}
