// Package transition defines the value types exchanged between the
// host application and the learning engine: interaction states, the
// actions the engine can recommend, and the rewarded transitions that
// drive learning.
package transition

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
)

// ActionType denotes the kind of assistant action the engine can
// recommend. The set is closed; Types returns every member in its
// canonical order.
type ActionType int

const (
	Generate ActionType = iota
	Reason
	Retrieve
	Summarize
	Clarify
)

func (a ActionType) String() string {
	switch a {
	case Generate:
		return "generate"
	case Reason:
		return "reason"
	case Retrieve:
		return "retrieve"
	case Summarize:
		return "summarize"
	default:
		return "clarify"
	}
}

// Types returns every ActionType in canonical order. Ties between
// equally valued actions are always broken in favour of the earlier
// entry of this slice.
func Types() []ActionType {
	return []ActionType{Generate, Reason, Retrieve, Summarize, Clarify}
}

// State describes a single raw interaction state. A State is immutable
// once constructed.
//
// Features may carry a precomputed feature vector. When non-empty it
// is used as-is by the feature extractor, overriding derivation from
// Context and Environment.
type State struct {
	SessionID   string
	Context     string
	Environment map[string]interface{}
	Features    mat.Vector
}

// Action is a recommendation produced by the engine. An Action is
// immutable.
type Action struct {
	Type       ActionType
	Parameters map[string]interface{}
	Tool       string
}

// Experience is one observed (state, action, reward, next-state)
// transition. Experiences are immutable once recorded and are owned
// by the replay buffer after insertion.
type Experience struct {
	ID        string
	State     State
	Action    Action
	Reward    float64
	NextState State
	Timestamp time.Time
	Metadata  map[string]interface{}
}

// NewExperience packages a transition into an Experience, assigning it
// a unique id and the current timestamp.
func NewExperience(state State, action Action, reward float64,
	nextState State, metadata map[string]interface{}) Experience {

	return Experience{
		ID:        uuid.NewString(),
		State:     state,
		Action:    action,
		Reward:    reward,
		NextState: nextState,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}
}

func (e Experience) String() string {
	return fmt.Sprintf("Experience | Action: %v  |  Reward:  %.2f",
		e.Action.Type, e.Reward)
}
