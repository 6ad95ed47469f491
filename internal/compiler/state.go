package compiler

import (
	"fmt"
	"slices"
)

// State is a compiler lifecycle state.
type State string

const (
	StateIdle                State = "idle"
	StateScanning            State = "scanning"
	StateProcessingFiles     State = "processing_files"
	StateAggregating         State = "aggregating"
	StateGeneratingArtifacts State = "generating_artifacts"
	StateWriting             State = "writing"
	StateDone                State = "done"
	StateFailed              State = "failed"
)

var transitions = map[State][]State{
	StateIdle:                {StateScanning},
	StateScanning:            {StateProcessingFiles},
	StateProcessingFiles:     {StateAggregating},
	StateAggregating:         {StateGeneratingArtifacts},
	StateGeneratingArtifacts: {StateWriting},
	StateWriting:             {StateDone},
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool { return s == StateDone || s == StateFailed }

// CanTransition reports whether to may follow s.
func (s State) CanTransition(to State) bool {
	if s.Terminal() {
		return false
	}
	if to == StateFailed {
		return true
	}
	return slices.Contains(transitions[s], to)
}

// TransitionError reports an illegal state change.
type TransitionError struct {
	From, To State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal compiler transition %s -> %s", e.From, e.To)
}
