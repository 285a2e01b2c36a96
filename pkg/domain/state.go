package domain

// RuntimeState is the flat variable map the evaluator touches. Values are
// always scalars (bool, number, string), never VariableValue records.
type RuntimeState map[string]any

// Clone returns an independent copy. Mutating the copy never affects the
// original, which callers rely on for undo/history.
func (s RuntimeState) Clone() RuntimeState {
	next := make(RuntimeState, len(s))
	for k, v := range s {
		next[k] = v
	}
	return next
}

// State is the snapshot of one play session. A session's transitions must be
// serialized by the caller (see pkg/session); each transition produces a new
// State value rather than mutating the old one.
type State struct {
	// SessionID identifies the play session this state belongs to.
	SessionID string `json:"session_id,omitempty"`

	// CurrentSceneID is the scene the player is on.
	CurrentSceneID string `json:"current_scene_id"`

	// Vars holds the flattened runtime variables.
	Vars RuntimeState `json:"vars"`

	// History tracks the scene ids visited, in order.
	History []string `json:"history,omitempty"`

	// Terminated is set once the player reaches a scene with no choices.
	Terminated bool `json:"terminated,omitempty"`
}

// NewState creates a clean session state positioned at startSceneID.
func NewState(startSceneID string, initial map[string]VariableValue) *State {
	return &State{
		CurrentSceneID: startSceneID,
		Vars:           ExtractRuntimeState(initial),
		History:        []string{startSceneID},
	}
}

// Clone returns a copy with an independent variable map and history slice.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.Vars = s.Vars.Clone()
	next.History = append([]string(nil), s.History...)
	return &next
}
