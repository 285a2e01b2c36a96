package domain

// Scene is a named, ordered sequence of nodes. Node order is significant:
// it is the order the player-facing renderer walks them.
type Scene struct {
	ID    string      `json:"id" yaml:"id"`
	Nodes []SceneNode `json:"nodes" yaml:"nodes"`
}

// Choices returns the choice nodes of the scene in authoring order.
func (s *Scene) Choices() []SceneNode {
	var out []SceneNode
	for _, n := range s.Nodes {
		if n.Type == NodeChoice {
			out = append(out, n)
		}
	}
	return out
}

// IsTerminal reports whether the scene offers no choices (a sink).
func (s *Scene) IsTerminal() bool {
	for _, n := range s.Nodes {
		if n.Type == NodeChoice {
			return false
		}
	}
	return true
}
