package dsl

import "github.com/inkforge/inkforge/pkg/domain"

// SceneBuilder provides a fluent API for appending nodes to a scene.
type SceneBuilder struct {
	scene   *domain.Scene
	builder *Builder
}

// Text appends a markdown text node.
func (s *SceneBuilder) Text(content string) *SceneBuilder {
	s.scene.Nodes = append(s.scene.Nodes, domain.SceneNode{
		Type:    domain.NodeText,
		Content: content,
	})
	return s
}

// Image appends a static image node.
func (s *SceneBuilder) Image(url string) *SceneBuilder {
	s.scene.Nodes = append(s.scene.Nodes, domain.SceneNode{
		Type: domain.NodeStaticImage,
		URL:  url,
	})
	return s
}

// AIImage appends a prompt-driven image node.
func (s *SceneBuilder) AIImage(prompt string, characters ...string) *SceneBuilder {
	s.scene.Nodes = append(s.scene.Nodes, domain.SceneNode{
		Type:       domain.NodeAIImage,
		Prompt:     prompt,
		Characters: characters,
	})
	return s
}

// Audio appends a static audio node.
func (s *SceneBuilder) Audio(url, audioType string) *SceneBuilder {
	s.scene.Nodes = append(s.scene.Nodes, domain.SceneNode{
		Type:      domain.NodeStaticAudio,
		URL:       url,
		AudioType: audioType,
	})
	return s
}

// Minigame appends a minigame reference node.
func (s *SceneBuilder) Minigame(ref string, config map[string]any) *SceneBuilder {
	s.scene.Nodes = append(s.scene.Nodes, domain.SceneNode{
		Type:   domain.NodeMinigame,
		Ref:    ref,
		Config: config,
	})
	return s
}

// ChoiceOption configures a choice node.
type ChoiceOption func(*domain.SceneNode)

// If guards the choice with a condition.
func If(condition string) ChoiceOption {
	return func(n *domain.SceneNode) {
		n.Condition = condition
	}
}

// Set attaches a state mutation to the choice.
func Set(instruction string) ChoiceOption {
	return func(n *domain.SceneNode) {
		n.Set = instruction
	}
}

// Choice appends a choice node pointing at target.
func (s *SceneBuilder) Choice(text, target string, opts ...ChoiceOption) *SceneBuilder {
	node := domain.SceneNode{
		Type:        domain.NodeChoice,
		Text:        text,
		NextSceneID: target,
	}
	for _, opt := range opts {
		opt(&node)
	}
	s.scene.Nodes = append(s.scene.Nodes, node)
	return s
}

// End returns to the game builder.
func (s *SceneBuilder) End() *Builder {
	return s.builder
}
