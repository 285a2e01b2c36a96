package dsl

import (
	"github.com/inkforge/inkforge/pkg/domain"
)

// Builder manages game construction.
type Builder struct {
	game *domain.Game
}

// New creates a new game builder.
func New(title string) *Builder {
	game := domain.NewGame()
	game.Title = title
	return &Builder{game: game}
}

// Description sets the game description.
func (b *Builder) Description(text string) *Builder {
	b.game.Description = text
	return b
}

// Tags appends tags.
func (b *Builder) Tags(tags ...string) *Builder {
	b.game.Tags = append(b.game.Tags, tags...)
	return b
}

// Published marks the game as published.
func (b *Builder) Published() *Builder {
	b.game.Published = true
	return b
}

// Var declares an initial-state variable with a bare scalar value.
func (b *Builder) Var(key string, value any) *Builder {
	if b.game.InitialState == nil {
		b.game.InitialState = make(map[string]domain.VariableValue)
	}
	b.game.InitialState[key] = domain.VariableValue{Value: value}
	return b
}

// VarMeta declares an initial-state variable with full metadata.
func (b *Builder) VarMeta(key string, value domain.VariableValue) *Builder {
	if b.game.InitialState == nil {
		b.game.InitialState = make(map[string]domain.VariableValue)
	}
	b.game.InitialState[key] = value
	return b
}

// Character registers an AI character definition.
func (b *Builder) Character(id string, c domain.AICharacter) *Builder {
	if b.game.AI.Characters == nil {
		b.game.AI.Characters = make(map[string]domain.AICharacter)
	}
	b.game.AI.Characters[id] = c
	return b
}

// Style sets one AI style preset.
func (b *Builder) Style(key, value string) *Builder {
	if b.game.AI.Style == nil {
		b.game.AI.Style = make(map[string]string)
	}
	b.game.AI.Style[key] = value
	return b
}

// Scene opens a scene builder. If the scene already exists, the existing
// one is returned so nodes can be appended.
func (b *Builder) Scene(id string) *SceneBuilder {
	if scene, ok := b.game.Scene(id); ok {
		return &SceneBuilder{scene: scene, builder: b}
	}
	scene := &domain.Scene{ID: id}
	b.game.Scenes.Set(id, scene)
	return &SceneBuilder{scene: scene, builder: b}
}

// Build returns the assembled game.
func (b *Builder) Build() *domain.Game {
	return b.game
}
