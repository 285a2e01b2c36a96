package domain

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Game is the full authoring representation of a gamebook. It is owned by
// the editor/CMS until serialized and is immutable from the evaluator's
// perspective. Scenes preserve insertion order: the order scenes appear in
// the source document is the order authors see them.
type Game struct {
	Title           string                   `json:"title"`
	Description     string                   `json:"description"`
	BackgroundStory string                   `json:"backgroundStory,omitempty"`
	CoverImage      string                   `json:"coverImage,omitempty"`
	Tags            []string                 `json:"tags"`
	Published       bool                     `json:"published"`
	Slug            string                   `json:"slug,omitempty"`
	InitialState    map[string]VariableValue `json:"initialState,omitempty"`
	AI              AIConfig                 `json:"ai,omitempty"`

	Scenes *orderedmap.OrderedMap[string, *Scene] `json:"scenes"`
}

// NewGame returns an empty game with an initialized scene map.
func NewGame() *Game {
	return &Game{
		Tags:   []string{},
		Scenes: orderedmap.New[string, *Scene](),
	}
}

// Scene looks up a scene by id.
func (g *Game) Scene(id string) (*Scene, bool) {
	if g.Scenes == nil {
		return nil, false
	}
	return g.Scenes.Get(id)
}

// SceneIDs returns scene ids in authoring order.
func (g *Game) SceneIDs() []string {
	if g.Scenes == nil {
		return nil
	}
	ids := make([]string, 0, g.Scenes.Len())
	for pair := g.Scenes.Oldest(); pair != nil; pair = pair.Next() {
		ids = append(ids, pair.Key)
	}
	return ids
}

// AIConfig groups the AI style presets and the character roster used when
// resolving generation prompts.
type AIConfig struct {
	Style      map[string]string      `json:"style,omitempty" yaml:"style,omitempty"`
	Characters map[string]AICharacter `json:"characters,omitempty" yaml:"characters,omitempty"`
}

// AICharacter is a reusable character definition, referenced from prompts via
// @id mentions or a characters list on a generation block.
type AICharacter struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	ImagePrompt string `json:"image_prompt,omitempty" yaml:"image_prompt,omitempty"`
	ImageURL    string `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// Trigger fires a scene jump when its condition becomes true after a state
// change. Evaluated by the runtime, not the parser.
type Trigger struct {
	Condition string `json:"condition" yaml:"condition"`
	Scene     string `json:"scene" yaml:"scene"`
}

// VariableValue is one entry of a game's initial state. In the DSL it is
// either a raw scalar (bool, number, string) or a meta record carrying the
// scalar plus display hints. The runtime only ever sees the flattened scalar
// (see ExtractRuntimeState).
type VariableValue struct {
	Value   any      `json:"value"`
	Visible *bool    `json:"visible,omitempty"`
	Label   string   `json:"label,omitempty"`
	Trigger *Trigger `json:"trigger,omitempty"`
}

// IsMeta reports whether the value carries authoring metadata beyond the
// bare scalar. Bare values serialize back as scalars.
func (v VariableValue) IsMeta() bool {
	return v.Visible != nil || v.Label != "" || v.Trigger != nil
}

type variableMeta struct {
	Value   any      `yaml:"value"`
	Visible *bool    `yaml:"visible,omitempty"`
	Label   string   `yaml:"label,omitempty"`
	Trigger *Trigger `yaml:"trigger,omitempty"`
}

// UnmarshalYAML accepts both shapes: a bare scalar, or a mapping with a
// "value" key plus optional visible/label/trigger fields.
func (v *VariableValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		var meta variableMeta
		if err := node.Decode(&meta); err != nil {
			return fmt.Errorf("variable meta: %w", err)
		}
		v.Value = meta.Value
		v.Visible = meta.Visible
		v.Label = meta.Label
		v.Trigger = meta.Trigger
		return nil
	}

	var scalar any
	if err := node.Decode(&scalar); err != nil {
		return fmt.Errorf("variable value: %w", err)
	}
	v.Value = scalar
	v.Visible = nil
	v.Label = ""
	v.Trigger = nil
	return nil
}

// MarshalYAML emits the compact scalar form when no metadata is present.
func (v VariableValue) MarshalYAML() (any, error) {
	if !v.IsMeta() {
		return v.Value, nil
	}
	return variableMeta{
		Value:   v.Value,
		Visible: v.Visible,
		Label:   v.Label,
		Trigger: v.Trigger,
	}, nil
}

// ExtractRuntimeState flattens the initial state into the scalar-only map
// the evaluator operates on. Called once per play session.
func ExtractRuntimeState(initial map[string]VariableValue) RuntimeState {
	state := make(RuntimeState, len(initial))
	for key, v := range initial {
		state[key] = v.Value
	}
	return state
}
