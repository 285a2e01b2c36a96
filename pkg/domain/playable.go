package domain

import (
	"encoding/json"
	"fmt"
)

// PlayableCharacter is the runtime-visible slice of an AICharacter. The
// generation prompt stays behind in the authoring representation.
type PlayableCharacter struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// PlayableGame is the projection of a Game shipped to a client runtime. It
// drops authoring-only metadata and replaces the insertion-ordered scene map
// with a plain serializable mapping. Derived on each read of a published
// game; never persisted separately.
type PlayableGame struct {
	Title        string                       `json:"title"`
	Description  string                       `json:"description"`
	CoverImage   string                       `json:"coverImage,omitempty"`
	Slug         string                       `json:"slug,omitempty"`
	Tags         []string                     `json:"tags"`
	InitialState map[string]VariableValue     `json:"initialState,omitempty"`
	Characters   map[string]PlayableCharacter `json:"characters,omitempty"`
	Scenes       map[string]*Scene            `json:"scenes"`
}

// ToPlayable strips authoring-only structure from a game. Generation prompts
// disappear; an ai_* node whose asset has not been generated yet keeps its
// type with an empty URL so the client renderer can decide on a placeholder.
func ToPlayable(g *Game) *PlayableGame {
	p := &PlayableGame{
		Title:        g.Title,
		Description:  g.Description,
		CoverImage:   g.CoverImage,
		Slug:         g.Slug,
		Tags:         g.Tags,
		InitialState: g.InitialState,
		Scenes:       make(map[string]*Scene),
	}

	if len(g.AI.Characters) > 0 {
		p.Characters = make(map[string]PlayableCharacter, len(g.AI.Characters))
		for id, c := range g.AI.Characters {
			p.Characters[id] = PlayableCharacter{Name: c.Name, ImageURL: c.ImageURL}
		}
	}

	if g.Scenes == nil {
		return p
	}
	for pair := g.Scenes.Oldest(); pair != nil; pair = pair.Next() {
		scene := &Scene{ID: pair.Value.ID, Nodes: make([]SceneNode, len(pair.Value.Nodes))}
		for i, n := range pair.Value.Nodes {
			scene.Nodes[i] = narrowNode(n)
		}
		p.Scenes[pair.Key] = scene
	}
	return p
}

// narrowNode reduces a node to its player-visible shape.
func narrowNode(n SceneNode) SceneNode {
	switch n.Type {
	case NodeText:
		return SceneNode{Type: n.Type, Content: n.Content, AudioURL: n.AudioURL}
	case NodeStaticImage, NodeAIImage, NodeStaticVideo, NodeAIVideo:
		return SceneNode{Type: n.Type, URL: n.URL}
	case NodeStaticAudio, NodeAIAudio:
		return SceneNode{Type: n.Type, URL: n.URL, AudioType: n.AudioType}
	case NodeChoice:
		return SceneNode{Type: n.Type, Text: n.Text, NextSceneID: n.NextSceneID, Condition: n.Condition, Set: n.Set}
	case NodeMinigame:
		return SceneNode{Type: n.Type, Ref: n.Ref, Config: n.Config}
	default:
		return n
	}
}

// ToSerializablePlayable flattens the projection into plain nested maps for
// wire transport.
func ToSerializablePlayable(g *Game) (map[string]any, error) {
	raw, err := json.Marshal(ToPlayable(g))
	if err != nil {
		return nil, fmt.Errorf("failed to serialize playable game: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to flatten playable game: %w", err)
	}
	return out, nil
}
