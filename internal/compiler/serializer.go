package compiler

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inkforge/inkforge/pkg/domain"
)

// Serializer renders a Game back into canonical DSL text. It is the
// structural inverse of the Parser: parsing its output yields a Game that is
// structurally equal to the input, modulo insignificant whitespace.
type Serializer struct{}

// NewSerializer creates a new serializer instance.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// Stringify renders the game as front matter followed by one section per
// scene, nodes re-emitted in authoring order.
func (s *Serializer) Stringify(game *domain.Game) (string, error) {
	var b strings.Builder

	header, err := s.renderFrontMatter(game)
	if err != nil {
		return "", err
	}
	b.WriteString("---\n")
	b.WriteString(header)
	b.WriteString("---\n")

	for pair := game.Scenes.Oldest(); pair != nil; pair = pair.Next() {
		b.WriteString("\n# ")
		b.WriteString(pair.Key)
		b.WriteString("\n")
		if err := s.renderScene(&b, pair.Value); err != nil {
			return "", fmt.Errorf("scene %q: %w", pair.Key, err)
		}
	}

	return b.String(), nil
}

func (s *Serializer) renderFrontMatter(game *domain.Game) (string, error) {
	fm := frontMatter{
		Title:           game.Title,
		Description:     game.Description,
		BackgroundStory: game.BackgroundStory,
		CoverImage:      game.CoverImage,
		Tags:            game.Tags,
		Published:       game.Published,
		Slug:            game.Slug,
		AI:              aiSection{Style: game.AI.Style, Characters: game.AI.Characters},
		InitialState:    game.InitialState,
	}
	out, err := yaml.Marshal(&fm)
	if err != nil {
		return "", fmt.Errorf("failed to render front matter: %w", err)
	}
	return string(out), nil
}

func (s *Serializer) renderScene(b *strings.Builder, scene *domain.Scene) error {
	prevChoice := false
	for i, node := range scene.Nodes {
		isChoice := node.Type == domain.NodeChoice
		// Choices form a tight list; everything else gets its own paragraph.
		if !isChoice || !prevChoice {
			b.WriteString("\n")
		}
		prevChoice = isChoice

		switch node.Type {
		case domain.NodeText:
			b.WriteString(node.Content)
			b.WriteString("\n")

		case domain.NodeChoice:
			b.WriteString("* [")
			b.WriteString(node.Text)
			b.WriteString("] -> ")
			b.WriteString(node.NextSceneID)
			if node.Condition != "" {
				b.WriteString(" (if: ")
				b.WriteString(node.Condition)
				b.WriteString(")")
			}
			if node.Set != "" {
				b.WriteString(" (set: ")
				b.WriteString(node.Set)
				b.WriteString(")")
			}
			b.WriteString("\n")

		case domain.NodeStaticImage, domain.NodeAIImage:
			if err := renderFence(b, blockImageGen, mediaBlock{
				Prompt:     node.Prompt,
				URL:        node.URL,
				Characters: node.Characters,
				Character:  node.Character,
			}); err != nil {
				return fmt.Errorf("node %d: %w", i, err)
			}

		case domain.NodeStaticAudio, domain.NodeAIAudio:
			if err := renderFence(b, blockAudioGen, mediaBlock{
				Prompt:    node.Prompt,
				URL:       node.URL,
				AudioType: node.AudioType,
			}); err != nil {
				return fmt.Errorf("node %d: %w", i, err)
			}

		case domain.NodeStaticVideo, domain.NodeAIVideo:
			if err := renderFence(b, blockVideoGen, mediaBlock{
				Prompt:     node.Prompt,
				URL:        node.URL,
				Characters: node.Characters,
				Character:  node.Character,
			}); err != nil {
				return fmt.Errorf("node %d: %w", i, err)
			}

		case domain.NodeMinigame:
			if err := renderFence(b, blockMinigameGen, minigameBlock{
				Ref:    node.Ref,
				Config: node.Config,
			}); err != nil {
				return fmt.Errorf("node %d: %w", i, err)
			}

		default:
			return fmt.Errorf("node %d: unknown node type %q", i, node.Type)
		}
	}
	return nil
}

// mediaBlock is the YAML shape shared by image/audio/video fences. Field
// names must match what the parser's genBlock expects.
type mediaBlock struct {
	Prompt     string   `yaml:"prompt,omitempty"`
	URL        string   `yaml:"url,omitempty"`
	Characters []string `yaml:"characters,omitempty"`
	Character  string   `yaml:"character,omitempty"`
	AudioType  string   `yaml:"audioType,omitempty"`
}

type minigameBlock struct {
	Ref    string         `yaml:"ref,omitempty"`
	Config map[string]any `yaml:"config,omitempty"`
}

func renderFence(b *strings.Builder, tag string, payload any) error {
	out, err := yaml.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to render %s block: %w", tag, err)
	}
	b.WriteString("```")
	b.WriteString(tag)
	b.WriteString("\n")
	b.Write(out)
	b.WriteString("```\n")
	return nil
}
