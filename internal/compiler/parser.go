package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/inkforge/inkforge/pkg/domain"
)

// Fenced block tags the parser recognizes as non-text nodes.
const (
	blockImageGen    = "image-gen"
	blockAudioGen    = "audio-gen"
	blockVideoGen    = "video-gen"
	blockMinigameGen = "minigame-gen"
)

var (
	sceneHeaderRe = regexp.MustCompile(`^# (\w+)\s*$`)
	choiceLineRe  = regexp.MustCompile(`^\*\s*\[(.*)\]\s*->\s*(\w+)\s*(.*)$`)
	ifClauseRe    = regexp.MustCompile(`\(if:\s*([^)]*)\)`)
	setClauseRe   = regexp.MustCompile(`\(set:\s*([^)]*)\)`)
	fenceOpenRe   = regexp.MustCompile("^```(\\S+)\\s*$")
)

// Parser converts raw gamebook markdown into a Game. It is permissive: scene
// references are not checked for existence (that is the validator's job) and
// only unparseable YAML or structural mismatches produce an error.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// frontMatter mirrors the YAML header of a gamebook document.
type frontMatter struct {
	Title           string                          `yaml:"title"`
	Description     string                          `yaml:"description"`
	BackgroundStory string                          `yaml:"backgroundStory,omitempty"`
	CoverImage      string                          `yaml:"cover_image,omitempty"`
	Tags            []string                        `yaml:"tags,omitempty"`
	Published       bool                            `yaml:"published,omitempty"`
	Slug            string                          `yaml:"slug,omitempty"`
	AI              aiSection                       `yaml:"ai,omitempty"`
	InitialState    map[string]domain.VariableValue `yaml:"initialState,omitempty"`
}

type aiSection struct {
	Style      map[string]string             `yaml:"style,omitempty"`
	Characters map[string]domain.AICharacter `yaml:"characters,omitempty"`
}

// genBlock is the YAML payload of a fenced generation block. Decoded through
// mapstructure so unknown keys are tolerated.
type genBlock struct {
	Prompt     string         `mapstructure:"prompt"`
	URL        string         `mapstructure:"url"`
	Characters []string       `mapstructure:"characters"`
	Character  string         `mapstructure:"character"`
	AudioType  string         `mapstructure:"audioType"`
	Ref        string         `mapstructure:"ref"`
	Game       string         `mapstructure:"game"`
	Config     map[string]any `mapstructure:"config"`
}

// Parse compiles a full gamebook document into a Game.
func (p *Parser) Parse(text string) (*domain.Game, error) {
	header, body, err := splitFrontMatter(text)
	if err != nil {
		return nil, err
	}

	var fm frontMatter
	if header != "" {
		if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
			return nil, fmt.Errorf("invalid front matter: %w", err)
		}
	}

	game := domain.NewGame()
	game.Title = fm.Title
	game.Description = fm.Description
	game.BackgroundStory = fm.BackgroundStory
	game.CoverImage = fm.CoverImage
	game.Published = fm.Published
	game.Slug = fm.Slug
	game.InitialState = fm.InitialState
	game.AI = domain.AIConfig{Style: fm.AI.Style, Characters: fm.AI.Characters}
	if fm.Tags != nil {
		game.Tags = fm.Tags
	}

	if err := p.parseScenes(body, game); err != nil {
		return nil, err
	}
	return game, nil
}

// splitFrontMatter separates the leading ---...--- YAML block from the body.
// A document without front matter is all body.
func splitFrontMatter(text string) (header, body string, err error) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", text, nil
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n"), nil
		}
	}
	return "", "", fmt.Errorf("unterminated front matter: missing closing ---")
}

// parseScenes walks the body line by line, building scenes in authoring
// order. Plain text accumulates until a blocking construct (fence, choice,
// next header) flushes it into a text node.
func (p *Parser) parseScenes(body string, game *domain.Game) error {
	lines := strings.Split(body, "\n")

	var scene *domain.Scene
	var textBuf []string

	flushText := func() {
		if scene == nil || len(textBuf) == 0 {
			textBuf = nil
			return
		}
		content := strings.TrimSpace(strings.Join(textBuf, "\n"))
		textBuf = nil
		if content == "" {
			return
		}
		scene.Nodes = append(scene.Nodes, domain.SceneNode{Type: domain.NodeText, Content: content})
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if m := sceneHeaderRe.FindStringSubmatch(line); m != nil {
			flushText()
			id := m[1]
			if _, exists := game.Scenes.Get(id); exists {
				return fmt.Errorf("duplicate scene id %q (line %d)", id, i+1)
			}
			scene = &domain.Scene{ID: id}
			game.Scenes.Set(id, scene)
			continue
		}

		if scene == nil {
			// Content before the first scene header has no home; skip it.
			continue
		}

		if m := fenceOpenRe.FindStringSubmatch(line); m != nil && isKnownBlock(m[1]) {
			flushText()
			blockType := m[1]
			var blockLines []string
			closed := false
			for i++; i < len(lines); i++ {
				if strings.TrimSpace(lines[i]) == "```" {
					closed = true
					break
				}
				blockLines = append(blockLines, lines[i])
			}
			if !closed {
				return fmt.Errorf("scene %q: unterminated %s block", scene.ID, blockType)
			}
			node, err := p.parseGenBlock(blockType, strings.Join(blockLines, "\n"))
			if err != nil {
				return fmt.Errorf("scene %q node %d: invalid %s block: %w",
					scene.ID, len(scene.Nodes), blockType, err)
			}
			scene.Nodes = append(scene.Nodes, node)
			continue
		}

		if m := choiceLineRe.FindStringSubmatch(line); m != nil {
			flushText()
			node := domain.SceneNode{
				Type:        domain.NodeChoice,
				Text:        strings.TrimSpace(m[1]),
				NextSceneID: m[2],
			}
			rest := m[3]
			if c := ifClauseRe.FindStringSubmatch(rest); c != nil {
				node.Condition = strings.TrimSpace(c[1])
			}
			if c := setClauseRe.FindStringSubmatch(rest); c != nil {
				node.Set = strings.TrimSpace(c[1])
			}
			scene.Nodes = append(scene.Nodes, node)
			continue
		}

		textBuf = append(textBuf, line)
	}
	flushText()
	return nil
}

func isKnownBlock(tag string) bool {
	switch tag {
	case blockImageGen, blockAudioGen, blockVideoGen, blockMinigameGen:
		return true
	}
	return false
}

// parseGenBlock decodes a fenced block's YAML into the matching node variant.
// A prompt makes the node AI-generated; a bare URL keeps it static.
func (p *Parser) parseGenBlock(blockType, payload string) (domain.SceneNode, error) {
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(payload), &raw); err != nil {
		return domain.SceneNode{}, err
	}

	var block genBlock
	if err := mapstructure.Decode(raw, &block); err != nil {
		return domain.SceneNode{}, fmt.Errorf("unexpected field shape: %w", err)
	}

	switch blockType {
	case blockImageGen:
		node := domain.SceneNode{
			Type:       domain.NodeStaticImage,
			URL:        block.URL,
			Characters: block.Characters,
			Character:  block.Character,
		}
		if block.Prompt != "" {
			node.Type = domain.NodeAIImage
			node.Prompt = block.Prompt
		}
		return node, nil

	case blockAudioGen:
		node := domain.SceneNode{
			Type:      domain.NodeStaticAudio,
			URL:       block.URL,
			AudioType: block.AudioType,
		}
		if block.Prompt != "" {
			node.Type = domain.NodeAIAudio
			node.Prompt = block.Prompt
		}
		return node, nil

	case blockVideoGen:
		node := domain.SceneNode{
			Type:       domain.NodeStaticVideo,
			URL:        block.URL,
			Characters: block.Characters,
			Character:  block.Character,
		}
		if block.Prompt != "" {
			node.Type = domain.NodeAIVideo
			node.Prompt = block.Prompt
		}
		return node, nil

	case blockMinigameGen:
		ref := block.Ref
		if ref == "" {
			ref = block.Game
		}
		return domain.SceneNode{
			Type:   domain.NodeMinigame,
			Ref:    ref,
			Config: block.Config,
		}, nil
	}

	return domain.SceneNode{}, fmt.Errorf("unknown block type %q", blockType)
}
