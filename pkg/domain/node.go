package domain

// NodeType discriminates the SceneNode union.
type NodeType string

const (
	// NodeText is rendered markdown content, optionally narrated.
	NodeText NodeType = "text"

	// NodeStaticImage references an already-resolved image URL.
	NodeStaticImage NodeType = "static_image"
	// NodeAIImage carries a generation prompt; its URL may not be resolved yet.
	NodeAIImage NodeType = "ai_image"

	NodeStaticAudio NodeType = "static_audio"
	NodeAIAudio     NodeType = "ai_audio"

	NodeStaticVideo NodeType = "static_video"
	NodeAIVideo     NodeType = "ai_video"

	// NodeChoice is a player decision point pointing at another scene.
	NodeChoice NodeType = "choice"

	// NodeMinigame references an embedded minigame by id.
	NodeMinigame NodeType = "minigame"
)

// SceneNode is a tagged union over every node variant a scene can contain.
// Only the fields relevant to Type are populated; consumers must switch on
// Type exhaustively rather than sniffing fields.
type SceneNode struct {
	Type NodeType `json:"type" yaml:"type"`

	// Text variant.
	Content  string `json:"content,omitempty" yaml:"content,omitempty"`
	AudioURL string `json:"audio_url,omitempty" yaml:"audio_url,omitempty"`

	// Media variants (static_* carry URL, ai_* carry Prompt and may carry a
	// resolved URL once generation has completed).
	URL        string   `json:"url,omitempty" yaml:"url,omitempty"`
	Prompt     string   `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Characters []string `json:"characters,omitempty" yaml:"characters,omitempty"`
	Character  string   `json:"character,omitempty" yaml:"character,omitempty"`
	AudioType  string   `json:"audioType,omitempty" yaml:"audioType,omitempty"`

	// Choice variant.
	Text        string `json:"text,omitempty" yaml:"text,omitempty"`
	NextSceneID string `json:"nextSceneId,omitempty" yaml:"nextSceneId,omitempty"`
	Condition   string `json:"condition,omitempty" yaml:"condition,omitempty"`
	Set         string `json:"set,omitempty" yaml:"set,omitempty"`

	// Minigame variant.
	Ref    string         `json:"ref,omitempty" yaml:"ref,omitempty"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// IsMedia reports whether the node is one of the image/audio/video variants.
func (n SceneNode) IsMedia() bool {
	switch n.Type {
	case NodeStaticImage, NodeAIImage, NodeStaticAudio, NodeAIAudio, NodeStaticVideo, NodeAIVideo:
		return true
	}
	return false
}

// IsGenerated reports whether the node's asset is AI-generated (prompt-driven).
func (n SceneNode) IsGenerated() bool {
	switch n.Type {
	case NodeAIImage, NodeAIAudio, NodeAIVideo:
		return true
	}
	return false
}
