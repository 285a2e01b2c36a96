package domain_test

import (
	"testing"

	"github.com/inkforge/inkforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func towerGame() *domain.Game {
	game := domain.NewGame()
	game.Title = "Tower"
	game.Tags = []string{"fantasy"}
	game.AI = domain.AIConfig{
		Style: map[string]string{"artStyle": "watercolor"},
		Characters: map[string]domain.AICharacter{
			"elara": {
				Name:        "Elara",
				Description: "The keeper.",
				ImagePrompt: "A tall keeper in grey robes",
				ImageURL:    "https://cdn.example.com/elara.png",
			},
		},
	}
	game.Scenes.Set("start", &domain.Scene{
		ID: "start",
		Nodes: []domain.SceneNode{
			{Type: domain.NodeText, Content: "Hello."},
			{Type: domain.NodeAIImage, Prompt: "A tower at dusk", Characters: []string{"elara"}},
			{Type: domain.NodeChoice, Text: "Go", NextSceneID: "end", Condition: "gold >= 1", Set: "gold = 0"},
		},
	})
	game.Scenes.Set("end", &domain.Scene{
		ID:    "end",
		Nodes: []domain.SceneNode{{Type: domain.NodeText, Content: "Bye."}},
	})
	return game
}

func TestToPlayable_StripsPrompts(t *testing.T) {
	p := domain.ToPlayable(towerGame())

	assert.Equal(t, "Tower", p.Title)
	require.Contains(t, p.Scenes, "start")

	image := p.Scenes["start"].Nodes[1]
	assert.Equal(t, domain.NodeAIImage, image.Type)
	assert.Empty(t, image.Prompt, "prompts must not reach the client")
	assert.Empty(t, image.Characters)

	// Characters lose their prompts but keep display data.
	elara := p.Characters["elara"]
	assert.Equal(t, "Elara", elara.Name)
	assert.Equal(t, "https://cdn.example.com/elara.png", elara.ImageURL)
}

func TestToPlayable_KeepsChoiceMechanics(t *testing.T) {
	p := domain.ToPlayable(towerGame())

	choice := p.Scenes["start"].Nodes[2]
	assert.Equal(t, "Go", choice.Text)
	assert.Equal(t, "end", choice.NextSceneID)
	assert.Equal(t, "gold >= 1", choice.Condition)
	assert.Equal(t, "gold = 0", choice.Set)
}

func TestToSerializablePlayable(t *testing.T) {
	out, err := domain.ToSerializablePlayable(towerGame())
	require.NoError(t, err)

	assert.Equal(t, "Tower", out["title"])

	scenes, ok := out["scenes"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, scenes, "start")
	assert.Contains(t, scenes, "end")

	// No prompt key anywhere in the flattened start scene.
	start := scenes["start"].(map[string]any)
	nodes := start["nodes"].([]any)
	for _, n := range nodes {
		assert.NotContains(t, n.(map[string]any), "prompt")
	}
}
