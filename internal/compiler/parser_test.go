package compiler_test

import (
	"testing"

	"github.com/inkforge/inkforge/internal/compiler"
	"github.com/inkforge/inkforge/internal/testutils"
	"github.com/inkforge/inkforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_FullDocument(t *testing.T) {
	game, err := compiler.NewParser().Parse(testutils.SampleDocument)
	require.NoError(t, err)

	assert.Equal(t, "The Forgotten Tower", game.Title)
	assert.Equal(t, "A short climb with a locked door.", game.Description)
	assert.Equal(t, []string{"fantasy", "demo"}, game.Tags)
	assert.True(t, game.Published)

	// Scene order follows the document.
	assert.Equal(t, []string{"start", "door", "treasure", "collapse"}, game.SceneIDs())

	t.Run("initial state", func(t *testing.T) {
		gold := game.InitialState["gold"]
		assert.Equal(t, 10, gold.Value)
		assert.False(t, gold.IsMeta())

		doom := game.InitialState["doom"]
		require.True(t, doom.IsMeta())
		assert.Equal(t, 0, doom.Value)
		require.NotNil(t, doom.Visible)
		assert.False(t, *doom.Visible)
		assert.Equal(t, "Doom", doom.Label)
		require.NotNil(t, doom.Trigger)
		assert.Equal(t, "doom >= 3", doom.Trigger.Condition)
		assert.Equal(t, "collapse", doom.Trigger.Scene)
	})

	t.Run("ai config", func(t *testing.T) {
		assert.Equal(t, "watercolor", game.AI.Style["artStyle"])
		assert.Equal(t, "Elara", game.AI.Characters["elara"].Name)
	})

	t.Run("start scene nodes", func(t *testing.T) {
		start, ok := game.Scene("start")
		require.True(t, ok)
		require.Len(t, start.Nodes, 4)

		assert.Equal(t, domain.NodeText, start.Nodes[0].Type)
		assert.Contains(t, start.Nodes[0].Content, "{{gold}}")

		image := start.Nodes[1]
		assert.Equal(t, domain.NodeAIImage, image.Type)
		assert.Equal(t, "A crumbling stone tower at dusk", image.Prompt)
		assert.Equal(t, []string{"elara"}, image.Characters)

		buy := start.Nodes[2]
		assert.Equal(t, domain.NodeChoice, buy.Type)
		assert.Equal(t, "Buy the key", buy.Text)
		assert.Equal(t, "door", buy.NextSceneID)
		assert.Equal(t, "gold >= 10", buy.Condition)
		assert.Equal(t, "gold = gold - 10, has_key = true", buy.Set)

		climb := start.Nodes[3]
		assert.Equal(t, "", climb.Condition)
		assert.Equal(t, "doom = doom + 1", climb.Set)
	})

	t.Run("audio block stays static without a prompt", func(t *testing.T) {
		door, ok := game.Scene("door")
		require.True(t, ok)

		audio := door.Nodes[1]
		assert.Equal(t, domain.NodeStaticAudio, audio.Type)
		assert.Equal(t, "https://cdn.example.com/creak.mp3", audio.URL)
		assert.Equal(t, "sfx", audio.AudioType)
	})

	t.Run("terminal scenes", func(t *testing.T) {
		treasure, _ := game.Scene("treasure")
		assert.True(t, treasure.IsTerminal())
		start, _ := game.Scene("start")
		assert.False(t, start.IsTerminal())
	})
}

func TestParser_NoFrontMatter(t *testing.T) {
	game, err := compiler.NewParser().Parse(testutils.MinimalDocument)
	require.NoError(t, err)

	assert.Empty(t, game.Title)
	assert.Equal(t, []string{"start"}, game.SceneIDs())

	start, _ := game.Scene("start")
	require.Len(t, start.Nodes, 1)
	assert.Equal(t, "Hello.", start.Nodes[0].Content)
}

func TestParser_Errors(t *testing.T) {
	p := compiler.NewParser()

	t.Run("unterminated front matter", func(t *testing.T) {
		_, err := p.Parse("---\ntitle: Broken\n")
		assert.ErrorContains(t, err, "unterminated front matter")
	})

	t.Run("invalid front matter yaml", func(t *testing.T) {
		_, err := p.Parse("---\ntitle: [unclosed\n---\n# start\n")
		assert.ErrorContains(t, err, "invalid front matter")
	})

	t.Run("duplicate scene id", func(t *testing.T) {
		_, err := p.Parse("# start\n\nA.\n\n# start\n\nB.\n")
		assert.ErrorContains(t, err, `duplicate scene id "start"`)
	})

	t.Run("unterminated generation block", func(t *testing.T) {
		_, err := p.Parse("# start\n\n```image-gen\nprompt: x\n")
		assert.ErrorContains(t, err, "unterminated image-gen block")
	})

	t.Run("invalid block yaml", func(t *testing.T) {
		_, err := p.Parse("# start\n\n```image-gen\nprompt: [unclosed\n```\n")
		assert.Error(t, err)
	})
}

func TestParser_Permissiveness(t *testing.T) {
	p := compiler.NewParser()

	t.Run("broken choice targets parse fine", func(t *testing.T) {
		game, err := p.Parse("# start\n\n* [Go] -> nowhere\n")
		require.NoError(t, err)
		start, _ := game.Scene("start")
		assert.Equal(t, "nowhere", start.Nodes[0].NextSceneID)
	})

	t.Run("content before first header is skipped", func(t *testing.T) {
		game, err := p.Parse("orphan line\n\n# start\n\nReal content.\n")
		require.NoError(t, err)
		start, _ := game.Scene("start")
		require.Len(t, start.Nodes, 1)
		assert.Equal(t, "Real content.", start.Nodes[0].Content)
	})

	t.Run("unknown fence tags are plain text", func(t *testing.T) {
		game, err := p.Parse("# start\n\n```go\nfmt.Println()\n```\n")
		require.NoError(t, err)
		start, _ := game.Scene("start")
		require.Len(t, start.Nodes, 1)
		assert.Equal(t, domain.NodeText, start.Nodes[0].Type)
		assert.Contains(t, start.Nodes[0].Content, "fmt.Println()")
	})

	t.Run("minigame ref falls back to game key", func(t *testing.T) {
		game, err := p.Parse("# start\n\n```minigame-gen\ngame: dice\nconfig:\n  sides: 6\n```\n")
		require.NoError(t, err)
		start, _ := game.Scene("start")
		node := start.Nodes[0]
		assert.Equal(t, domain.NodeMinigame, node.Type)
		assert.Equal(t, "dice", node.Ref)
		assert.Equal(t, 6, node.Config["sides"])
	})
}
