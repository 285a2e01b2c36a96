package domain_test

import (
	"testing"

	"github.com/inkforge/inkforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestVariableValue_YAMLShapes(t *testing.T) {
	var vars map[string]domain.VariableValue
	err := yaml.Unmarshal([]byte(`
gold: 10
name: Hero
doom:
  value: 0
  visible: false
  label: Doom
  trigger:
    condition: doom >= 3
    scene: collapse
`), &vars)
	require.NoError(t, err)

	assert.Equal(t, 10, vars["gold"].Value)
	assert.False(t, vars["gold"].IsMeta())
	assert.Equal(t, "Hero", vars["name"].Value)

	doom := vars["doom"]
	assert.True(t, doom.IsMeta())
	assert.Equal(t, 0, doom.Value)
	assert.Equal(t, "Doom", doom.Label)
	require.NotNil(t, doom.Trigger)
	assert.Equal(t, "collapse", doom.Trigger.Scene)

	// Bare values marshal back as scalars.
	out, err := yaml.Marshal(map[string]domain.VariableValue{"gold": vars["gold"]})
	require.NoError(t, err)
	assert.Equal(t, "gold: 10\n", string(out))
}

func TestExtractRuntimeState(t *testing.T) {
	visible := false
	state := domain.ExtractRuntimeState(map[string]domain.VariableValue{
		"gold": {Value: 10},
		"doom": {Value: 0, Visible: &visible, Label: "Doom"},
	})
	assert.Equal(t, domain.RuntimeState{"gold": 10, "doom": 0}, state)
}

func TestState_Clone(t *testing.T) {
	state := domain.NewState("start", map[string]domain.VariableValue{"gold": {Value: 10}})
	state.SessionID = "s1"

	clone := state.Clone()
	clone.Vars["gold"] = 0
	clone.History = append(clone.History, "end")

	assert.Equal(t, 10, state.Vars["gold"])
	assert.Equal(t, []string{"start"}, state.History)
	assert.Equal(t, "s1", clone.SessionID)
}

func TestGame_SceneOrder(t *testing.T) {
	game := domain.NewGame()
	for _, id := range []string{"zeta", "alpha", "mid"} {
		game.Scenes.Set(id, &domain.Scene{ID: id})
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, game.SceneIDs())

	scene, ok := game.Scene("alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha", scene.ID)

	_, ok = game.Scene("missing")
	assert.False(t, ok)
}
