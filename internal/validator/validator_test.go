package validator_test

import (
	"testing"

	"github.com/inkforge/inkforge/internal/validator"
	"github.com/inkforge/inkforge/pkg/domain"
	"github.com/inkforge/inkforge/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGame_Clean(t *testing.T) {
	game := dsl.New("Clean").
		Scene("start").
		Text("A.").
		Choice("Next", "end").
		End().
		Scene("end").
		Text("B.").
		End().
		Build()

	issues := validator.ValidateGame(game, "")
	assert.Empty(t, issues)
	assert.NoError(t, validator.Error(issues))
}

func TestValidateGame_NoScenes(t *testing.T) {
	issues := validator.ValidateGame(dsl.New("Empty").Build(), "")
	require.Len(t, issues, 1)
	assert.Equal(t, "game has no scenes", issues[0].Message)
}

func TestValidateGame_MissingEntryScene(t *testing.T) {
	game := dsl.New("NoStart").
		Scene("intro").Text("A.").End().
		Build()

	issues := validator.ValidateGame(game, "")
	messages := flatten(issues)
	assert.Contains(t, messages, `entry scene "start" not found`)
}

func TestValidateGame_BrokenChoiceTarget(t *testing.T) {
	game := dsl.New("Broken").
		Scene("start").
		Choice("Jump", "missing").
		End().
		Build()

	issues := validator.ValidateGame(game, "")
	messages := flatten(issues)
	assert.Contains(t, messages, `scene "start": choice 0 targets missing scene "missing"`)
}

func TestValidateGame_EmptyChoiceTarget(t *testing.T) {
	game := dsl.New("Empty Target").
		Scene("start").
		Choice("Nowhere", "").
		End().
		Build()

	issues := validator.ValidateGame(game, "")
	messages := flatten(issues)
	assert.Contains(t, messages, `scene "start": choice 0 has an empty target`)
}

func TestValidateGame_UnreachableScene(t *testing.T) {
	game := dsl.New("Island").
		Scene("start").Text("A.").End().
		Scene("island").Text("B.").End().
		Build()

	issues := validator.ValidateGame(game, "")
	messages := flatten(issues)
	assert.Contains(t, messages, `scene "island": unreachable from entry scene`)
}

func TestValidateGame_TriggerTargets(t *testing.T) {
	t.Run("missing trigger scene is reported", func(t *testing.T) {
		game := dsl.New("Trigger").
			VarMeta("doom", domain.VariableValue{
				Value:   0,
				Trigger: &domain.Trigger{Condition: "doom >= 1", Scene: "nowhere"},
			}).
			Scene("start").Text("A.").End().
			Build()

		messages := flatten(validator.ValidateGame(game, ""))
		assert.Contains(t, messages, `variable "doom" trigger targets missing scene "nowhere"`)
	})

	t.Run("trigger target counts as reachable", func(t *testing.T) {
		game := dsl.New("Trigger Root").
			VarMeta("doom", domain.VariableValue{
				Value:   0,
				Trigger: &domain.Trigger{Condition: "doom >= 1", Scene: "ending"},
			}).
			Scene("start").Text("A.").End().
			Scene("ending").Text("B.").End().
			Build()

		assert.Empty(t, validator.ValidateGame(game, ""))
	})
}

func TestValidateGame_CustomEntryScene(t *testing.T) {
	game := dsl.New("Custom").
		Scene("intro").Text("A.").End().
		Build()

	assert.Empty(t, validator.ValidateGame(game, "intro"))
}

func TestError_Flattening(t *testing.T) {
	err := validator.Error([]validator.Issue{
		{SceneID: "start", Message: "choice 0 has an empty target"},
		{Message: "entry scene \"start\" not found"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 2 issues")
	assert.Contains(t, err.Error(), `scene "start": choice 0 has an empty target`)
}

func flatten(issues []validator.Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.String()
	}
	return out
}
