package inkforge_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/inkforge/inkforge"
	"github.com/inkforge/inkforge/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_PlayToTerminal(t *testing.T) {
	game, err := inkforge.Parse(testutils.SampleDocument)
	require.NoError(t, err)
	engine := inkforge.NewEngine(game)

	// Buy the key (1), then unlock the door (1).
	in := strings.NewReader("1\n1\n")
	var out bytes.Buffer

	runner := inkforge.NewRunner(in, &out)
	state, err := runner.Run(context.Background(), engine, "cli")
	require.NoError(t, err)

	assert.Equal(t, "treasure", state.CurrentSceneID)
	assert.True(t, state.Terminated)

	printed := out.String()
	assert.Contains(t, printed, "10 gold")
	assert.Contains(t, printed, "1) Buy the key")
	assert.Contains(t, printed, "2) Climb the wall")
	assert.Contains(t, printed, "Gold beyond counting!")
}

func TestRunner_RejectsBadInput(t *testing.T) {
	game, err := inkforge.Parse(testutils.SampleDocument)
	require.NoError(t, err)
	engine := inkforge.NewEngine(game)

	// Garbage, out of range, then a valid pick; EOF ends the run.
	in := strings.NewReader("abc\n9\n1\n")
	var out bytes.Buffer

	runner := inkforge.NewRunner(in, &out)
	state, err := runner.Run(context.Background(), engine, "cli")
	require.NoError(t, err)

	assert.Equal(t, "door", state.CurrentSceneID)
	assert.Contains(t, out.String(), "pick a number between 1 and 2")
}

func TestRunner_RendererApplied(t *testing.T) {
	game, err := inkforge.Parse(testutils.MinimalDocument)
	require.NoError(t, err)
	engine := inkforge.NewEngine(game)

	var out bytes.Buffer
	runner := inkforge.NewRunner(strings.NewReader(""), &out)
	runner.Renderer = func(s string) (string, error) {
		return strings.ToUpper(s), nil
	}

	_, err = runner.Run(context.Background(), engine, "cli")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "HELLO.")
}
