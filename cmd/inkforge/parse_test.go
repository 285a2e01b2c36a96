package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/inkforge/inkforge/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	}()
	require.NoError(t, rootCmd.Execute())
	return &out
}

func TestParseCommand(t *testing.T) {
	path := writeFixture(t, testutils.SampleDocument)

	out := runCommand(t, "parse", path)

	var body struct {
		Title  string         `json:"title"`
		Scenes []string       `json:"scenes"`
		State  map[string]any `json:"state"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))

	assert.Equal(t, "The Forgotten Tower", body.Title)
	assert.Equal(t, []string{"start", "door", "treasure", "collapse"}, body.Scenes)
	// State is the flattened scalar map, not the VariableValue records.
	assert.EqualValues(t, 10, body.State["gold"])
	assert.EqualValues(t, false, body.State["has_key"])
	assert.EqualValues(t, 0, body.State["doom"])
}

func TestParseCommand_Playable(t *testing.T) {
	path := writeFixture(t, testutils.SampleDocument)
	t.Cleanup(func() {
		_ = parseCmd.Flags().Set("playable", "false")
	})

	out := runCommand(t, "parse", "--playable", path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))
	assert.Equal(t, "The Forgotten Tower", body["title"])
	assert.NotContains(t, out.String(), "A crumbling stone tower",
		"prompts must not appear in the projection")
}
