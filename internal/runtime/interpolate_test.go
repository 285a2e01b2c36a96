package runtime_test

import (
	"testing"

	"github.com/inkforge/inkforge/internal/runtime"
	"github.com/inkforge/inkforge/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestInterpolateVariables(t *testing.T) {
	state := domain.RuntimeState{
		"name": "Hero",
		"gold": 10.0,
		"odds": 0.5,
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple substitution", "Hello {{name}}!", "Hello Hero!"},
		{"whitespace inside braces", "You have {{ gold }} gold.", "You have 10 gold."},
		{"whole floats print clean", "{{gold}}", "10"},
		{"fractional floats keep the point", "{{odds}}", "0.5"},
		{"unknown placeholder left verbatim", "Hi {{stranger}}.", "Hi {{stranger}}."},
		{"multiple placeholders", "{{name}} has {{gold}}.", "Hero has 10."},
		{"no placeholders", "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runtime.InterpolateVariables(tt.in, state))
		})
	}
}

func TestReplaceCharacterMentions(t *testing.T) {
	characters := map[string]domain.AICharacter{
		"elara": {Name: "Elara the Wise"},
		"grim":  {Name: "Grim"},
	}

	assert.Equal(t, "Elara the Wise waves at Grim.",
		runtime.ReplaceCharacterMentions("@elara waves at @grim.", characters))

	// Unknown mentions stay verbatim.
	assert.Equal(t, "@nobody is here.",
		runtime.ReplaceCharacterMentions("@nobody is here.", characters))

	// No characters registered.
	assert.Equal(t, "@elara", runtime.ReplaceCharacterMentions("@elara", nil))
}
