package runtime

import (
	"regexp"

	"github.com/inkforge/inkforge/pkg/domain"
)

var (
	placeholderRe = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)
	mentionRe     = regexp.MustCompile(`@(\w+)`)
)

// InterpolateVariables substitutes {{identifier}} placeholders with the
// state value rendered as text. Placeholders without a matching state key
// are left verbatim so authoring typos surface visibly instead of erroring.
func InterpolateVariables(text string, state domain.RuntimeState) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		key := placeholderRe.FindStringSubmatch(match)[1]
		value, ok := state[key]
		if !ok {
			return match
		}
		return FormatValue(value)
	})
}

// ReplaceCharacterMentions rewrites @id mentions to the character's display
// name. Unknown ids stay verbatim.
func ReplaceCharacterMentions(text string, characters map[string]domain.AICharacter) string {
	if len(characters) == 0 {
		return text
	}
	return mentionRe.ReplaceAllStringFunc(text, func(match string) string {
		id := mentionRe.FindStringSubmatch(match)[1]
		if c, ok := characters[id]; ok && c.Name != "" {
			return c.Name
		}
		return match
	})
}
