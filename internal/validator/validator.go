package validator

import (
	"fmt"
	"strings"

	"github.com/inkforge/inkforge/pkg/domain"
)

// Issue is a single reference-integrity finding.
type Issue struct {
	SceneID string
	Message string
}

func (i Issue) String() string {
	if i.SceneID == "" {
		return i.Message
	}
	return fmt.Sprintf("scene %q: %s", i.SceneID, i.Message)
}

// ValidateGame checks the parsed game for broken choice targets and scenes
// unreachable from the entry scene. The parser deliberately skips these
// checks; this pass is the strict counterpart.
func ValidateGame(game *domain.Game, entrySceneID string) []Issue {
	var issues []Issue

	if entrySceneID == "" {
		entrySceneID = "start"
	}

	if game.Scenes == nil || game.Scenes.Len() == 0 {
		return []Issue{{Message: "game has no scenes"}}
	}

	if _, ok := game.Scene(entrySceneID); !ok {
		issues = append(issues, Issue{Message: fmt.Sprintf("entry scene %q not found", entrySceneID)})
	}

	// Broken links and empty targets.
	for pair := game.Scenes.Oldest(); pair != nil; pair = pair.Next() {
		for i, node := range pair.Value.Nodes {
			if node.Type != domain.NodeChoice {
				continue
			}
			if node.NextSceneID == "" {
				issues = append(issues, Issue{
					SceneID: pair.Key,
					Message: fmt.Sprintf("choice %d has an empty target", i),
				})
				continue
			}
			if _, ok := game.Scene(node.NextSceneID); !ok {
				issues = append(issues, Issue{
					SceneID: pair.Key,
					Message: fmt.Sprintf("choice %d targets missing scene %q", i, node.NextSceneID),
				})
			}
		}
	}

	// Trigger targets from the initial state.
	for key, v := range game.InitialState {
		if v.Trigger == nil || v.Trigger.Scene == "" {
			continue
		}
		if _, ok := game.Scene(v.Trigger.Scene); !ok {
			issues = append(issues, Issue{
				Message: fmt.Sprintf("variable %q trigger targets missing scene %q", key, v.Trigger.Scene),
			})
		}
	}

	// Reachability crawl. Trigger targets count as roots: a trigger can jump
	// anywhere regardless of the choice graph.
	visited := make(map[string]bool)
	queue := []string{entrySceneID}
	for _, v := range game.InitialState {
		if v.Trigger != nil && v.Trigger.Scene != "" {
			queue = append(queue, v.Trigger.Scene)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true

		scene, ok := game.Scene(id)
		if !ok {
			continue // already reported as a broken link
		}
		for _, node := range scene.Nodes {
			if node.Type == domain.NodeChoice && node.NextSceneID != "" && !visited[node.NextSceneID] {
				queue = append(queue, node.NextSceneID)
			}
		}
	}
	for pair := game.Scenes.Oldest(); pair != nil; pair = pair.Next() {
		if !visited[pair.Key] {
			issues = append(issues, Issue{
				SceneID: pair.Key,
				Message: "unreachable from entry scene",
			})
		}
	}

	return issues
}

// Error flattens issues into a single error, or nil when the game is clean.
func Error(issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	msgs := make([]string, len(issues))
	for i, issue := range issues {
		msgs[i] = issue.String()
	}
	return fmt.Errorf("found %d issues:\n- %s", len(issues), strings.Join(msgs, "\n- "))
}
