package graph

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/inkforge/inkforge/pkg/domain"
)

// Overlay contains dynamic session data to visualize on the graph.
type Overlay struct {
	VisitedScenes []string
	CurrentScene  string
}

var unsafeMermaidChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// GenerateMermaid produces a Mermaid flowchart from a game's scene graph.
// Shapes: ((circle)) for the entry scene, [/parallelogram/] for scenes with
// choices, [rectangle] for terminal scenes. Choice conditions become edge
// labels; an overlay highlights visited and current scenes.
func GenerateMermaid(game *domain.Game, entrySceneID string, overlay *Overlay) string {
	if entrySceneID == "" {
		entrySceneID = "start"
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for pair := game.Scenes.Oldest(); pair != nil; pair = pair.Next() {
		scene := pair.Value
		safeID := sanitizeMermaidID(scene.ID)

		opener, closer := "[", "]"
		switch {
		case scene.ID == entrySceneID:
			opener, closer = "((", "))"
		case !scene.IsTerminal():
			opener, closer = "[/", "/]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, scene.ID, closer))

		for _, node := range scene.Nodes {
			if node.Type != domain.NodeChoice || node.NextSceneID == "" {
				continue
			}
			arrow := "-->"
			if node.Condition != "" {
				safeCondition := strings.ReplaceAll(node.Condition, "\"", "'")
				arrow = fmt.Sprintf("-- \"%s\" -->", safeCondition)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, sanitizeMermaidID(node.NextSceneID)))
		}
	}

	// Trigger jumps from the initial state render as dotted edges from the
	// entry scene (they can fire from anywhere; the entry anchor keeps the
	// diagram readable).
	for key, v := range game.InitialState {
		if v.Trigger == nil || v.Trigger.Scene == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s -. \"%s\" .-> %s\n",
			sanitizeMermaidID(entrySceneID), key, sanitizeMermaidID(v.Trigger.Scene)))
	}

	if overlay != nil {
		for _, id := range overlay.VisitedScenes {
			sb.WriteString(fmt.Sprintf("    style %s fill:#e0e7ff\n", sanitizeMermaidID(id)))
		}
		if overlay.CurrentScene != "" {
			sb.WriteString(fmt.Sprintf("    style %s fill:#fbbf24,stroke:#b45309\n", sanitizeMermaidID(overlay.CurrentScene)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	return unsafeMermaidChars.ReplaceAllString(id, "_")
}
