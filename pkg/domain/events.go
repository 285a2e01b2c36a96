package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSceneEnter EventType = "scene_enter"
	EventSceneLeave EventType = "scene_leave"
	EventChoice     EventType = "choice"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// SceneEvent represents entry into or exit from a scene.
type SceneEvent struct {
	EventBase
	SceneID  string `json:"scene_id"`
	Terminal bool   `json:"terminal,omitempty"`
}

// ChoiceEvent represents a player decision.
type ChoiceEvent struct {
	EventBase
	SceneID     string `json:"scene_id"`
	ChoiceText  string `json:"choice_text"`
	NextSceneID string `json:"next_scene_id"`
	Set         string `json:"set,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnSceneEnter func(context.Context, *SceneEvent)
	OnSceneLeave func(context.Context, *SceneEvent)
	OnChoice     func(context.Context, *ChoiceEvent)
}
