package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrSceneNotFound is returned when a scene id does not exist in the game.
var ErrSceneNotFound = errors.New("scene not found")

// ErrChoiceUnavailable is returned when a submitted choice does not exist or
// its condition evaluates to false for the current state.
var ErrChoiceUnavailable = errors.New("choice unavailable")

// ErrGameTerminated is returned when navigating a session that already
// reached a terminal scene.
var ErrGameTerminated = errors.New("game terminated")
