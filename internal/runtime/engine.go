package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/inkforge/inkforge/internal/logging"
	"github.com/inkforge/inkforge/pkg/domain"
)

// DefaultEntryScene is where a session begins unless configured otherwise.
const DefaultEntryScene = "start"

// Engine drives play sessions over a compiled game. It is stateless between
// calls: every method takes the session state in and hands a new state back,
// never mutating the input. Serializing transitions per session is the
// caller's job (see pkg/session).
type Engine struct {
	game       *domain.Game
	eval       *Evaluator
	logger     *slog.Logger
	hooks      domain.LifecycleHooks
	entryScene string
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithEntryScene overrides the initial scene id (default: "start").
func WithEntryScene(id string) EngineOption {
	return func(e *Engine) {
		if id != "" {
			e.entryScene = id
		}
	}
}

// NewEngine creates an engine for one game.
func NewEngine(game *domain.Game, opts ...EngineOption) *Engine {
	e := &Engine{
		game:       game,
		logger:     logging.NewNop(),
		entryScene: DefaultEntryScene,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.eval = NewEvaluator(e.logger)
	return e
}

// Evaluator exposes the engine's expression evaluator.
func (e *Engine) Evaluator() *Evaluator {
	return e.eval
}

// Start creates the initial session state.
func (e *Engine) Start(ctx context.Context, sessionID string) (*domain.State, error) {
	scene, ok := e.game.Scene(e.entryScene)
	if !ok {
		return nil, fmt.Errorf("entry scene %q: %w", e.entryScene, domain.ErrSceneNotFound)
	}

	state := domain.NewState(e.entryScene, e.game.InitialState)
	state.SessionID = sessionID
	state.Terminated = scene.IsTerminal()

	e.emitSceneEnter(ctx, state, scene)
	return state, nil
}

// Render produces the player-visible nodes of the current scene: text
// interpolated against the session variables, choices filtered by their
// conditions, media narrowed to its runtime shape. The second return
// reports whether the scene is effectively terminal (no available choices).
func (e *Engine) Render(ctx context.Context, state *domain.State) ([]domain.SceneNode, bool, error) {
	scene, ok := e.game.Scene(state.CurrentSceneID)
	if !ok {
		return nil, false, fmt.Errorf("scene %q: %w", state.CurrentSceneID, domain.ErrSceneNotFound)
	}

	var out []domain.SceneNode
	hasChoice := false
	for _, node := range scene.Nodes {
		switch node.Type {
		case domain.NodeText:
			rendered := node
			rendered.Content = InterpolateVariables(node.Content, state.Vars)
			rendered.Content = ReplaceCharacterMentions(rendered.Content, e.game.AI.Characters)
			out = append(out, rendered)
		case domain.NodeChoice:
			if !e.eval.EvaluateCondition(node.Condition, state.Vars) {
				continue
			}
			choice := node
			choice.Text = InterpolateVariables(node.Text, state.Vars)
			out = append(out, choice)
			hasChoice = true
		default:
			out = append(out, node)
		}
	}
	return out, !hasChoice, nil
}

// Choices returns the currently available choice nodes in authoring order.
func (e *Engine) Choices(state *domain.State) ([]domain.SceneNode, error) {
	scene, ok := e.game.Scene(state.CurrentSceneID)
	if !ok {
		return nil, fmt.Errorf("scene %q: %w", state.CurrentSceneID, domain.ErrSceneNotFound)
	}
	var out []domain.SceneNode
	for _, node := range scene.Choices() {
		if e.eval.EvaluateCondition(node.Condition, state.Vars) {
			out = append(out, node)
		}
	}
	return out, nil
}

// Choose applies the idx-th available choice: runs its set instruction on a
// copy of the variables, honors variable triggers, and transitions to the
// target scene. The input state is never mutated.
func (e *Engine) Choose(ctx context.Context, state *domain.State, idx int) (*domain.State, error) {
	if state.Terminated {
		return nil, domain.ErrGameTerminated
	}

	available, err := e.Choices(state)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(available) {
		return nil, fmt.Errorf("choice %d of %d: %w", idx, len(available), domain.ErrChoiceUnavailable)
	}
	choice := available[idx]

	next := state.Clone()
	next.Vars = e.eval.ExecuteSet(choice.Set, next.Vars)

	target := choice.NextSceneID
	if jump, ok := e.firedTrigger(next.Vars); ok {
		e.logger.Debug("variable trigger fired", "scene", jump)
		target = jump
	}

	scene, ok := e.game.Scene(target)
	if !ok {
		return nil, fmt.Errorf("choice target %q: %w", target, domain.ErrSceneNotFound)
	}

	e.emitSceneLeave(ctx, state)
	e.emitChoice(ctx, state, choice)

	next.CurrentSceneID = target
	next.History = append(next.History, target)
	next.Terminated = scene.IsTerminal()

	e.emitSceneEnter(ctx, next, scene)
	return next, nil
}

// firedTrigger scans initial-state variable triggers against the new
// variable values. Keys are checked in lexical order so the outcome is
// deterministic.
func (e *Engine) firedTrigger(vars domain.RuntimeState) (string, bool) {
	for _, key := range sortedTriggerKeys(e.game.InitialState) {
		v := e.game.InitialState[key]
		if v.Trigger == nil || v.Trigger.Scene == "" {
			continue
		}
		if e.eval.EvaluateCondition(v.Trigger.Condition, vars) {
			return v.Trigger.Scene, true
		}
	}
	return "", false
}

func sortedTriggerKeys(initial map[string]domain.VariableValue) []string {
	keys := make([]string, 0, len(initial))
	for k := range initial {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *Engine) emitSceneEnter(ctx context.Context, state *domain.State, scene *domain.Scene) {
	if e.hooks.OnSceneEnter == nil {
		return
	}
	e.hooks.OnSceneEnter(ctx, &domain.SceneEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSceneEnter, SessionID: state.SessionID},
		SceneID:   scene.ID,
		Terminal:  scene.IsTerminal(),
	})
}

func (e *Engine) emitSceneLeave(ctx context.Context, state *domain.State) {
	if e.hooks.OnSceneLeave == nil {
		return
	}
	e.hooks.OnSceneLeave(ctx, &domain.SceneEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSceneLeave, SessionID: state.SessionID},
		SceneID:   state.CurrentSceneID,
	})
}

func (e *Engine) emitChoice(ctx context.Context, state *domain.State, choice domain.SceneNode) {
	if e.hooks.OnChoice == nil {
		return
	}
	e.hooks.OnChoice(ctx, &domain.ChoiceEvent{
		EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventChoice, SessionID: state.SessionID},
		SceneID:     state.CurrentSceneID,
		ChoiceText:  choice.Text,
		NextSceneID: choice.NextSceneID,
		Set:         choice.Set,
	})
}
