package inkforge

import (
	"context"
	"log/slog"

	"github.com/inkforge/inkforge/internal/compiler"
	"github.com/inkforge/inkforge/internal/logging"
	"github.com/inkforge/inkforge/internal/runtime"
	"github.com/inkforge/inkforge/internal/validator"
	"github.com/inkforge/inkforge/pkg/domain"
)

// Version is the library version reported by the CLI and the HTTP API.
const Version = "0.3.0"

// Parse compiles a gamebook document into its authoring representation.
// Malformed YAML or structural mismatches are returned as an error; scene
// references are deliberately not validated here (see Validate).
func Parse(text string) (*domain.Game, error) {
	return compiler.NewParser().Parse(text)
}

// Stringify renders a game back into canonical DSL text. For any game
// produced by Parse, re-parsing the output yields a structurally equal game.
func Stringify(game *domain.Game) (string, error) {
	return compiler.NewSerializer().Stringify(game)
}

// Validate runs the strict reference-integrity pass over a parsed game:
// broken choice targets, missing entry scene, unreachable scenes.
func Validate(game *domain.Game, entrySceneID string) error {
	return validator.Error(validator.ValidateGame(game, entrySceneID))
}

// EvaluateCondition resolves a DSL condition against a runtime state.
// Warnings for malformed conditions go to the default slog logger.
func EvaluateCondition(condition string, state domain.RuntimeState) bool {
	return runtime.NewEvaluator(slog.Default()).EvaluateCondition(condition, state)
}

// ExecuteSet applies a set instruction, returning a new state. An empty
// instruction returns the input state unchanged (same map).
func ExecuteSet(instruction string, state domain.RuntimeState) domain.RuntimeState {
	return runtime.NewEvaluator(slog.Default()).ExecuteSet(instruction, state)
}

// InterpolateVariables substitutes {{identifier}} placeholders; unknown
// identifiers are left verbatim.
func InterpolateVariables(text string, state domain.RuntimeState) string {
	return runtime.InterpolateVariables(text, state)
}

// ReplaceCharacterMentions rewrites @id mentions to character display names.
func ReplaceCharacterMentions(text string, characters map[string]domain.AICharacter) string {
	return runtime.ReplaceCharacterMentions(text, characters)
}

// ToPlayable strips authoring-only structure from a game.
func ToPlayable(game *domain.Game) *domain.PlayableGame {
	return domain.ToPlayable(game)
}

// ToSerializablePlayable flattens the projection for wire transport.
func ToSerializablePlayable(game *domain.Game) (map[string]any, error) {
	return domain.ToSerializablePlayable(game)
}

// Engine is the high-level entry point for playing a compiled game. It wraps
// the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	game    *domain.Game
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	entry   string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithEntryScene configures the initial scene id (default: "start").
func WithEntryScene(id string) Option {
	return func(e *Engine) {
		e.entry = id
	}
}

// NewEngine initializes a play engine for one game.
func NewEngine(game *domain.Game, opts ...Option) *Engine {
	eng := &Engine{
		game:  game,
		entry: runtime.DefaultEntryScene,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if game.Title != "" {
		eng.logger = eng.logger.With("game", game.Title)
	}

	eng.runtime = runtime.NewEngine(game,
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithEntryScene(eng.entry),
	)
	return eng
}

// Game returns the underlying game definition.
func (e *Engine) Game() *domain.Game {
	return e.game
}

// Start creates the initial state for a play session.
func (e *Engine) Start(ctx context.Context, sessionID string) (*domain.State, error) {
	return e.runtime.Start(ctx, sessionID)
}

// Render produces the player-visible nodes for the current state without
// transitioning. The second return reports whether the scene is terminal.
func (e *Engine) Render(ctx context.Context, state *domain.State) ([]domain.SceneNode, bool, error) {
	return e.runtime.Render(ctx, state)
}

// Choices returns the currently available choices in authoring order.
func (e *Engine) Choices(state *domain.State) ([]domain.SceneNode, error) {
	return e.runtime.Choices(state)
}

// Choose applies the idx-th available choice and returns the next state.
// The input state is never mutated.
func (e *Engine) Choose(ctx context.Context, state *domain.State, idx int) (*domain.State, error) {
	return e.runtime.Choose(ctx, state, idx)
}
