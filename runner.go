package inkforge

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inkforge/inkforge/pkg/domain"
)

// ContentRenderer transforms node content before it is written. This allows
// TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// Runner executes an interactive play loop over an Engine using provided IO.
// It exists for the CLI and for tests; server consumers drive the Engine
// directly.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Renderer ContentRenderer
}

// NewRunner creates a Runner. Input and Output must be set by the caller
// (os.Stdin / os.Stdout for the CLI, buffers for tests).
func NewRunner(in io.Reader, out io.Writer) *Runner {
	return &Runner{Input: in, Output: out}
}

// Run plays the game from a fresh session until a terminal scene is reached
// or input is exhausted. It returns the final state.
func (r *Runner) Run(ctx context.Context, engine *Engine, sessionID string) (*domain.State, error) {
	if r.Input == nil || r.Output == nil {
		return nil, fmt.Errorf("runner requires both input and output")
	}
	reader := bufio.NewReader(r.Input)

	state, err := engine.Start(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		nodes, terminal, err := engine.Render(ctx, state)
		if err != nil {
			return state, err
		}

		choiceNum := 0
		for _, node := range nodes {
			switch node.Type {
			case domain.NodeText:
				if err := r.write(node.Content + "\n"); err != nil {
					return state, err
				}
			case domain.NodeChoice:
				choiceNum++
				if err := r.write(fmt.Sprintf("  %d) %s\n", choiceNum, node.Text)); err != nil {
					return state, err
				}
			}
		}

		if terminal {
			return state, nil
		}

		idx, err := r.readChoice(reader, choiceNum)
		if err == io.EOF {
			return state, nil
		}
		if err != nil {
			fmt.Fprintf(r.Output, "%v\n", err)
			continue
		}

		state, err = engine.Choose(ctx, state, idx)
		if err != nil {
			return state, err
		}
	}
}

func (r *Runner) write(content string) error {
	if r.Renderer != nil {
		rendered, err := r.Renderer(content)
		if err == nil {
			content = rendered
		}
	}
	_, err := io.WriteString(r.Output, content)
	return err
}

func (r *Runner) readChoice(reader *bufio.Reader, max int) (int, error) {
	fmt.Fprint(r.Output, "> ")
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return 0, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil || n < 1 || n > max {
		return 0, fmt.Errorf("pick a number between 1 and %d", max)
	}
	return n - 1, nil
}
