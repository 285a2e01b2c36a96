package main

import (
	"context"
	"fmt"
	"os"

	"log/slog"

	"github.com/inkforge/inkforge"
	"github.com/inkforge/inkforge/internal/logging"
	"github.com/inkforge/inkforge/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Play a gamebook interactively",
	Long:  `Compiles the gamebook and runs an interactive session in the terminal. Markdown is rendered with colors when attached to a TTY.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Println("Error: missing gamebook file")
			os.Exit(1)
		}
		entry, _ := cmd.Flags().GetString("entry")
		plain, _ := cmd.Flags().GetBool("plain")
		verbose, _ := cmd.Flags().GetBool("verbose")

		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error reading file: %v\n", err)
			os.Exit(1)
		}

		game, err := inkforge.Parse(string(data))
		if err != nil {
			fmt.Printf("Parse error: %v\n", err)
			os.Exit(1)
		}

		logger := logging.NewNop()
		if verbose {
			logger = logging.New(slog.LevelDebug)
		}

		engine := inkforge.NewEngine(game,
			inkforge.WithLogger(logger),
			inkforge.WithEntryScene(entry),
		)

		runner := inkforge.NewRunner(os.Stdin, os.Stdout)
		if isTTY() && !plain {
			tui.PrintBanner()
			runner.Renderer = tui.NewRenderer()
		}

		if _, err := runner.Run(context.Background(), engine, "local"); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().Bool("plain", false, "Disable markdown rendering and the banner")
	playCmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")

	// Make 'play' the default if no command is provided.
	rootCmd.Run = playCmd.Run
}
