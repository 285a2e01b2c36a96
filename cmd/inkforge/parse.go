package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/inkforge/inkforge"
	"github.com/inkforge/inkforge/pkg/domain"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Compile a gamebook and print its structure",
	Long:  `Parses a gamebook document and prints the compiled game as JSON. With --playable, prompts and hidden variables are stripped.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		playable, _ := cmd.Flags().GetBool("playable")

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

		var out any
		if playable {
			out, err = inkforge.ToSerializablePlayable(game)
			if err != nil {
				fmt.Printf("Projection error: %v\n", err)
				os.Exit(1)
			}
		} else {
			out = map[string]any{
				"title":  game.Title,
				"scenes": game.SceneIDs(),
				"state":  domain.ExtractRuntimeState(game.InitialState),
			}
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Printf("Encode error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().Bool("playable", false, "Output the client-safe projection")
}
