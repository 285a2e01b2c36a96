package main

import (
	"fmt"
	"os"

	"github.com/inkforge/inkforge"
	"github.com/inkforge/inkforge/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export the scene graph visualization",
	Long:  `Compiles the gamebook and outputs a Mermaid diagram (graph TD) representing the branching structure.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		entry, _ := cmd.Flags().GetString("entry")

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

		fmt.Print(graph.GenerateMermaid(game, entry, nil))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
