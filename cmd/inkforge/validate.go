package main

import (
	"fmt"
	"os"

	"github.com/inkforge/inkforge"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check the scene graph for consistency",
	Long:  `Crawls the scene graph from the entry scene and reports broken choice targets, missing trigger scenes and unreachable scenes.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Game is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	entry, _ := cmd.Flags().GetString("entry")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	game, err := inkforge.Parse(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse: %w", err)
	}

	return inkforge.Validate(game, entry)
}
