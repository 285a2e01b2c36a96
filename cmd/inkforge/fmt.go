package main

import (
	"fmt"
	"os"

	"github.com/inkforge/inkforge"
	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Rewrite a gamebook in canonical form",
	Long:  `Parses a gamebook document and re-serializes it, normalizing front matter and scene layout.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		write, _ := cmd.Flags().GetBool("write")

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

		text, err := inkforge.Stringify(game)
		if err != nil {
			fmt.Printf("Serialize error: %v\n", err)
			os.Exit(1)
		}

		if write {
			if err := os.WriteFile(args[0], []byte(text), 0o644); err != nil {
				fmt.Printf("Error writing file: %v\n", err)
				os.Exit(1)
			}
			return
		}
		fmt.Print(text)
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolP("write", "w", false, "Write the result back to the file")
}
