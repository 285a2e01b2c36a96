package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "inkforge",
	Short: "Inkforge compiles and plays Markdown gamebooks",
	Long:  `Inkforge turns Markdown documents with YAML front matter into playable branching stories.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("entry", "start", "Entry scene id")
}
