package main

import (
	"fmt"
	"strings"

	"github.com/inkforge/inkforge"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of inkforge",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("inkforge version %s\n", strings.TrimSpace(inkforge.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
