package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for the play command.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Ember gradient, dark to bright
	s1 := termenv.String("  _       _     __                     ").Foreground(p.Color("#b45309"))
	s2 := termenv.String(" (_)_ __ | | __/ _| ___  _ __ __ _  ___ ").Foreground(p.Color("#d97706"))
	s3 := termenv.String(" | | '_ \\| |/ / |_ / _ \\| '__/ _` |/ _ \\").Foreground(p.Color("#f59e0b"))
	s4 := termenv.String(" | | | | |   <|  _| (_) | | | (_| |  __/").Foreground(p.Color("#fbbf24"))
	s5 := termenv.String(" |_|_| |_|_|\\_\\_|  \\___/|_|  \\__, |\\___|").Foreground(p.Color("#fcd34d"))
	s6 := termenv.String("                             |___/      ").Foreground(p.Color("#fde68a"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println()
}
