package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs an ASCII art banner for the tour CLI.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Teal/Blue)
	s1 := termenv.String("  ___ _    _  __ _   ___                 ").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String(" / __| |_ (_)/ _| |_/ __|_  _ _ _  __    ").Foreground(p.Color("#22d3ee"))
	s3 := termenv.String(" \\__ \\ ' \\| |  _|  _\\__ \\ || | ' \\/ _|   ").Foreground(p.Color("#38bdf8"))
	s4 := termenv.String(" |___/_||_|_|_|  \\__|___/\\_, |_||_\\__|   ").Foreground(p.Color("#60a5fa"))
	s5 := termenv.String("                         |__/  tour      ").Foreground(p.Color("#818cf8"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	if v := strings.TrimSpace(version); v != "" {
		fmt.Println(termenv.String("  v" + v).Faint())
	}
	fmt.Println()
}
