package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func echoSuccess(text string) {
	fmt.Println(successStyle.Render(text))
}

func echoWarning(text string) {
	fmt.Println(warningStyle.Render(text))
}

func echoError(text string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(text))
}

func echoUsual(text string) {
	fmt.Println(text)
}
