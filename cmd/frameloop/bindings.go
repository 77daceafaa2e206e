package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/frameloop/internal/app"
)

var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "Show the key bindings of every layer",
	Long: `Builds the configured layer stack without a terminal and prints each
layer's key bindings, top layer first. A layer higher in the stack sees a
key before the layers below it.`,
	Args: cobra.NoArgs,
	Run:  runBindings,
}

var (
	layerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyStyle   = lipgloss.NewStyle().Width(10)
)

func runBindings(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}

	a, err := app.New(cfg, app.Options{
		Seed:     flagSeed,
		Renderer: lipgloss.NewRenderer(io.Discard),
	})
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	for _, id := range a.IDs() {
		fmt.Println(layerStyle.Render(id))
		bindings := a.LayerBindings(id)
		if len(bindings) == 0 {
			fmt.Println("  (none)")
		}
		for _, b := range bindings {
			fmt.Printf("  %s %s\n", keyStyle.Render(b.Code.String()), b.Name)
		}
		fmt.Println()
	}
}
