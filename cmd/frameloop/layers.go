package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/frameloop/internal/config"
	"github.com/vovakirdan/frameloop/internal/registry"
)

var layersCmd = &cobra.Command{
	Use:   "layers",
	Short: "List registered layers and the configured stack",
	Long: `Shows every registered layer. Layers in the configured stack are listed
with their position (1 is the bottom, drawn first) and logical tick rate.`,
	Args: cobra.NoArgs,
	Run:  runLayers,
}

func runLayers(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}

	infos := registry.List()
	if len(infos) == 0 {
		fmt.Println("No layers registered.")
		return
	}

	fmt.Printf("Layers (config: %s)\n\n", cfg.Source)
	fmt.Println(layerTable(cfg, infos))
}

func layerTable(cfg config.Config, infos []registry.Info) string {
	pos := make(map[string]int, len(cfg.Layers))
	rates := make(map[string]string, len(cfg.Layers))
	for i, lc := range cfg.Layers {
		pos[lc.ID] = i + 1
		rates[lc.ID] = "every frame"
		if lc.TickRate > 0 {
			rates[lc.ID] = fmt.Sprintf("%g Hz (%s)", lc.TickRate, lc.DeltaTime())
		}
	}

	rows := make([]table.Row, 0, len(infos))
	for _, info := range infos {
		p, rate := "-", "-"
		if n, ok := pos[info.ID]; ok {
			p, rate = strconv.Itoa(n), rates[info.ID]
		}
		rows = append(rows, table.Row{p, info.ID, info.Title, rate})
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = lipgloss.NewStyle()

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Pos", Width: 4},
			{Title: "ID", Width: 10},
			{Title: "Title", Width: 20},
			{Title: "Tick rate", Width: 24},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2),
		table.WithStyles(styles),
	)
	t.Blur()
	return t.View()
}
