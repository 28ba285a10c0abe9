package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/numhunt/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available scenes",
	Long:  `Shows every scene registered with numhunt.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	scenes := registry.List()

	if len(scenes) == 0 {
		fmt.Println("No scenes available.")
		return
	}

	fmt.Println("Available scenes:")
	fmt.Println()

	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, s := range scenes {
		maxIDLen = max(maxIDLen, runewidth.StringWidth(s.ID))
		maxTitleLen = max(maxTitleLen, runewidth.StringWidth(s.Title))
	}

	fmt.Printf("  %s  %s  %s\n", runewidth.FillRight("ID", maxIDLen), runewidth.FillRight("Title", maxTitleLen), "Description")
	fmt.Printf("  %s  %s  %s\n", runewidth.FillRight("--", maxIDLen), runewidth.FillRight("-----", maxTitleLen), "-----------")

	for _, s := range scenes {
		fmt.Printf("  %s  %s  %s\n", runewidth.FillRight(s.ID, maxIDLen), runewidth.FillRight(s.Title, maxTitleLen), s.Description)
	}

	fmt.Println()
	fmt.Println("Run 'numhunt play <id>' to play a scene.")
}
