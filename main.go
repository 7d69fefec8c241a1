package main

import (
	"context"
	"fmt"
	"os"

	"lunchmate/cmd"
	"lunchmate/internal/db"
	"lunchmate/internal/naver"
	"lunchmate/internal/notify"
	"lunchmate/internal/search"
	"lunchmate/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	config, err := cmd.ParseFlags(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	database, err := db.Open(config.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	// One-shot maintenance modes exit before the TUI starts.
	if config.ImportCSV != "" {
		count, err := cmd.ImportFavoritesCSV(database, config.ImportCSV)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d favorites\n", count)
		return
	}
	if config.AddURL != "" {
		name, err := cmd.AddFavoriteFromURL(context.Background(), database, config.AddURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Add failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added %s to favorites\n", name)
		return
	}

	client := naver.NewClient(config.NaverClientID, config.NaverClientSecret)
	searcher := search.NewSearcher(client, db.ExclusionStore{DB: database})
	notifier := notify.NewNotifier(config.SlackWebhookURL)
	if !notifier.Enabled() {
		fmt.Fprintln(os.Stderr, "ℹ  No SLACK_WEBHOOK_URL set — Slack notifications disabled")
	}

	p := tea.NewProgram(ui.New(database, searcher, notifier, nil), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
