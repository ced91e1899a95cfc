package main

import (
	"os"

	"github.com/bastiangx/pgalyzer/internal/utils"
	"github.com/bastiangx/pgalyzer/pkg/analyzer"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ PGalyzer ] Counts, concordances and predictions for Project Gutenberg books")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the loaded book.
// Everything goes to stderr since stdout carries the IPC stream.
func showStartupInfo(engine *analyzer.Analyzer) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	stats := engine.Stats()

	println("===========")
	println(" PGalyzer  ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("lines: %s, tokens: %s, unique words: %s",
		utils.FormatWithCommas(stats["lines"]),
		utils.FormatWithCommas(stats["tokens"]),
		utils.FormatWithCommas(stats["uniqueWords"]))
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
