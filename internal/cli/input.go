// Package cli runs the interactive query loop used for debugging and
// exploring a single document.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/pgalyzer/internal/utils"
	"github.com/bastiangx/pgalyzer/pkg/analyzer"
	"github.com/bastiangx/pgalyzer/pkg/config"
	"github.com/bastiangx/pgalyzer/pkg/freq"
	"github.com/bastiangx/pgalyzer/pkg/predict"
	"github.com/charmbracelet/log"
)

// InputHandler reads commands line by line and prints their answers.
// Problems with a single command are logged and the loop carries on.
type InputHandler struct {
	engine       analyzer.Engine
	in           io.Reader
	out          io.Writer
	styles       Styles
	limit        int
	neighborhood int
	requestCount int
}

// NewInputHandler creates a handler over in and out, typically stdin and stdout.
func NewInputHandler(engine analyzer.Engine, cfg config.CliConfig, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		engine:       engine,
		in:           in,
		out:          out,
		styles:       NewStyles(out),
		limit:        cfg.DefaultLimit,
		neighborhood: cfg.DefaultNeighborhood,
	}
}

// Start begins the interface loop. It returns nil on quit or when the
// input ends.
func (h *InputHandler) Start() error {
	log.Print("pgalyzer REPL")
	log.Print("type a command and press Enter, 'help' lists them (Ctrl+C to exit):")
	reader := bufio.NewReader(h.in)

	for {
		fmt.Fprint(h.out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		line = strings.TrimSpace(line)

		if line != "" && !h.handleInput(line) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(h.out)
			log.Debugf("Input closed after %d commands", h.requestCount)
			return nil
		}
	}
}

// handleInput runs one line. It returns false when the loop should stop.
func (h *InputHandler) handleInput(line string) bool {
	cmd, err := ParseCommand(line, h.limit, h.neighborhood)
	if err != nil {
		log.Error(err)
		return true
	}
	h.requestCount++

	start := time.Now()
	defer func() {
		log.Debugf("Took [ %v ] for '%s'", time.Since(start), line)
	}()

	switch cmd.Action {
	case ActionQuit:
		return false
	case ActionHelp:
		h.printHelp()
	case ActionStats:
		h.printStats()
	case ActionTop:
		h.printEntries(h.engine.Words(cmd.Limit), "words")
	case ActionNGrams:
		entries, err := h.engine.NGrams(cmd.N, cmd.Limit)
		if err != nil {
			log.Error(err)
			break
		}
		h.printEntries(entries, fmt.Sprintf("%d-grams", cmd.N))
	case ActionComplete:
		entries := h.engine.Complete(cmd.Arg, cmd.Limit)
		if len(entries) == 0 {
			log.Warnf("No completions found for prefix: '%s'", cmd.Arg)
			break
		}
		h.printEntries(entries, fmt.Sprintf("completions of '%s'", cmd.Arg))
	case ActionNext, ActionPrevious:
		h.printNeighbors(cmd)
	case ActionKwic:
		h.printConcordance(cmd)
	}
	return true
}

func (h *InputHandler) printNeighbors(cmd Command) {
	var (
		neighbors []predict.Neighbor
		err       error
		dir       = predict.Next
	)
	if cmd.Action == ActionPrevious {
		dir = predict.Previous
		neighbors, err = h.engine.LikelyPrevious(cmd.Arg, cmd.N)
	} else {
		neighbors, err = h.engine.LikelyNext(cmd.Arg, cmd.N)
	}
	if err != nil {
		if errors.Is(err, predict.ErrNotFound) {
			log.Warnf("No %s word found for '%s'", dir, cmd.Arg)
			return
		}
		log.Error(err)
		return
	}

	entries := make([]freq.Entry, len(neighbors))
	for i, n := range neighbors {
		entries[i] = freq.Entry{Text: n.Word, Count: n.Count}
	}
	h.printEntries(entries, fmt.Sprintf("%s words of '%s'", dir, cmd.Arg))
}

func (h *InputHandler) printConcordance(cmd Command) {
	windows, err := h.engine.Concordance(cmd.Arg, cmd.N)
	if err != nil {
		log.Error(err)
		return
	}
	if len(windows) == 0 {
		log.Warnf("No occurrences of '%s'", cmd.Arg)
		return
	}
	fmt.Fprintln(h.out, h.styles.Header.Render(fmt.Sprintf("Found %d occurrences of '%s':", len(windows), cmd.Arg)))
	fmt.Fprintln(h.out, concordanceText(windows, cmd.Arg, h.styles))
}

func (h *InputHandler) printEntries(entries []freq.Entry, what string) {
	if len(entries) == 0 {
		log.Warnf("No %s found", what)
		return
	}
	fmt.Fprintln(h.out, h.styles.Header.Render(fmt.Sprintf("Found %d %s:", len(entries), what)))
	for i, e := range entries {
		word := h.styles.Word.Render(fmt.Sprintf("%-30s", e.Text))
		count := h.styles.Count.Render(fmt.Sprintf("(count: %8s)", utils.FormatWithCommas(e.Count)))
		fmt.Fprintf(h.out, "%2d. %s %s\n", i+1, word, count)
	}
}

func (h *InputHandler) printStats() {
	stats := h.engine.Stats()
	cleaned := "no"
	if stats["cleaned"] == 1 {
		cleaned = "yes"
	}
	fmt.Fprintf(h.out, "lines:   %s\n", utils.FormatWithCommas(stats["lines"]))
	fmt.Fprintf(h.out, "tokens:  %s\n", utils.FormatWithCommas(stats["tokens"]))
	fmt.Fprintf(h.out, "words:   %s\n", utils.FormatWithCommas(stats["uniqueWords"]))
	fmt.Fprintf(h.out, "cleaned: %s\n", cleaned)
}

func (h *InputHandler) printHelp() {
	fmt.Fprintln(h.out, h.styles.Header.Render("Commands:"))
	for _, action := range helpOrder {
		fmt.Fprintf(h.out, "  %s\n", usage[action])
	}
}
