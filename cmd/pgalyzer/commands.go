package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/bastiangx/pgalyzer/internal/cli"
	"github.com/bastiangx/pgalyzer/internal/utils"
	"github.com/bastiangx/pgalyzer/pkg/analyzer"
	"github.com/bastiangx/pgalyzer/pkg/concordance"
	"github.com/bastiangx/pgalyzer/pkg/config"
	"github.com/bastiangx/pgalyzer/pkg/document"
	"github.com/bastiangx/pgalyzer/pkg/freq"
	"github.com/bastiangx/pgalyzer/pkg/metrics"
	"github.com/bastiangx/pgalyzer/pkg/predict"
	"github.com/bastiangx/pgalyzer/pkg/server"
	"github.com/bastiangx/pgalyzer/pkg/source"
	"github.com/charmbracelet/log"
)

var errUsage = errors.New("usage")

// app carries what every command needs
type app struct {
	cfg    *config.Config
	stdin  io.Reader
	stdout io.Writer
}

type command struct {
	name    string
	args    string
	summary string
	run     func(a *app, args []string) error
}

var commands = []command{
	{"ngrams", "FILE", "Sorted n-gram counts", (*app).ngrams},
	{"word-count", "FILE", "Sorted word counts", (*app).wordCount},
	{"concordance", "FILE WORD", "Context windows around WORD", (*app).concordance},
	{"display-concordance", "FILE WORD", "Aligned concordance of WORD", (*app).displayConcordance},
	{"likely-next", "FILE WORD", "Most likely next words after WORD", (*app).likelyNext},
	{"likely-previous", "FILE WORD", "Most likely previous words before WORD", (*app).likelyPrevious},
	{"complete", "FILE PREFIX", "Most frequent words starting with PREFIX", (*app).complete},
	{"repl", "FILE", "Interactive queries", (*app).repl},
	{"serve", "FILE", "MessagePack IPC server on stdin/stdout", (*app).serve},
}

// run executes one invocation and returns the exit code.
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	global := flag.NewFlagSet(AppName, flag.ContinueOnError)
	debugMode := global.Bool("d", false, "Toggle debug mode")
	configPath := global.String("config", "", "Path to a custom config file")
	showVersion := global.Bool("version", false, "Show current version")
	global.Usage = func() { printUsage(global) }

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	rest := global.Args()
	if *showVersion || (len(rest) > 0 && rest[0] == "version") {
		printVersion()
		return 0
	}
	if len(rest) == 0 {
		printUsage(global)
		return 2
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == rest[0] {
			cmd = &commands[i]
			break
		}
	}
	if cmd == nil {
		log.Errorf("Unknown command: %s", rest[0])
		printUsage(global)
		return 2
	}

	cfg, usedPath := config.LoadConfigWithPriority(*configPath)
	log.Debugf("Using config file: (%s)", utils.GetAbsolutePath(usedPath))

	a := &app{cfg: cfg, stdin: stdin, stdout: stdout}
	if err := cmd.run(a, rest[1:]); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			return 0
		case errors.Is(err, errUsage):
			fmt.Fprintf(os.Stderr, "usage: %s %s %s [flags]\n", AppName, cmd.name, cmd.args)
			return 2
		case errors.Is(err, predict.ErrNotFound):
			log.Errorf("No results: %v", err)
			return 1
		default:
			log.Error(err)
			return 1
		}
	}
	return 0
}

func printUsage(global *flag.FlagSet) {
	out := global.Output()
	fmt.Fprintf(out, "usage: %s [-d] [-config PATH] <command> [flags] FILE [ARGS]\n\nCommands:\n", AppName)
	for _, c := range commands {
		fmt.Fprintf(out, "  %-20s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(out, "  %-20s %s\n\nGlobal flags:\n", "version", "Show current version")
	global.PrintDefaults()
}

// flagSet creates the flag set of a command with the shared -c flag.
func (a *app) flagSet(name string) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clean := new(bool)
	fs.BoolVar(clean, "c", a.cfg.Analysis.Clean, "Strip the Project Gutenberg header/footer and normalize the text")
	fs.BoolVar(clean, "clean-pg", a.cfg.Analysis.Clean, "Same as -c")
	return fs, clean
}

// parseArgs parses flags placed anywhere among the positional arguments
// and checks their count.
func parseArgs(fs *flag.FlagSet, args []string, want int) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
	if len(positional) != want {
		return nil, fmt.Errorf("%w: want %d arguments, got %d", errUsage, want, len(positional))
	}
	return positional, nil
}

func (a *app) load(path string, clean bool) (*document.Document, error) {
	doc, err := source.Load(path, a.stdin, clean, a.cfg.DocumentOptions())
	if err != nil {
		return nil, err
	}
	log.Debugf("Loaded %s: %d lines, %d tokens, clean=%t", path, doc.NumLines(), doc.NumTokens(), clean)
	return doc, nil
}

func (a *app) ngrams(args []string) error {
	fs, clean := a.flagSet("ngrams")
	n := fs.Int("n", a.cfg.Analysis.NGramSize, "Number of words in the n-gram")
	limit := fs.Int("l", 0, "Maximum number of n-grams to print (0 for all)")
	pos, err := parseArgs(fs, args, 1)
	if err != nil {
		return err
	}
	doc, err := a.load(pos[0], *clean)
	if err != nil {
		return err
	}
	counts, err := freq.NGrams(doc, *n)
	if err != nil {
		return err
	}
	a.printEntries(freq.Top(counts, *limit))
	return nil
}

func (a *app) wordCount(args []string) error {
	fs, clean := a.flagSet("word-count")
	pos, err := parseArgs(fs, args, 1)
	if err != nil {
		return err
	}
	doc, err := a.load(pos[0], *clean)
	if err != nil {
		return err
	}
	a.printEntries(freq.Rank(freq.Words(doc)))
	return nil
}

func (a *app) concordance(args []string) error {
	fs, clean := a.flagSet("concordance")
	ns := fs.Int("ns", a.cfg.Analysis.NeighborhoodSize, "Number of words to count back/forward from WORD")
	pos, err := parseArgs(fs, args, 2)
	if err != nil {
		return err
	}
	doc, err := a.load(pos[0], *clean)
	if err != nil {
		return err
	}
	windows, err := concordance.Find(doc, pos[1], *ns)
	if err != nil {
		return err
	}
	for _, w := range windows {
		fmt.Fprintf(a.stdout, "%s\t%s\n", w.Before, w.After)
	}
	return nil
}

func (a *app) displayConcordance(args []string) error {
	fs, clean := a.flagSet("display-concordance")
	ns := fs.Int("ns", a.cfg.Analysis.NeighborhoodSize, "Number of words to count back/forward from WORD")
	pos, err := parseArgs(fs, args, 2)
	if err != nil {
		return err
	}
	doc, err := a.load(pos[0], *clean)
	if err != nil {
		return err
	}
	display, err := concordance.DisplayFor(doc, pos[1], *ns, concordance.Plain)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, display)
	return nil
}

func (a *app) likelyNext(args []string) error {
	return a.likely("likely-next", predict.Next, args)
}

func (a *app) likelyPrevious(args []string) error {
	return a.likely("likely-previous", predict.Previous, args)
}

func (a *app) likely(name string, dir predict.Direction, args []string) error {
	fs, clean := a.flagSet(name)
	n := fs.Int("n", a.cfg.Analysis.LikelyLimit, fmt.Sprintf("Number of likely %s words to return", dir))
	pos, err := parseArgs(fs, args, 2)
	if err != nil {
		return err
	}
	doc, err := a.load(pos[0], *clean)
	if err != nil {
		return err
	}

	var neighbors []predict.Neighbor
	if dir == predict.Previous {
		neighbors, err = predict.LikelyPrevious(doc, pos[1], *n)
	} else {
		neighbors, err = predict.LikelyNext(doc, pos[1], *n)
	}
	if err != nil {
		return err
	}
	for _, nb := range neighbors {
		fmt.Fprintf(a.stdout, "%s\t%d\n", nb.Word, nb.Count)
	}
	return nil
}

func (a *app) complete(args []string) error {
	fs, clean := a.flagSet("complete")
	n := fs.Int("n", a.cfg.CLI.DefaultLimit, "Number of completions to return")
	pos, err := parseArgs(fs, args, 2)
	if err != nil {
		return err
	}
	doc, err := a.load(pos[0], *clean)
	if err != nil {
		return err
	}
	entries := analyzer.New(doc).Complete(pos[1], *n)
	if len(entries) == 0 {
		log.Warnf("No completions found for prefix: '%s'", pos[1])
	}
	a.printEntries(entries)
	return nil
}

// openAnalyzer loads a file for the long running modes, which read
// commands from stdin and so cannot take the text from it.
func (a *app) openAnalyzer(fs *flag.FlagSet, clean *bool, args []string) (*analyzer.Analyzer, error) {
	pos, err := parseArgs(fs, args, 1)
	if err != nil {
		return nil, err
	}
	if pos[0] == source.Stdin {
		return nil, fmt.Errorf("%s reads commands from stdin, pass a file path instead of %q", fs.Name(), source.Stdin)
	}
	doc, err := a.load(pos[0], *clean)
	if err != nil {
		return nil, err
	}
	return analyzer.New(doc), nil
}

func (a *app) repl(args []string) error {
	fs, clean := a.flagSet("repl")
	engine, err := a.openAnalyzer(fs, clean, args)
	if err != nil {
		return err
	}
	log.SetReportTimestamp(false)
	log.Debug("Input info:", "limit", a.cfg.CLI.DefaultLimit, "neighborhood", a.cfg.CLI.DefaultNeighborhood)
	return cli.NewInputHandler(engine, a.cfg.CLI, a.stdin, a.stdout).Start()
}

func (a *app) serve(args []string) error {
	fs, clean := a.flagSet("serve")
	metricsAddr := fs.String("metrics", "", "Serve Prometheus metrics over HTTP on this address, e.g. :9090")
	engine, err := a.openAnalyzer(fs, clean, args)
	if err != nil {
		return err
	}
	if err := engine.Warm(); err != nil {
		return fmt.Errorf("failed to build tables: %w", err)
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(engine, a.cfg, a.stdin, a.stdout)
	if *metricsAddr != "" {
		m := metrics.New()
		srv.SetMetrics(m)
		go serveMetrics(*metricsAddr, m)
	}
	showStartupInfo(engine)
	return srv.Start()
}

func serveMetrics(addr string, m *metrics.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	log.Debugf("Serving metrics on %s/metrics", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Errorf("Metrics server: %v", err)
	}
}

func (a *app) printEntries(entries []freq.Entry) {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s\t%d", e.Text, e.Count)
	}
	if len(lines) > 0 {
		fmt.Fprintln(a.stdout, strings.Join(lines, "\n"))
	}
}
