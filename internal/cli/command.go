package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bastiangx/pgalyzer/internal/utils"
)

// Action names a REPL command
type Action string

const (
	ActionNext     Action = "next"
	ActionPrevious Action = "prev"
	ActionKwic     Action = "kwic"
	ActionTop      Action = "top"
	ActionNGrams   Action = "ngrams"
	ActionComplete Action = "complete"
	ActionStats    Action = "stats"
	ActionHelp     Action = "help"
	ActionQuit     Action = "quit"
)

var (
	ErrEmptyCommand   = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
)

var usage = map[Action]string{
	ActionNext:     "next WORD [N]",
	ActionPrevious: "prev WORD [N]",
	ActionKwic:     "kwic WORD [SIZE]",
	ActionTop:      "top [N]",
	ActionNGrams:   "ngrams N [LIMIT]",
	ActionComplete: "complete PREFIX [N]",
	ActionStats:    "stats",
	ActionHelp:     "help",
	ActionQuit:     "quit",
}

// helpOrder lists commands the way help prints them
var helpOrder = []Action{
	ActionNext, ActionPrevious, ActionKwic, ActionTop,
	ActionNGrams, ActionComplete, ActionStats, ActionHelp, ActionQuit,
}

var aliases = map[string]Action{
	"previous":    ActionPrevious,
	"concordance": ActionKwic,
	"words":       ActionTop,
	"exit":        ActionQuit,
	"q":           ActionQuit,
}

// Command is one parsed REPL line.
// Arg holds the word or prefix, N the neighbor count, window size or
// n-gram size, Limit the length of a ranking.
type Command struct {
	Action Action
	Arg    string
	N      int
	Limit  int
}

// ParseCommand turns a REPL line into a Command. limit and neighborhood
// fill in omitted counts.
func ParseCommand(line string, limit, neighborhood int) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}

	name := strings.ToLower(fields[0])
	action := Action(name)
	if alias, ok := aliases[name]; ok {
		action = alias
	}
	if _, ok := usage[action]; !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
	}

	args := fields[1:]
	cmd := Command{Action: action}
	var err error

	switch action {
	case ActionNext, ActionPrevious, ActionKwic, ActionComplete:
		if len(args) < 1 || len(args) > 2 {
			return Command{}, usageError(action)
		}
		cmd.Arg = args[0]
		switch action {
		case ActionKwic:
			cmd.N, err = utils.ParseIntArg(optional(args, 1), neighborhood, 0)
		case ActionComplete:
			cmd.Limit, err = utils.ParseIntArg(optional(args, 1), limit, 1)
		default:
			cmd.N, err = utils.ParseIntArg(optional(args, 1), limit, 1)
		}

	case ActionTop:
		if len(args) > 1 {
			return Command{}, usageError(action)
		}
		cmd.Limit, err = utils.ParseIntArg(optional(args, 0), limit, 1)

	case ActionNGrams:
		if len(args) < 1 || len(args) > 2 {
			return Command{}, usageError(action)
		}
		cmd.N, err = utils.ParseIntArg(args[0], 0, 1)
		if err == nil {
			cmd.Limit, err = utils.ParseIntArg(optional(args, 1), limit, 1)
		}

	default:
		if len(args) > 0 {
			return Command{}, usageError(action)
		}
	}

	if err != nil {
		return Command{}, fmt.Errorf("%v (usage: %s)", err, usage[action])
	}
	return cmd, nil
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func usageError(action Action) error {
	return fmt.Errorf("usage: %s", usage[action])
}
