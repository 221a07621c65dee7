package shell

import (
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	aiturnplayer "github.com/domino14/aucteraden/ai/turnplayer"
	"github.com/domino14/aucteraden/config"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-threads")
	Args    []string // Possible argument values (for non-option arguments)
}

var deckNames = []string{"standard", "extended"}

var playerNames = []string{aiturnplayer.RandomPlayerName, aiturnplayer.OneMoveScorePlayerName}

var commandMetadata = map[string]CommandMetadata{
	"new": {
		Options: []string{"-seed", "-deck"},
	},
	"autoplay": {
		Options: []string{"-player", "-threads", "-file", "-db", "-training", "-seed", "-deck"},
		Args:    []string{"stop"},
	},
	"set": {
		Args: []string{"deck", "seed", config.ConfigPlayer, config.ConfigMaxCandidates, config.ConfigUpperLimit},
	},
	"save": {
		Options: []string{"-note"},
	},
	"add":  {Args: []string{"buy", "churn"}},
	"help": {Args: commandNames},
}

// Common command names for command completion
var commandNames = []string{
	"help", "new", "show", "set", "gen", "add", "buy", "churn", "bot", "undo",
	"score", "history", "save", "load", "autoplay", "script", "exit",
}

// Do implements the readline.AutoComplete interface
// It provides context-aware autocomplete based on what's been typed
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// If we can't parse, fall back to simple space splitting
		fields = strings.Fields(text)
	}

	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case lastCompleteField == "-deck" || (cmdName == "set" && lastCompleteField == "deck"):
			completions = deckNames
		case lastCompleteField == "-player" || (cmdName == "set" && lastCompleteField == config.ConfigPlayer):
			completions = playerNames
		case cmdName == "new" && len(fields) >= 2 && (endsWithSpace && len(fields) == 2 || len(fields) == 3):
			// new <seed> <deck>
			completions = deckNames
		case cmdName == "add" && lastCompleteField == "add":
			// numbers of the last gen listing
			for i := range c.sc.curPlays {
				completions = append(completions, strconv.Itoa(i+1))
			}
			completions = append(completions, commandMetadata["add"].Args...)
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			suffix := completion[len(prefix):]
			matches = append(matches, []rune(suffix))
		}
	}

	return matches, len(prefix)
}
