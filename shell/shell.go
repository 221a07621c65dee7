package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	aiturnplayer "github.com/domino14/aucteraden/ai/turnplayer"
	"github.com/domino14/aucteraden/automatic"
	"github.com/domino14/aucteraden/config"
	"github.com/domino14/aucteraden/decktet"
	"github.com/domino14/aucteraden/move"
	"github.com/domino14/aucteraden/turnplayer"
)

var (
	errNoData            = errors.New("no data in line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("please start a game first with the `new` command")
)

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

type ShellController struct {
	l   *readline.Instance
	out io.Writer
	// colors suits in rendered boards; plain text when the output is not a
	// terminal
	term *termenv.Output

	config     *config.Config
	execPath   string
	gitVersion string

	options *turnplayer.GameOptions
	game    *turnplayer.BaseTurnPlayer
	deck    decktet.DeckType
	seed    [32]byte

	curPlays []*move.Move
	aiplayer aiturnplayer.AITurnPlayer
	rng      *frand.RNG

	autoplayCancel context.CancelFunc
	autoplayDone   chan struct{}
	lastRun        *automatic.Run
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.out, msg)
	io.WriteString(sc.out, "\n")
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	sc := newController(cfg, os.Stdout, termenv.NewOutput(os.Stdout))
	sc.execPath = execPath
	sc.gitVersion = gitVersion

	prompt := "aucteraden"
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31m" + prompt + ">\033[0m ",
		HistoryFile:     "/tmp/aucteraden_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    &ShellCompleter{sc: sc},

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stdout()
	return sc
}

// newController builds a controller without a terminal attached.
func newController(cfg *config.Config, out io.Writer, term *termenv.Output) *ShellController {
	opts := &turnplayer.GameOptions{}
	opts.SetDefaults(cfg)
	return &ShellController{
		out:     out,
		term:    term,
		config:  cfg,
		options: opts,
		rng:     decktet.NewRNG(decktet.SeedFromInt(cfg.GetInt64(config.ConfigSeed))),
	}
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") && len(fields[idx]) > 1 {
			if _, err := strconv.Atoi(fields[idx]); err == nil {
				// a negative number is an argument
				args = append(args, fields[idx])
				continue
			}
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[strings.TrimLeft(fields[idx], "-")] = fields[idx+1]
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	log.Debug().Msgf("cmd: %v, args: %v, options: %v", cmd, args, options)
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit":
		sig <- syscall.SIGINT
		return nil, errors.New("sending quit signal")
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "show":
		return sc.show(cmd)
	case "set":
		return sc.set(cmd)
	case "gen":
		return sc.generate(cmd)
	case "add", "buy":
		return sc.add(cmd)
	case "churn":
		return sc.churn(cmd)
	case "bot":
		return sc.bot(cmd)
	case "undo":
		return sc.undo(cmd)
	case "score":
		return sc.score(cmd)
	case "history":
		return sc.history(cmd)
	case "save":
		return sc.save(cmd)
	case "load":
		return sc.load(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "script":
		return sc.script(cmd)
	default:
		log.Debug().Msgf("command: %v", strconv.Quote(line))
		return nil, fmt.Errorf("command %v not found", strconv.Quote(cmd.cmd))
	}
}

// Execute runs a single command line, as when the shell is given one on
// the command line.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	resp, err := sc.standardModeSwitch(line, sig)
	if err != nil {
		sc.showError(err)
	} else if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "exit") {
			sig <- syscall.SIGINT
			break
		}
		sc.Execute(sig, line)
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops any autoplay still running.
func (sc *ShellController) Cleanup() {
	if sc.autoplayCancel != nil {
		sc.autoplayCancel()
		<-sc.autoplayDone
	}
	log.Info().Msg("shell cleaned up")
}
