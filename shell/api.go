package shell

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	aiturnplayer "github.com/domino14/aucteraden/ai/turnplayer"
	"github.com/domino14/aucteraden/automatic"
	"github.com/domino14/aucteraden/board"
	"github.com/domino14/aucteraden/config"
	"github.com/domino14/aucteraden/decktet"
	"github.com/domino14/aucteraden/gamerecord"
	"github.com/domino14/aucteraden/move"
	"github.com/domino14/aucteraden/movegen"
	"github.com/domino14/aucteraden/turnplayer"
)

const defaultGenPlays = 15

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

// suitColors are ANSI-256 codes; termenv degrades them for simpler terminals.
var suitColors = [decktet.NumSuits]string{"252", "220", "39", "76", "160", "208"}

var cardPattern = regexp.MustCompile(`\b(Ex|Pa|Co|Cr|A|[2-9])( *)([MSWLYK]{1,3})([ @\n]|$)`)

// render colors every card in text by suit.
func (sc *ShellController) render(text string) string {
	if sc.term == nil {
		return text
	}
	return cardPattern.ReplaceAllStringFunc(text, func(s string) string {
		parts := cardPattern.FindStringSubmatch(s)
		rank, pad, suits, tail := parts[1], parts[2], parts[3], parts[4]
		first, _ := decktet.SuitFromLetter(suits[0])
		var sb strings.Builder
		sb.WriteString(sc.term.String(rank).Foreground(sc.term.Color(suitColors[first])).Bold().String())
		sb.WriteString(pad)
		for i := 0; i < len(suits); i++ {
			st, _ := decktet.SuitFromLetter(suits[i])
			sb.WriteString(sc.term.String(string(suits[i])).Foreground(sc.term.Color(suitColors[st])).String())
		}
		sb.WriteString(tail)
		return sb.String()
	})
}

func (sc *ShellController) display() *Response {
	return msg(sc.render(sc.game.ToDisplayText()))
}

func (sc *ShellController) requireGame() error {
	if sc.game == nil {
		return errNoGame
	}
	return nil
}

func (sc *ShellController) startGame() error {
	p, err := turnplayer.NewBaseTurnPlayer(sc.options)
	if err != nil {
		return err
	}
	sc.game = p
	sc.deck = sc.options.DeckType
	sc.seed = decktet.SeedFromInt(sc.options.Seed)
	sc.curPlays = nil
	log.Debug().Str("deck", string(sc.deck)).Int64("seed", sc.options.Seed).Msg("new-game")
	return nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	seed, deck := cmd.options["seed"], cmd.options["deck"]
	if len(cmd.args) > 0 {
		seed = cmd.args[0]
	}
	if len(cmd.args) > 1 {
		deck = cmd.args[1]
	}
	if seed == "" {
		seed = strconv.FormatInt(int64(sc.rng.Uint64n(1<<62)), 10)
	}
	if err := sc.options.SetSeed(seed); err != nil {
		return nil, err
	}
	if deck != "" {
		if err := sc.options.SetDeck(deck); err != nil {
			return nil, err
		}
	}
	if err := sc.startGame(); err != nil {
		return nil, err
	}
	return sc.display(), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	return sc.display(), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(fmt.Sprintf("%s  player: %s  max-candidates: %d  upper-limit: %d",
			sc.options.ToDisplayString(), sc.config.GetString(config.ConfigPlayer),
			sc.config.GetInt(config.ConfigMaxCandidates), sc.config.GetInt(config.ConfigUpperLimit))), nil
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: set <option> <value>")
	}
	opt, val := cmd.args[0], cmd.args[1]
	switch opt {
	case "deck":
		if err := sc.options.SetDeck(val); err != nil {
			return nil, err
		}
	case "seed":
		if err := sc.options.SetSeed(val); err != nil {
			return nil, err
		}
	case config.ConfigPlayer:
		if _, err := aiturnplayer.NewPlayer(val, 1, 1, sc.rng); err != nil {
			return nil, err
		}
		sc.config.Set(opt, val)
		sc.aiplayer = nil
	case config.ConfigMaxCandidates, config.ConfigUpperLimit:
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%v must be a positive integer", opt)
		}
		sc.config.Set(opt, n)
		sc.aiplayer = nil
	default:
		return nil, fmt.Errorf("option %v not recognized", opt)
	}
	return msg("set " + opt + " to " + val), nil
}

func (sc *ShellController) generate(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	n := defaultGenPlays
	if len(cmd.args) > 0 {
		var err error
		n, err = strconv.Atoi(cmd.args[0])
		if err != nil || n < 1 {
			return nil, errors.New("number of plays must be a positive integer")
		}
	}
	b := sc.game.Board()
	type ranked struct {
		m         *move.Move
		projected int
	}
	plays := make([]ranked, 0)
	for _, m := range movegen.GenAll(b) {
		plays = append(plays, ranked{m, b.Apply(m).CalculateScore().Total})
	}
	slices.SortStableFunc(plays, func(a, b ranked) int {
		return b.projected - a.projected
	})
	sc.curPlays = sc.curPlays[:0]
	for _, p := range plays {
		sc.curPlays = append(sc.curPlays, p.m)
	}
	if len(plays) == 0 {
		return msg("No buys available; churn is the only move."), nil
	}

	var sb strings.Builder
	sb.WriteString(moveTableHeader())
	for i, p := range plays[:min(n, len(plays))] {
		sb.WriteString(sc.render(moveTableRow(i, p.m, b, p.projected)))
		sb.WriteString("\n")
	}
	if len(plays) > n {
		fmt.Fprintf(&sb, "(%d more)\n", len(plays)-n)
	}
	return msg(sb.String()), nil
}

func moveTableHeader() string {
	return "     Move                  Card    Cost  Projected\n"
}

func moveTableRow(idx int, m *move.Move, b *board.Board, projected int) string {
	return fmt.Sprintf("%3d: %-22s%-8s%-6d%d", idx+1, m.ShortDescription(),
		b.MarketCard(m.MarketIndex()).ID(), b.MarketCost(m.MarketIndex()), projected)
}

// moveFromArgs turns the arguments of add/buy into a move. A lone number
// picks a play from the last gen listing.
func (sc *ShellController) moveFromArgs(cmd *shellcmd) (*move.Move, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: add <move> | add <n>")
	}
	if cmd.cmd == "add" && len(cmd.args) == 1 {
		if n, err := strconv.Atoi(strings.TrimPrefix(cmd.args[0], "#")); err == nil {
			if n < 1 || n > len(sc.curPlays) {
				return nil, fmt.Errorf("play %d not in the generated list; run gen first", n)
			}
			return sc.curPlays[n-1], nil
		}
	}
	fields := cmd.args
	first := strings.ToLower(fields[0])
	if first != "buy" && first != "churn" {
		fields = append([]string{"buy"}, fields...)
	}
	return sc.game.ParseMove(fields)
}

func (sc *ShellController) playAndShow(m *move.Move) (*Response, error) {
	if err := sc.game.PlayMove(m); err != nil {
		return nil, err
	}
	sc.curPlays = nil
	return sc.display(), nil
}

func (sc *ShellController) add(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	m, err := sc.moveFromArgs(cmd)
	if err != nil {
		return nil, err
	}
	return sc.playAndShow(m)
}

func (sc *ShellController) churn(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	return sc.playAndShow(sc.game.NewChurnMove())
}

func (sc *ShellController) aiPlayer() (aiturnplayer.AITurnPlayer, error) {
	if sc.aiplayer == nil {
		p, err := aiturnplayer.NewPlayer(sc.config.GetString(config.ConfigPlayer),
			sc.config.GetInt(config.ConfigMaxCandidates), sc.config.GetInt(config.ConfigUpperLimit), sc.rng)
		if err != nil {
			return nil, err
		}
		sc.aiplayer = p
	}
	return sc.aiplayer, nil
}

// bot lets the configured policy play one move, or n moves.
func (sc *ShellController) bot(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	n := 1
	if len(cmd.args) > 0 {
		var err error
		n, err = strconv.Atoi(cmd.args[0])
		if err != nil || n < 1 {
			return nil, errors.New("number of moves must be a positive integer")
		}
	}
	p, err := sc.aiPlayer()
	if err != nil {
		return nil, err
	}
	var played []string
	for i := 0; i < n && sc.game.IsPlaying(); i++ {
		m := p.ChooseMove(sc.game.State())
		if err := sc.game.PlayMove(m); err != nil {
			return nil, err
		}
		played = append(played, m.ShortDescription())
	}
	sc.curPlays = nil
	return msg(sc.render(fmt.Sprintf("%s played: %s\n%s", p.Name(),
		strings.Join(played, ", "), sc.game.ToDisplayText()))), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	if err := sc.game.Undo(); err != nil {
		return nil, err
	}
	sc.curPlays = nil
	return sc.display(), nil
}

func (sc *ShellController) score(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	b := sc.game.Board()
	scoring := b.CalculateScore()
	var sb strings.Builder
	for _, s := range decktet.AllSuits {
		ch, ok := scoring.Chains[s]
		if !ok {
			fmt.Fprintf(&sb, "%-7s  -\n", s)
			continue
		}
		links := make([]string, len(ch.Links))
		for i, l := range ch.Links {
			links[i] = l.Card.ID() + "@" + move.ToCellCoords(l.Col, l.Row)
		}
		fmt.Fprintf(&sb, "%-7s %3d  %s\n", s, ch.Score, strings.Join(links, " > "))
	}
	fmt.Fprintf(&sb, "Churns:    %d\nPenalties: %d\nTotal:     %d\n",
		b.Score(), scoring.Penalties, scoring.Total)
	return msg(sc.render(sb.String())), nil
}

func (sc *ShellController) history(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	states := sc.game.History()
	if len(states) == 1 {
		return msg("No moves yet."), nil
	}
	var sb strings.Builder
	for _, st := range states[1:] {
		fmt.Fprintf(&sb, "%3d: %-22s%d\n", st.Turn(), st.LastMove().ShortDescription(),
			st.CalculateScore().Total)
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) save(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: save <file>")
	}
	rec := gamerecord.NewRecord(sc.deck, sc.seed, sc.game.State())
	rec.Note = cmd.options["note"]
	if err := rec.Save(cmd.args[0]); err != nil {
		return nil, err
	}
	return msg("saved " + cmd.args[0]), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <file>")
	}
	rec, err := gamerecord.Load(cmd.args[0])
	if err != nil {
		return nil, err
	}
	g, err := rec.Replay()
	if err != nil {
		return nil, err
	}
	seed, err := rec.DecodeSeed()
	if err != nil {
		return nil, err
	}
	sc.options.DeckType = rec.Deck
	if sc.game == nil {
		if err := sc.startGame(); err != nil {
			return nil, err
		}
	}
	sc.game.SetGame(g)
	sc.deck = rec.Deck
	sc.seed = seed
	sc.curPlays = nil
	return sc.display(), nil
}

func (sc *ShellController) autoplayRunning() bool {
	if sc.autoplayDone == nil {
		return false
	}
	select {
	case <-sc.autoplayDone:
		return false
	default:
		return true
	}
}

// autoplay runs self-play games in the background. Options override the
// config for this and later runs.
func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 1 && cmd.args[0] == "stop" {
		if !sc.autoplayRunning() {
			return nil, errors.New("autoplay not active")
		}
		sc.autoplayCancel()
		<-sc.autoplayDone
		return msg("autoplay stopped"), nil
	}
	if sc.autoplayRunning() {
		return nil, automatic.ErrAlreadyPlaying
	}
	numGames := sc.config.GetInt(config.ConfigNumGames)
	if len(cmd.args) > 0 {
		var err error
		numGames, err = strconv.Atoi(cmd.args[0])
		if err != nil || numGames < 1 {
			return nil, errors.New("number of games must be a positive integer")
		}
	}
	overrides := map[string]string{
		"player":   config.ConfigPlayer,
		"threads":  config.ConfigThreads,
		"file":     config.ConfigTurnLog,
		"db":       config.ConfigResultsDB,
		"training": config.ConfigTrainingPrefix,
		"seed":     config.ConfigSeed,
		"deck":     config.ConfigDeck,
	}
	for opt, val := range cmd.options {
		key, ok := overrides[opt]
		if !ok {
			return nil, fmt.Errorf("option %v not recognized", opt)
		}
		sc.config.Set(key, val)
	}
	threads := sc.config.GetInt(config.ConfigThreads)
	logfile := sc.config.GetString(config.ConfigTurnLog)

	ctx, cancel := context.WithCancel(context.Background())
	sc.autoplayCancel = cancel
	sc.autoplayDone = make(chan struct{})
	go func() {
		defer close(sc.autoplayDone)
		defer cancel()
		run, err := automatic.StartCompVCompGames(ctx, sc.config, numGames, threads, logfile)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Err(err).Msg("autoplay-error")
			return
		}
		sc.lastRun = run
		if run != nil {
			var sb strings.Builder
			if err := run.Summary.Fprint(&sb); err != nil {
				log.Err(err).Msg("autoplay-summary")
			}
			sc.showMessage(sb.String())
		}
	}()
	return msg(fmt.Sprintf("autoplaying %d games, logging to %v; `autoplay stop` to stop",
		numGames, logfile)), nil
}
