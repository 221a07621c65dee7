package shell

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cjoudrey/gluahttp"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"

	"github.com/domino14/aucteraden/board"
	"github.com/domino14/aucteraden/decktet"
	"github.com/domino14/aucteraden/move"
)

const shellGlobal = "aucteraden_shell"

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal(shellGlobal)
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// luaCommand exposes a shell command to scripts. The single string
// argument is split into the command's arguments; the command's message is
// returned, or "ERROR: ..." on failure.
func luaCommand(name string, fn func(*ShellController, *shellcmd) (*Response, error)) lua.LGFunction {
	return func(L *lua.LState) int {
		lv := strings.TrimSpace(L.OptString(1, ""))
		sc := getShell(L)
		cmd, err := extractFields(strings.TrimSpace(name + " " + lv))
		if err == nil {
			var r *Response
			r, err = fn(sc, cmd)
			if err == nil {
				L.Push(lua.LString(r.message))
				// return number of results pushed to stack.
				return 1
			}
		}
		log.Err(err).Msg("error-executing-" + name)
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
}

var scriptCommands = map[string]func(*ShellController, *shellcmd) (*Response, error){
	"new":     (*ShellController).newGame,
	"show":    (*ShellController).show,
	"set":     (*ShellController).set,
	"gen":     (*ShellController).generate,
	"add":     (*ShellController).add,
	"churn":   (*ShellController).churn,
	"bot":     (*ShellController).bot,
	"undo":    (*ShellController).undo,
	"score":   (*ShellController).score,
	"history": (*ShellController).history,
	"save":    (*ShellController).save,
	"load":    (*ShellController).load,
}

// State returns the current position as a table: turn, deck, chips (by
// suit letter), market (card IDs, oldest first), grid (cell -> card ID),
// score, over.
func State(L *lua.LState) int {
	sc := getShell(L)
	if sc.game == nil {
		L.Push(lua.LNil)
		return 1
	}
	b := sc.game.Board()
	t := L.NewTable()
	t.RawSetString("turn", lua.LNumber(sc.game.Turn()))
	t.RawSetString("deck", lua.LNumber(b.CardsRemaining()))
	t.RawSetString("score", lua.LNumber(sc.game.CalculateScore().Total))
	t.RawSetString("over", lua.LBool(sc.game.IsOver()))

	chips := L.NewTable()
	for _, s := range decktet.AllSuits {
		chips.RawSetString(string(s.Letter()), lua.LNumber(b.ChipsFor(s)))
	}
	t.RawSetString("chips", chips)

	market := L.NewTable()
	for _, c := range b.Market() {
		market.Append(lua.LString(c.ID()))
	}
	t.RawSetString("market", market)

	grid := L.NewTable()
	for row := 0; row < board.NumRows; row++ {
		for col := 0; col < board.NumCols; col++ {
			if c := b.GetCard(col, row); c != nil {
				grid.RawSetString(move.ToCellCoords(col, row), lua.LString(c.ID()))
			}
		}
	}
	t.RawSetString("grid", grid)
	L.Push(t)
	return 1
}

// Plays returns the generated plays, best projected score first, as
// notation strings.
func Plays(L *lua.LState) int {
	sc := getShell(L)
	if _, err := sc.generate(&shellcmd{cmd: "gen"}); err != nil {
		L.Push(lua.LNil)
		return 1
	}
	t := L.NewTable()
	for _, m := range sc.curPlays {
		t.Append(lua.LString(m.ShortDescription()))
	}
	L.Push(t)
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need arguments for script")
	}
	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()
	luajson.Preload(L)
	L.PreloadModule("http", gluahttp.NewHttpModule(&http.Client{}).Loader)

	ud := L.NewUserData()
	ud.Value = sc
	L.SetGlobal(shellGlobal, ud)
	for name, fn := range scriptCommands {
		L.SetGlobal("aucteraden_"+name, L.NewFunction(luaCommand(name, fn)))
	}
	L.SetGlobal("aucteraden_state", L.NewFunction(State))
	L.SetGlobal("aucteraden_plays", L.NewFunction(Plays))

	// script arguments are available as the global `args`
	args := L.NewTable()
	for _, a := range cmd.args[1:] {
		args.Append(lua.LString(a))
	}
	L.SetGlobal("args", args)

	if err := L.DoFile(filepath); err != nil {
		return nil, err
	}
	return msg(""), nil
}
