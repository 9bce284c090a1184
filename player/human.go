package player

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"jersi/game"
)

// Human relays a move chosen outside the engine: either one staged with
// SetAction (a UI front end), or one typed on the command line.
type Human struct {
	name       string
	pending    string
	hasPending bool

	commandLine bool
	in          *bufio.Scanner
	out         io.Writer
}

func NewHuman(name string) *Human {
	return &Human{
		name: name,
		in:   bufio.NewScanner(os.Stdin),
		out:  os.Stdout,
	}
}

func (h *Human) Name() string { return h.name }

func (h *Human) Interactive() bool { return true }

// UseCommandLine switches between staged actions and prompting.
func (h *Human) UseCommandLine(enabled bool) { h.commandLine = enabled }

// SetIO redirects the command-line prompt, mainly for tests.
func (h *Human) SetIO(in io.Reader, out io.Writer) {
	h.in = bufio.NewScanner(in)
	h.out = out
}

// SetAction stages the next move in simple notation.
func (h *Human) SetAction(name string) {
	if h.commandLine {
		panic("player: cannot stage an action in command-line mode")
	}
	h.pending = name
	h.hasPending = true
}

func (h *Human) Search(state *game.GameState) *game.Action {
	if h.commandLine {
		return h.prompt(state)
	}

	if !h.hasPending {
		panic("player: no action staged for the human player")
	}
	action, err := state.ActionByName(h.pending)
	if err != nil {
		panic(err)
	}
	h.pending = ""
	h.hasPending = false
	return action
}

func (h *Human) prompt(state *game.GameState) *game.Action {
	names := state.ActionSimpleNames()

	for {
		fmt.Fprintf(h.out, "%s: action? ", h.name)
		if !h.in.Scan() {
			panic("player: input closed while waiting for an action")
		}
		input := game.Simplify(h.in.Text())

		ok, message := game.ValidateNotation(input, names)
		fmt.Fprintln(h.out, message)
		if !ok {
			continue
		}

		action, err := state.ActionByName(input)
		if err != nil {
			panic(err)
		}
		fmt.Fprintf(h.out, "%s: action %s has been selected\n", h.name, action.Name())
		return action
	}
}
