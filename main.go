package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"jersi/engine"
	"jersi/game"
	"jersi/player"
)

func main() {
	white := flag.String("white", "random", "white player, one of the catalog names")
	black := flag.String("black", "mcts-2s", "black player, one of the catalog names")
	credit := flag.Int("credit", game.MaxCredit, "captureless turns before the game is drawn")
	noReserve := flag.Bool("no-reserve", false, "play without the reserved Mountain and Wise cubes")
	list := flag.Bool("list", false, "list the catalog players and exit")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	catalog := player.DefaultCatalog()
	if *list {
		for _, name := range catalog.Names() {
			fmt.Println(name)
		}
		return
	}

	whitePlayer, err := catalog.Get(*white)
	if err != nil {
		log.Fatal().Err(err).Msg("unknown white player")
	}
	blackPlayer, err := catalog.Get(*black)
	if err != nil {
		log.Fatal().Err(err).Msg("unknown black player")
	}
	for _, p := range []player.Player{whitePlayer, blackPlayer} {
		if human, ok := p.(*player.Human); ok {
			human.UseCommandLine(true)
		}
	}

	options := []game.Option{game.WithMaxCredit(*credit)}
	if *noReserve {
		options = append(options, game.WithoutReserve())
	}
	state := game.NewGameState(game.NewBoard(), game.NewCatalog(), options...)

	output := termenv.NewOutput(os.Stdout)
	e := engine.New(state, whitePlayer, blackPlayer)

	show(output, e.State())
	for e.HasNextTurn() {
		e.NextTurn()
		show(output, e.State())
	}
}

func show(out *termenv.Output, state *game.GameState) {
	fmt.Fprintln(out)
	fmt.Fprint(out, colorize(out, state.Render()))
	fmt.Fprintln(out)
	fmt.Fprintln(out, state.Summary())
}

// colorize styles the cube labels of a rendered board: white cubes in
// blue, black cubes in red. Cell names stay plain.
func colorize(out *termenv.Output, board string) string {
	var sb []byte
	runes := []rune(board)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r >= 'a' && r <= 'i' && i+3 < len(runes) && runes[i+1] >= '1' && runes[i+1] <= '9' {
			sb = append(sb, byte(r), byte(runes[i+1]))
			for _, label := range runes[i+2 : i+4] {
				switch {
				case label >= 'A' && label <= 'Z':
					sb = append(sb, out.String(string(label)).Foreground(termenv.ANSIBlue).String()...)
				case label >= 'a' && label <= 'z':
					sb = append(sb, out.String(string(label)).Foreground(termenv.ANSIRed).String()...)
				default:
					sb = append(sb, byte(label))
				}
			}
			i += 3
			continue
		}
		sb = append(sb, string(r)...)
	}
	return string(sb)
}
