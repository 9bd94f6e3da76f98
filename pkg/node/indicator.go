package node

import (
	"github.com/moe2code/twoboards.go/pkg/console"
	"github.com/moe2code/twoboards.go/pkg/game"
)

// Indicator is the responder's local result display.
type Indicator interface {
	Show(game.Result)
}

var lampNames = map[game.Result]string{
	game.InitiatorWins: "green",
	game.ResponderWins: "orange",
	game.Tie:           "red",
	game.Invalid:       "blue",
}

// Lamps is the default indicator: four lamps, exactly one lit per
// shown result, reported on the console.
type Lamps struct {
	Console *console.Console

	lit game.Result
}

// Show implements Indicator.
func (l *Lamps) Show(r game.Result) {
	name, ok := lampNames[r]
	if !ok {
		return
	}
	l.lit = r
	if l.Console != nil {
		l.Console.Printf("LED %s on", name)
	}
}

// Lit reports the currently lit lamp's result, zero when dark.
func (l *Lamps) Lit() game.Result {
	return l.lit
}
