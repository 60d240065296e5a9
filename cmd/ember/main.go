// Command ember is the terminal front end of the Ember recovery engine:
// a few small tasks a day, stardust, levels, badges and a forgiving streak.
package main

import (
	"fmt"
	"os"

	"github.com/rolandbiro/Ember/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
