package display

import (
	"fmt"
	"os"

	"github.com/backmassage/gallerytree/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	fmt.Fprint(os.Stdout, term.Magenta)
	fmt.Fprint(os.Stdout, `           _ _                 _
  __ _ __ _| | | ___ _ __ _   _| |_ _ __ ___  ___
 / _`+"`"+` |/ _`+"`"+` | | |/ _ \ '__| | | | __| '__/ _ \/ _ \
| (_| | (_| | | |  __/ |  | |_| | |_| | |  __/  __/
 \__, |\__,_|_|_|\___|_|   \__, |\__|_|  \___|\___|
 |___/                     |___/
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
