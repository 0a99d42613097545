package diagfmt

import (
	"fmt"
	"io"
)

// Short prints one line per diagnostic: path:line:col: CODE message.
func Short(w io.Writer, u Unit) {
	if u.Bag != nil {
		for _, d := range u.Bag.Items() {
			path, start, _, ok := location(u, d.Primary)
			if ok {
				path = fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
			}
			fmt.Fprintf(w, "%s: %s %s\n", path, d.Code.ID(), d.Message)
		}
	}
	if u.Internal != "" {
		fmt.Fprintf(w, "%s: ICE %s\n", u.Path, u.Internal)
	}
}
