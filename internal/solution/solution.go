// Package solution pretty-prints a solver outcome in the DIMACS solution
// format: a "c" comment line, an "s SATISFIABLE"/"s UNSATISFIABLE" line, and
// for satisfiable instances one or more "v" lines listing the model.
package solution

import (
	"bufio"
	"fmt"
	"io"

	"github.com/jjanku/vw-passat/internal/sat"
)

// litsPerLine is the maximum number of model literals printed on one "v"
// line before wrapping to the next.
const litsPerLine = 10

// Write prints result in DIMACS solution format: a banner comment, the
// status line, and — if satisfiable — the model as "v" lines terminated
// by a final "v 0".
func Write(w io.Writer, result sat.Result) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "c Solved by VW Passat.")
	fmt.Fprintf(bw, "s %s\n", result.Outcome)

	if result.Outcome == sat.Sat {
		for start := 0; start < len(result.Model); start += litsPerLine {
			end := start + litsPerLine
			if end > len(result.Model) {
				end = len(result.Model)
			}
			fmt.Fprint(bw, "v ")
			for v := start; v < end; v++ {
				lit := v + 1
				if !result.Model[v] {
					lit = -lit
				}
				fmt.Fprintf(bw, "%d ", lit)
			}
			fmt.Fprintln(bw)
		}
		fmt.Fprintln(bw, "v 0")
	}

	return bw.Flush()
}
