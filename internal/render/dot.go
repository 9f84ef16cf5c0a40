package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/comalice/pg2hda/internal/cube"
	"github.com/comalice/pg2hda/internal/pgraph"
)

// DOT writes the 1-skeleton of cx as Graphviz source. Initial states are
// green, final states are doubly circled and deadlocks are orange. Squares
// and higher cubes are listed as comments.
func DOT(w io.Writer, sys *pgraph.System, cx *cube.Complex) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", sys.Name)
	buf.WriteString(`  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)
	for _, v := range cx.Level(0) {
		style := ""
		switch {
		case v.Initial:
			style = ` style="rounded,filled" fillcolor=lightgreen`
		case deadlock(v):
			style = ` style="rounded,filled" fillcolor=orange`
		}
		if v.Final {
			style += " peripheries=2"
		}
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", ref(v), v.Text(), style)
	}
	for _, e := range cx.Level(1) {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n",
			ref(cx.Face(e, 0, 0)), ref(cx.Face(e, 1, 0)), e.Labels[0].String())
	}
	for d := 2; d <= cx.Dim(); d++ {
		for _, c := range cx.Level(d) {
			fmt.Fprintf(&buf, "  // cube %s at %s: %s\n", ref(c), ref(cx.Origin(c)), sageLabel(cx, c))
		}
	}
	buf.WriteString("}\n")
	_, err := w.Write(buf.Bytes())
	return err
}
