package render

import (
	"io"
	"strings"

	"github.com/comalice/pg2hda/internal/cube"
	"github.com/comalice/pg2hda/internal/pgraph"
)

// Summary writes the system followed by its HDA model: cube counts per
// degree, the deadlocks and the Euler characteristic. The short form omits
// the process descriptions and the cube listings.
func Summary(w io.Writer, sys *pgraph.System, cx *cube.Complex, short bool) error {
	p := &printer{w: w}
	p.printf("\nSystem of %s\n", plural(len(sys.Procs), "process", "processes"))
	if !short {
		p.printf("\n\n\n%s\n\n", plural(len(sys.Vars), "variable", "variables"))
		describeVariables(p, sys, varNames(sys))
		p.printf("\n\n")
	}
	p.printf("\n")
	describeProcesses(p, sys, short)

	dim := max(cx.Dim(), 0)
	p.printf("\nHDA model of dimension %d with %d elements and %d boundaries\n\n", dim, cx.Size(), cx.Boundaries())
	if !short {
		p.printf("\n\n")
	}
	for d := 0; d <= dim; d++ {
		n := cx.Count(d)
		if d == 0 {
			p.printf("Degree 0: %s\n", plural(n, "element", "elements"))
		} else {
			p.printf("Degree %d: %s (%d boundaries)\n", d, plural(n, "element", "elements"), 2*d*n)
		}
		if !short {
			p.printf("\n\n")
			listDegree(p, cx, d)
			p.printf("\n")
		}
	}
	if !short {
		p.printf("\n\n")
	}
	p.printf("\n%s\n\n", plural(len(cx.Deadlocks()), "deadlock", "deadlocks"))
	if !short {
		p.printf("\n\n")
	}
	p.printf("Euler characteristic: %d\n\n", cx.Euler())
	return p.err
}

func listDegree(p *printer, cx *cube.Complex, d int) {
	for _, c := range cx.Level(d) {
		p.printf("cube %s: ", ref(c))
		if d == 0 {
			p.printf("%s", c.Text())
			if c.Initial {
				p.printf("  initial")
			}
			if c.Final {
				p.printf("  final")
			} else if deadlock(c) {
				p.printf("  deadlock")
			}
			p.printf("\n\n")
			continue
		}
		p.printf("%s  (%s)\n\n", cx.Origin(c).Text(), strings.Join(axisLabels(cx, c, ";"), ",  "))
	}
}
