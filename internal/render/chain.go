package render

import (
	"io"
	"strings"

	"github.com/comalice/pg2hda/internal/cube"
)

// sageLabel renders c as a product of its axis labels, "1" for a vertex.
func sageLabel(cx *cube.Complex, c *cube.Cube) string {
	if c.Degree == 0 {
		return "1"
	}
	return "(" + strings.Join(axisLabels(cx, c, "+"), ")*(") + ")"
}

// ChainComplex writes the cellular chain complex of cx over Z2 in CHomP
// format, with every cell annotated by its Sage label.
func ChainComplex(w io.Writer, cx *cube.Complex) error {
	p := &printer{w: w}
	dim := max(cx.Dim(), 0)
	p.printf("chain complex\n\n")
	p.printf("max dimension = %d\n\n", dim)
	for d := 0; d <= dim; d++ {
		p.printf("dimension %d: %d\n\n", d, cx.Count(d))
		for _, c := range cx.Level(d) {
			p.printf("boundary %s:%s = ", ref(c), sageLabel(cx, c))
			for k := 0; k < 2; k++ {
				for i := 0; i < d; i++ {
					f := cx.Face(c, k, i)
					p.printf("+ %s:%s ", ref(f), sageLabel(cx, f))
				}
			}
			p.printf("\n")
		}
		p.printf("\n")
	}
	return p.err
}

// TSV writes one row per cube: degree, id, front and back faces padded to the
// dimension of cx, axis labels, the initial, final and deadlock flags of a
// vertex and the origin state.
func TSV(w io.Writer, cx *cube.Complex) error {
	p := &printer{w: w}
	dim := max(cx.Dim(), 0)

	cols := []string{"degree", "id"}
	for k := 0; k < 2; k++ {
		for i := 1; i <= dim; i++ {
			cols = append(cols, "d^"+itoa(k)+"_"+itoa(i))
		}
	}
	cols = append(cols, "label", "initial", "final", "deadlock", "origin")
	writeRow(p, cols)

	for d := 0; d <= dim; d++ {
		for _, c := range cx.Level(d) {
			row := []string{itoa(d), ref(c)}
			for k := 0; k < 2; k++ {
				for i := 0; i < dim; i++ {
					if i < d {
						row = append(row, ref(cx.Face(c, k, i)))
					} else {
						row = append(row, "")
					}
				}
			}
			row = append(row,
				"("+strings.Join(axisLabels(cx, c, ";"), ", ")+")",
				flag(d == 0 && c.Initial),
				flag(d == 0 && c.Final),
				flag(deadlock(c)),
				cx.Origin(c).Text(),
			)
			writeRow(p, row)
		}
	}
	return p.err
}

func flag(b bool) string {
	if b {
		return "y"
	}
	return ""
}

func writeRow(p *printer, cols []string) {
	for i, c := range cols {
		if i > 0 {
			p.printf("\t")
		}
		p.printf("%q", c)
	}
	p.printf("\n")
}
