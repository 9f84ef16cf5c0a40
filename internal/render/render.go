// Package render writes a system and its HDA model in the supported text formats.
// Renderers only read the system and the complex. A cube is numbered by its
// position in the arena of its degree, starting at 1.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/comalice/pg2hda/internal/cube"
	"github.com/comalice/pg2hda/internal/pgraph"
)

// Format selects a renderer.
type Format string

const (
	FormatSummary Format = "summary"
	FormatShort   Format = "short"
	FormatInput   Format = "input"
	FormatChain   Format = "chain"
	FormatTSV     Format = "tsv"
	FormatDOT     Format = "dot"
)

// Formats lists the accepted formats.
var Formats = []Format{FormatSummary, FormatShort, FormatInput, FormatChain, FormatTSV, FormatDOT}

// ParseFormat resolves a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// NeedsComplex reports whether f renders the HDA and not only the input.
func (f Format) NeedsComplex() bool {
	return f != FormatInput
}

// Render writes sys and cx in format f. cx may be nil for FormatInput.
func Render(w io.Writer, f Format, sys *pgraph.System, cx *cube.Complex) error {
	switch f {
	case FormatInput:
		return System(w, sys)
	case FormatSummary:
		return Summary(w, sys, cx, false)
	case FormatShort:
		return Summary(w, sys, cx, true)
	case FormatChain:
		return ChainComplex(w, cx)
	case FormatTSV:
		return TSV(w, cx)
	case FormatDOT:
		return DOT(w, sys, cx)
	}
	return fmt.Errorf("unknown output format %q", f)
}

// printer remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

// ref is the printed name "d.n" of a cube.
func ref(c *cube.Cube) string {
	return fmt.Sprintf("%d.%d", c.Degree, c.Index+1)
}

// axisLabels renders the label of every axis of c.
func axisLabels(cx *cube.Complex, c *cube.Cube, sep string) []string {
	out := make([]string, len(c.Edges))
	for i := range c.Edges {
		out[i] = cube.JoinLabels(cx.Edge(c, i).Labels, sep)
	}
	return out
}

func deadlock(c *cube.Cube) bool {
	return c.Degree == 0 && !c.Final && len(c.Cofaces[0][0]) == 0
}
