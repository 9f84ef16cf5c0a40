package lattice

import (
	"github.com/comalice/pg2hda/internal/cube"
	"github.com/comalice/pg2hda/internal/primitives"
)

// FillSquares adds the squares having edge as a face and returns how many were added.
//
// Both orientations are searched: edge as a front face, where the square starts
// at the edge's source, and edge as a back face, where it ends at the edge's
// target. The axis order puts the lower process id first.
func (e *Engine) FillSquares(edge *cube.Cube) int {
	cx := e.cx
	src := cx.Face(edge, 0, 0)
	dst := cx.Face(edge, 1, 0)
	added := 0

	for _, fid := range src.Cofaces[0][0] {
		f := cx.At(1, fid)
		if !cube.Independent(f, edge) {
			continue
		}
		for _, gid := range dst.Cofaces[0][0] {
			g := cx.At(1, gid)
			if !cube.LabelsEqual(g.Labels, f.Labels) {
				continue
			}
			for _, hid := range cx.Face(f, 1, 0).Cofaces[0][0] {
				h := cx.At(1, hid)
				if g.Boundary[1][0] != h.Boundary[1][0] || !cube.LabelsEqual(edge.Labels, h.Labels) {
					continue
				}
				var faces [2][2]*cube.Cube
				if f.PID() < edge.PID() {
					faces = [2][2]*cube.Cube{{edge, f}, {h, g}}
				} else {
					faces = [2][2]*cube.Cube{{f, edge}, {g, h}}
				}
				if e.addSquare(faces) {
					added++
				}
			}
		}
	}

	for _, fid := range dst.Cofaces[1][0] {
		f := cx.At(1, fid)
		if !cube.Independent(f, edge) {
			continue
		}
		for _, gid := range src.Cofaces[1][0] {
			g := cx.At(1, gid)
			if !cube.LabelsEqual(g.Labels, f.Labels) {
				continue
			}
			for _, hid := range cx.Face(f, 0, 0).Cofaces[1][0] {
				h := cx.At(1, hid)
				if h == edge || g.Boundary[0][0] != h.Boundary[0][0] || !cube.LabelsEqual(edge.Labels, h.Labels) {
					continue
				}
				var faces [2][2]*cube.Cube
				if f.PID() < edge.PID() {
					faces = [2][2]*cube.Cube{{h, g}, {edge, f}}
				} else {
					faces = [2][2]*cube.Cube{{g, h}, {f, edge}}
				}
				if e.addSquare(faces) {
					added++
				}
			}
		}
	}
	return added
}

// addSquare assembles a square from faces[k][i] = boundary k along axis i.
func (e *Engine) addSquare(faces [2][2]*cube.Cube) bool {
	sq := cube.New(2)
	var others []cube.ID
	for k := 0; k < 2; k++ {
		for i := 0; i < 2; i++ {
			f := faces[k][i]
			sq.Boundary[k][i] = f.Index
			if k == 0 && i == 0 {
				others = f.Cofaces[k][i]
			} else {
				others = primitives.Intersection(others, f.Cofaces[k][i])
			}
		}
	}
	return e.accept(sq, others)
}
