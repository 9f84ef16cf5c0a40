package cube

// Vertices returns the 2^degree corners of c. The first element is the initial
// vertex of c and the second its final vertex.
func (cx *Complex) Vertices(c *Cube) []ID {
	if c.Degree == 0 {
		return []ID{c.Index}
	}
	front := cx.Vertices(cx.Face(c, 0, 0))
	back := cx.Vertices(cx.Face(c, 1, 0))
	return weaveVertices(front, back, c.Degree)
}

// weaveVertices joins the corners of a front face and its opposite back face.
func weaveVertices(front, back []ID, degree int) []ID {
	if degree == 1 {
		return []ID{front[0], back[0]}
	}
	out := make([]ID, 1<<degree)
	for i := 0; i < len(out)/4; i++ {
		out[4*i] = front[2*i]
		out[4*i+1] = back[2*i+1]
		out[4*i+2] = front[2*i+1]
		out[4*i+3] = back[2*i]
	}
	return out
}

// AxisEdges recovers one degree-1 cube per axis of c by descending along front
// boundaries: axes 0..d-2 come from the face dropping the last axis, the last axis
// from the face dropping axis d-3.
func (cx *Complex) AxisEdges(c *Cube) []ID {
	switch c.Degree {
	case 0:
		return nil
	case 1:
		return []ID{c.Index}
	case 2:
		return []ID{c.Boundary[0][1], c.Boundary[0][0]}
	}
	e := cx.edgesOf(cx.Face(c, 0, c.Degree-1))
	f := cx.edgesOf(cx.Face(c, 0, c.Degree-3))
	out := make([]ID, 0, c.Degree)
	out = append(out, e[:c.Degree-1]...)
	return append(out, f[c.Degree-2])
}

// edgesOf prefers the cached decomposition of an inserted cube.
func (cx *Complex) edgesOf(c *Cube) []ID {
	if len(c.Edges) == c.Degree {
		return c.Edges
	}
	return cx.AxisEdges(c)
}

// BoundaryIdentitiesHold checks the cubical identity
// d(k,i) d(l,j) c == d(l,j-1) d(k,i) c for every i < j and k, l in {0,1}.
func (cx *Complex) BoundaryIdentitiesHold(c *Cube) bool {
	for i := 0; i < c.Degree; i++ {
		for j := i + 1; j < c.Degree; j++ {
			for k := 0; k < 2; k++ {
				for l := 0; l < 2; l++ {
					if cx.Face(cx.Face(c, k, i), l, j-1) != cx.Face(cx.Face(c, l, j), k, i) {
						return false
					}
				}
			}
		}
	}
	return true
}

// SameBoundary reports whether two cubes of equal degree have the same faces.
func SameBoundary(a, b *Cube) bool {
	if a.Degree != b.Degree {
		return false
	}
	for k := 0; k < 2; k++ {
		for i := range a.Boundary[k] {
			if a.Boundary[k][i] != b.Boundary[k][i] {
				return false
			}
		}
	}
	return true
}
