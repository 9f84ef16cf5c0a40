package cube

// Complex owns every cube, one arena per degree, each in insertion order.
type Complex struct {
	levels [][]*Cube
}

// NewComplex returns an empty complex.
func NewComplex() *Complex {
	return &Complex{}
}

// Insert appends c to the arena of its degree and registers it in the coface
// lists of all its boundary faces. The boundary must be complete.
func (cx *Complex) Insert(c *Cube) ID {
	for len(cx.levels) <= c.Degree {
		cx.levels = append(cx.levels, nil)
	}
	c.Index = ID(len(cx.levels[c.Degree]))
	cx.levels[c.Degree] = append(cx.levels[c.Degree], c)
	for k := 0; k < 2; k++ {
		for i, f := range c.Boundary[k] {
			face := cx.levels[c.Degree-1][f]
			face.Cofaces[k][i] = append(face.Cofaces[k][i], c.Index)
		}
	}
	return c.Index
}

// At resolves a cube handle.
func (cx *Complex) At(degree int, id ID) *Cube {
	return cx.levels[degree][id]
}

// Face returns the boundary face of c along axis i on side k.
func (cx *Complex) Face(c *Cube, k, i int) *Cube {
	return cx.levels[c.Degree-1][c.Boundary[k][i]]
}

// Edge returns the degree-1 cube generating axis i of c.
func (cx *Complex) Edge(c *Cube, i int) *Cube {
	return cx.levels[1][c.Edges[i]]
}

// Level returns the cubes of the given degree in insertion order.
// The slice must not be modified.
func (cx *Complex) Level(degree int) []*Cube {
	if degree < 0 || degree >= len(cx.levels) {
		return nil
	}
	return cx.levels[degree]
}

// Count returns the number of cubes of the given degree.
func (cx *Complex) Count(degree int) int {
	return len(cx.Level(degree))
}

// Dim returns the highest degree holding a cube, or -1 for an empty complex.
func (cx *Complex) Dim() int {
	for d := len(cx.levels) - 1; d >= 0; d-- {
		if len(cx.levels[d]) > 0 {
			return d
		}
	}
	return -1
}

// Ranks returns the cube count of every degree up to Dim.
func (cx *Complex) Ranks() []int {
	rk := make([]int, cx.Dim()+1)
	for d := range rk {
		rk[d] = cx.Count(d)
	}
	return rk
}

// Size returns the total number of cubes.
func (cx *Complex) Size() int {
	n := 0
	for _, l := range cx.levels {
		n += len(l)
	}
	return n
}

// Tail returns the last n cubes of the given degree, most recent first.
func (cx *Complex) Tail(degree, n int) []*Cube {
	level := cx.Level(degree)
	if n > len(level) {
		n = len(level)
	}
	out := make([]*Cube, n)
	for i := 0; i < n; i++ {
		out[i] = level[len(level)-1-i]
	}
	return out
}

// EdgePIDs returns the process id of every axis of c.
func (cx *Complex) EdgePIDs(c *Cube) []int {
	pids := make([]int, len(c.Edges))
	for i := range c.Edges {
		pids[i] = cx.Edge(c, i).PID()
	}
	return pids
}

// Origin returns the initial vertex of c as seen from its first axis.
func (cx *Complex) Origin(c *Cube) *Cube {
	if c.Degree == 0 {
		return c
	}
	e := cx.Edge(c, 0)
	return cx.At(0, e.Boundary[0][0])
}

// Deadlocks returns the non-final states without an outgoing transition.
func (cx *Complex) Deadlocks() []*Cube {
	var out []*Cube
	for _, v := range cx.Level(0) {
		if !v.Final && len(v.Cofaces[0][0]) == 0 {
			out = append(out, v)
		}
	}
	return out
}

// Boundaries returns the number of boundary relations, sum of 2*d over all cubes.
func (cx *Complex) Boundaries() int {
	n := 0
	for d, l := range cx.levels {
		n += 2 * d * len(l)
	}
	return n
}

// Euler returns the alternating sum of cube counts.
func (cx *Complex) Euler() int {
	chi := 0
	for d, l := range cx.levels {
		if d%2 == 0 {
			chi += len(l)
		} else {
			chi -= len(l)
		}
	}
	return chi
}
