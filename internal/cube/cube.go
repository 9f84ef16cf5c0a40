// Package cube holds the semi-cubical complex: cubes, their boundary and coface
// relations, and the per-degree arena that owns them.
//
// Cubes never point at each other directly. A boundary of a degree-d cube is the
// ID of a (d-1)-cube and a coface is the ID of a (d+1)-cube, both resolved through
// the Complex. IDs are stable for the life of the Complex.
package cube

// ID is the position of a cube inside the arena of its degree.
type ID int

// Cube is a d-dimensional cell of the complex.
type Cube struct {
	Degree int
	// Index is the cube's position in the arena of its degree.
	Index ID
	// Boundary[k][i] is the front (k=0) or back (k=1) face along axis i.
	Boundary [2][]ID
	// Cofaces[k][i] lists the cubes having this cube as Boundary[k][i], in insertion order.
	Cofaces [2][][]ID
	// Edges lists one degree-1 cube per axis.
	Edges   []ID
	Labels  []Label
	Initial bool
	Final   bool
}

// New allocates a detached cube of the given degree with empty relations.
func New(degree int, labels ...Label) *Cube {
	c := &Cube{Degree: degree, Index: -1, Labels: labels}
	for k := 0; k < 2; k++ {
		c.Boundary[k] = make([]ID, degree)
		c.Cofaces[k] = make([][]ID, degree+1)
	}
	return c
}

// PID returns the process id of the cube's first label.
func (c *Cube) PID() int {
	if len(c.Labels) == 0 {
		return StatePID
	}
	return c.Labels[0].PID
}

// Text returns the text of the cube's first label.
func (c *Cube) Text() string {
	if len(c.Labels) == 0 {
		return ""
	}
	return c.Labels[0].Text
}

// Independent reports whether two edges may span a common square.
func Independent(a, b *Cube) bool {
	return a.PID() != b.PID()
}
