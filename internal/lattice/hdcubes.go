package lattice

import (
	"slices"

	"github.com/comalice/pg2hda/internal/cube"
	"github.com/comalice/pg2hda/internal/primitives"
)

// Faces is the working set of (degree-1)-cubes containing a new edge, most
// recently inserted first. Configurations and orientations refer to faces by
// their index in this set.
//
// Throughout, the new cube has the edge on axis edgeindex, and configuration
// position j stands for the cube's axis j when j < edgeindex and j+1 otherwise.
type Faces struct {
	cx    *cube.Complex
	Cubes []*cube.Cube
	pids  [][]int
}

// NewFaces caches the per-axis process ids of every face.
func NewFaces(cx *cube.Complex, cubes []*cube.Cube) *Faces {
	fs := &Faces{cx: cx, Cubes: cubes, pids: make([][]int, len(cubes))}
	for i, c := range cubes {
		fs.pids[i] = cx.EdgePIDs(c)
	}
	return fs
}

// axis maps configuration position j to the axis of the new cube.
func axis(j, edgeindex int) int {
	if j < edgeindex {
		return j
	}
	return j + 1
}

// innerAxis is the axis of the shared edge inside the face at position j.
func innerAxis(j, edgeindex int) int {
	if j < edgeindex {
		return edgeindex - 1
	}
	return edgeindex
}

// without returns pid with the entry at i removed.
func without(pid []int, i int) []int {
	out := make([]int, 0, len(pid)-1)
	out = append(out, pid[:i]...)
	return append(out, pid[i+1:]...)
}

// Config lists every tuple of degree-1 face indices that could bound a new
// cube of the given degree around edge, one face per axis other than the edge's.
func (fs *Faces) Config(edge *cube.Cube, degree int) [][]int {
	veclist := make([][]int, len(fs.Cubes))
	for i := range veclist {
		veclist[i] = []int{i}
	}
	edgepid := edge.PID()
	var config [][]int
	for _, v := range primitives.Product(veclist, veclist) {
		p0, p1 := fs.pids[v[0]], fs.pids[v[1]]
		edgeindex := slices.Index(p0, edgepid)
		if edgeindex < 0 {
			continue
		}
		pid := make([]int, degree)
		if edgeindex == 0 && p1[0] == edgepid {
			if p1[1] == p0[1] {
				continue
			}
			pid[0] = edgepid
			pid[1] = p1[1]
			for i := 2; i < degree; i++ {
				pid[i] = p0[i-1]
			}
		} else {
			if p1[0] >= p0[0] {
				continue
			}
			edgeindex++
			pid[0] = p1[0]
			for i := 1; i < degree; i++ {
				pid[i] = p0[i-1]
			}
		}
		if !slices.Equal(p0, without(pid, axis(0, edgeindex))) ||
			!slices.Equal(p1, without(pid, axis(1, edgeindex))) {
			continue
		}
		config = primitives.Concat(config, fs.ExtendConfig(v, edgeindex, degree, pid))
	}
	return config
}

// ExtendConfig grows an accepted pair of face indices into full configurations,
// choosing for every further position the faces whose axes carry pid without
// that position's axis.
func (fs *Faces) ExtendConfig(pair []int, edgeindex, degree int, pid []int) [][]int {
	config := [][]int{slices.Clone(pair)}
	for d := 2; d < degree-1 && len(config) > 0; d++ {
		want := without(pid, axis(d, edgeindex))
		var dlist [][]int
		for k := range fs.Cubes {
			if slices.Equal(fs.pids[k], want) {
				dlist = append(dlist, []int{k})
			}
		}
		config = primitives.Product(config, dlist)
	}
	return config
}

// Upperindices returns every orientation of configuration v: entry j is 0 when
// face v[j] is the front face of the new cube along its axis and 1 when it is
// the back face. The first two faces seed the candidates.
func (fs *Faces) Upperindices(edgeindex int, v []int) [][]int {
	cx := fs.cx
	f0, f1 := fs.Cubes[v[0]], fs.Cubes[v[1]]
	a0, a1 := axis(0, edgeindex), axis(1, edgeindex)
	var out [][]int
	for _, u := range [][]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		if cx.Face(f0, u[1], a1-1) == cx.Face(f1, u[0], a0) {
			out = append(out, fs.CompleteUpperindices(edgeindex, v, u)...)
		}
	}
	return out
}

// CompleteUpperindices extends a seeded orientation over the remaining faces,
// keeping the sides on which face v[i] meets face v[0] in a common boundary.
func (fs *Faces) CompleteUpperindices(edgeindex int, v []int, seed []int) [][]int {
	cx := fs.cx
	f0 := fs.Cubes[v[0]]
	a0 := axis(0, edgeindex)
	list := [][]int{slices.Clone(seed)}
	for i := 2; i < len(v) && len(list) > 0; i++ {
		want := cx.Face(fs.Cubes[v[i]], seed[0], a0)
		ai := axis(i, edgeindex)
		var allowed [][]int
		for j := 0; j < 2; j++ {
			if cx.Face(f0, j, ai-1) == want {
				allowed = append(allowed, []int{j})
			}
		}
		list = primitives.Product(list, allowed)
	}
	return list
}

// FillHDCubes adds the cubes of the given degree containing edge, assuming the
// last facecount cubes of degree-1 are exactly the faces containing edge.
// It returns the number of cubes added.
func (e *Engine) FillHDCubes(edge *cube.Cube, degree, facecount int) int {
	cx := e.cx
	fs := NewFaces(cx, cx.Tail(degree-1, facecount))
	edgepid := edge.PID()
	added := 0
	for _, v := range fs.Config(edge, degree) {
		edgeindex := slices.Index(fs.pids[v[0]], edgepid)
		if edgeindex > 0 || fs.pids[v[1]][0] != edgepid {
			edgeindex++
		}
		for _, u := range fs.Upperindices(edgeindex, v) {
			added += e.fillOriented(fs, edgeindex, degree, v, u)
		}
	}
	return added
}

// fillOriented completes one oriented configuration: it finds the faces
// bounding the new cube along the edge's axis, then the faces opposite each
// configuration face, and tries every resulting boundary.
func (e *Engine) fillOriented(fs *Faces, edgeindex, degree int, v, u []int) int {
	cx := e.cx
	var tops [2][]cube.ID
	for i := 0; i < 2; i++ {
		var list []cube.ID
		for j := range v {
			f := fs.Cubes[v[j]]
			co := cx.Face(f, i, innerAxis(j, edgeindex)).Cofaces[u[j]][j]
			if j == 0 {
				list = primitives.Merge(nil, co)
			} else {
				list = primitives.Intersection(co, list)
			}
			if len(list) == 0 {
				return 0
			}
		}
		tops[i] = list
	}

	added := 0
	for _, t0 := range tops[0] {
		for _, t1 := range tops[1] {
			top0, top1 := cx.At(degree-1, t0), cx.At(degree-1, t1)
			var candidates [][]cube.ID
			for j := range v {
				ax := innerAxis(j, edgeindex)
				s := primitives.Intersection(
					cx.Face(top0, 1-u[j], j).Cofaces[0][ax],
					cx.Face(top1, 1-u[j], j).Cofaces[1][ax],
				)
				if j == 0 {
					candidates = primitives.Singletons(s)
				} else {
					candidates = primitives.Product(candidates, primitives.Singletons(s))
				}
				if len(candidates) == 0 {
					break
				}
			}
			for _, opposite := range candidates {
				if e.addCube(fs, edgeindex, degree, v, u, top0, top1, opposite) {
					added++
				}
			}
		}
	}
	return added
}

// addCube assembles the cube bounded by top0/top1 along the edge's axis, by the
// configuration faces on the sides given by u, and by the opposite faces.
func (e *Engine) addCube(fs *Faces, edgeindex, degree int, v, u []int, top0, top1 *cube.Cube, opposite []cube.ID) bool {
	cx := e.cx
	c := cube.New(degree)
	c.Boundary[0][edgeindex] = top0.Index
	c.Boundary[1][edgeindex] = top1.Index
	others := primitives.Intersection(top0.Cofaces[0][edgeindex], top1.Cofaces[1][edgeindex])
	for j := range v {
		ax := axis(j, edgeindex)
		f := fs.Cubes[v[j]]
		o := cx.At(degree-1, opposite[j])
		c.Boundary[u[j]][ax] = f.Index
		c.Boundary[1-u[j]][ax] = o.Index
		others = primitives.Intersection(f.Cofaces[u[j]][ax], others)
		others = primitives.Intersection(o.Cofaces[1-u[j]][ax], others)
	}
	return e.accept(c, others)
}
