// Package mesh owns the immutable tetrahedral mesh: node coordinates, tet
// node-index tuples, and the geometric queries the AM filter needs over
// them (bounding boxes, edge lengths, barycentric coordinates, and batch
// point location).
package mesh

import (
	"math"

	"github.com/voxelprint/amfilter/amerr"
	"github.com/voxelprint/amfilter/vec3"

	"gonum.org/v1/gonum/mat"
)

// degenerateTol bounds how close to zero six times a tet's signed volume
// (the signedVolume value) may be before it is rejected as degenerate.
const degenerateTol = 1e-12

// TetMesh is an immutable mesh of tetrahedra with shared nodes. It is safe
// for concurrent reads from multiple goroutines once constructed.
type TetMesh struct {
	nodes []vec3.Vec
	tets  [][4]int
}

// New builds a TetMesh from a node-coordinate sequence and a tet
// node-index sequence. Both must be non-empty; every tet tuple must
// reference 4 distinct, in-range nodes.
func New(nodes []vec3.Vec, tets [][4]int) (*TetMesh, error) {
	if len(nodes) == 0 {
		return nil, amerr.Domainf("mesh: node sequence is empty")
	}
	if len(tets) == 0 {
		return nil, amerr.Domainf("mesh: tet sequence is empty")
	}
	for ti, tet := range tets {
		seen := make(map[int]bool, 4)
		for _, idx := range tet {
			if idx < 0 || idx >= len(nodes) {
				return nil, amerr.OutOfRangef("mesh: tet %d references node index %d out of range [0,%d)", ti, idx, len(nodes))
			}
			if seen[idx] {
				return nil, amerr.Domainf("mesh: tet %d repeats node index %d", ti, idx)
			}
			seen[idx] = true
		}
	}

	cp := make([]vec3.Vec, len(nodes))
	copy(cp, nodes)
	tc := make([][4]int, len(tets))
	copy(tc, tets)
	return &TetMesh{nodes: cp, tets: tc}, nil
}

// NodeCount returns the number of nodes.
func (m *TetMesh) NodeCount() int { return len(m.nodes) }

// TetCount returns the number of tetrahedra.
func (m *TetMesh) TetCount() int { return len(m.tets) }

// Node returns the coordinates of node i.
func (m *TetMesh) Node(i int) (vec3.Vec, error) {
	if i < 0 || i >= len(m.nodes) {
		return vec3.Vec{}, amerr.OutOfRangef("mesh: node index %d out of range [0,%d)", i, len(m.nodes))
	}
	return m.nodes[i], nil
}

// Tet returns the 4-tuple of node indices forming tet i.
func (m *TetMesh) Tet(i int) ([4]int, error) {
	if i < 0 || i >= len(m.tets) {
		return [4]int{}, amerr.OutOfRangef("mesh: tet index %d out of range [0,%d)", i, len(m.tets))
	}
	return m.tets[i], nil
}

// tetVerts returns the four corner coordinates of tet i.
func (m *TetMesh) tetVerts(i int) ([4]vec3.Vec, error) {
	tet, err := m.Tet(i)
	if err != nil {
		return [4]vec3.Vec{}, err
	}
	var v [4]vec3.Vec
	for k, idx := range tet {
		v[k] = m.nodes[idx]
	}
	return v, nil
}

// BoundingBox projects every node onto the axes of basis (u,v,w) and
// returns the componentwise min and max of the projections, each as a
// Vec whose X,Y,Z hold the u,v,w projections respectively.
func (m *TetMesh) BoundingBox(u, v, w vec3.Vec) (min, max vec3.Vec) {
	proj := make([]vec3.Vec, len(m.nodes))
	for i, n := range m.nodes {
		proj[i] = vec3.New(n.Dot(u), n.Dot(v), n.Dot(w))
	}
	return vec3.MinMax(proj)
}

// MinEdgeLength returns the shortest of the six undirected edges across
// every tet in the mesh.
func (m *TetMesh) MinEdgeLength() float64 {
	pairs := [6][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	min := math.Inf(1)
	for ti := range m.tets {
		v, err := m.tetVerts(ti)
		if err != nil {
			continue
		}
		for _, pr := range pairs {
			l := v[pr[0]].Sub(v[pr[1]]).Length()
			if l < min {
				min = l
			}
		}
	}
	return min
}

// signedVolume returns six times the signed volume of the tet with the
// given corners, i.e. (v1-v0)x(v2-v0) . (v3-v0).
func signedVolume(v [4]vec3.Vec) float64 {
	e1 := v[1].Sub(v[0])
	e2 := v[2].Sub(v[0])
	e3 := v[3].Sub(v[0])
	return e1.Cross(e2).Dot(e3)
}

// Barycentric returns the four barycentric weights of point p with
// respect to tet tetIdx, solving the 4x4 linear system of the affine
// combination plus the weights-sum-to-one constraint. Fails with
// DomainError when the tet is degenerate.
func (m *TetMesh) Barycentric(tetIdx int, p vec3.Vec) ([4]float64, error) {
	v, err := m.tetVerts(tetIdx)
	if err != nil {
		return [4]float64{}, err
	}
	if math.Abs(signedVolume(v)) < degenerateTol {
		return [4]float64{}, amerr.Domainf("mesh: tet %d is degenerate", tetIdx)
	}

	a := mat.NewDense(4, 4, []float64{
		v[0].X, v[1].X, v[2].X, v[3].X,
		v[0].Y, v[1].Y, v[2].Y, v[3].Y,
		v[0].Z, v[1].Z, v[2].Z, v[3].Z,
		1, 1, 1, 1,
	})
	b := mat.NewDense(4, 1, []float64{p.X, p.Y, p.Z, 1})

	var x mat.Dense
	if err := x.Solve(a, b); err != nil {
		return [4]float64{}, amerr.Domainf("mesh: tet %d barycentric solve failed: %v", tetIdx, err)
	}
	return [4]float64{x.At(0, 0), x.At(1, 0), x.At(2, 0), x.At(3, 0)}, nil
}
