// Package grid implements OrthoGrid, the uniform voxel grid aligned with an
// orthonormal (u,v,w) build-direction frame that the AM printability filter
// resamples onto and back from.
package grid

import (
	"fmt"
	"math"

	"github.com/voxelprint/amfilter/amerr"
	"github.com/voxelprint/amfilter/vec3"
)

const basisTol = 1e-12

// hexOffsets lists the eight corner (di,dj,dk) offsets, in the canonical
// order fixed below, for a containing element.
var hexOffsets = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
}

// OrthoGrid is the uniform voxel grid aligned with (u,v,w) between min and
// max uvw-frame corners.
type OrthoGrid struct {
	u, v, w    vec3.Vec
	min, max   vec3.Vec // uvw-frame bounds: X=u, Y=v, Z=w components
	nu, nv, nw int      // node counts
}

func checkBasis(u, v, w vec3.Vec) error {
	for name, b := range map[string]vec3.Vec{"u": u, "v": v, "w": w} {
		l := b.Length()
		if math.Abs(l-1) > basisTol {
			return amerr.Domainf("grid: basis vector %s is not unit length (|%s|=%g)", name, name, l)
		}
	}
	if math.Abs(u.Dot(v)) > basisTol || math.Abs(u.Dot(w)) > basisTol || math.Abs(v.Dot(w)) > basisTol {
		return amerr.Domainf("grid: basis (u,v,w) is not orthogonal")
	}
	if u.Cross(v).Dot(w) <= 0 {
		return amerr.Domainf("grid: basis (u,v,w) is not right-handed")
	}
	return nil
}

func checkBounds(min, max vec3.Vec) error {
	if !(min.X < max.X) || !(min.Y < max.Y) || !(min.Z < max.Z) {
		return amerr.Domainf("grid: uvw bounds must satisfy min < max strictly on every axis")
	}
	return nil
}

// elementsFromEdgeLength returns ceil(extent/L), clamped to >= 1.
func elementsFromEdgeLength(extent, l float64) int {
	n := int(math.Ceil(extent / l))
	if n < 1 {
		n = 1
	}
	return n
}

// NewFromEdgeLength builds an OrthoGrid discretizing each axis by a target
// edge length L, clamped to at least 1 element per axis.
func NewFromEdgeLength(u, v, w, min, max vec3.Vec, l float64) (*OrthoGrid, error) {
	if l <= 0 {
		return nil, amerr.Domainf("grid: target edge length %g must be > 0", l)
	}
	if err := checkBasis(u, v, w); err != nil {
		return nil, err
	}
	if err := checkBounds(min, max); err != nil {
		return nil, err
	}
	eu := elementsFromEdgeLength(max.X-min.X, l)
	ev := elementsFromEdgeLength(max.Y-min.Y, l)
	ew := elementsFromEdgeLength(max.Z-min.Z, l)
	return &OrthoGrid{u: u, v: v, w: w, min: min, max: max, nu: eu + 1, nv: ev + 1, nw: ew + 1}, nil
}

// NewFromCounts builds an OrthoGrid with an explicit element count per
// axis (not node count); each must be >= 1.
func NewFromCounts(u, v, w, min, max vec3.Vec, counts [3]int) (*OrthoGrid, error) {
	if err := checkBasis(u, v, w); err != nil {
		return nil, err
	}
	if err := checkBounds(min, max); err != nil {
		return nil, err
	}
	for i, c := range counts {
		if c < 1 {
			return nil, amerr.Domainf("grid: element count on axis %d must be >= 1, got %d", i, c)
		}
	}
	return &OrthoGrid{u: u, v: v, w: w, min: min, max: max, nu: counts[0] + 1, nv: counts[1] + 1, nw: counts[2] + 1}, nil
}

// Dims returns the grid node counts (Nu, Nv, Nw).
func (g *OrthoGrid) Dims() (int, int, int) { return g.nu, g.nv, g.nw }

// NodeCount returns Nu*Nv*Nw.
func (g *OrthoGrid) NodeCount() int { return g.nu * g.nv * g.nw }

func (g *OrthoGrid) deltas() (du, dv, dw float64) {
	return (g.max.X - g.min.X) / float64(g.nu-1),
		(g.max.Y - g.min.Y) / float64(g.nv-1),
		(g.max.Z - g.min.Z) / float64(g.nw-1)
}

// Index returns the serialized index of node (i,j,k): i + j*Nu + k*Nu*Nv.
func (g *OrthoGrid) Index(i, j, k int) (int, error) {
	if i < 0 || i >= g.nu || j < 0 || j >= g.nv || k < 0 || k >= g.nw {
		return 0, amerr.OutOfRangef("grid: node (%d,%d,%d) out of range (Nu=%d,Nv=%d,Nw=%d)", i, j, k, g.nu, g.nv, g.nw)
	}
	return i + j*g.nu + k*g.nu*g.nv, nil
}

// IndexTuple is the [3]int overload of Index.
func (g *OrthoGrid) IndexTuple(t [3]int) (int, error) { return g.Index(t[0], t[1], t[2]) }

// UVWOfNode returns the uvw coordinates of node (i,j,k).
func (g *OrthoGrid) UVWOfNode(i, j, k int) (vec3.Vec, error) {
	if _, err := g.Index(i, j, k); err != nil {
		return vec3.Vec{}, err
	}
	du, dv, dw := g.deltas()
	return vec3.New(g.min.X+float64(i)*du, g.min.Y+float64(j)*dv, g.min.Z+float64(k)*dw), nil
}

// XYZ returns the xyz coordinates of node (i,j,k).
func (g *OrthoGrid) XYZ(i, j, k int) (vec3.Vec, error) {
	uvw, err := g.UVWOfNode(i, j, k)
	if err != nil {
		return vec3.Vec{}, err
	}
	return g.u.Scale(uvw.X).Add(g.v.Scale(uvw.Y)).Add(g.w.Scale(uvw.Z)), nil
}

// AllXYZ returns the xyz coordinates of every grid node in serialized order.
func (g *OrthoGrid) AllXYZ() []vec3.Vec {
	out := make([]vec3.Vec, g.NodeCount())
	for k := 0; k < g.nw; k++ {
		for j := 0; j < g.nv; j++ {
			for i := 0; i < g.nu; i++ {
				idx, _ := g.Index(i, j, k)
				out[idx], _ = g.XYZ(i, j, k)
			}
		}
	}
	return out
}

// UVWOfPoint projects an xyz point onto the (u,v,w) basis.
func (g *OrthoGrid) UVWOfPoint(p vec3.Vec) vec3.Vec {
	return vec3.New(g.u.Dot(p), g.v.Dot(p), g.w.Dot(p))
}

// axisBounds returns (min, delta, nodeCount) for axis a (0=u,1=v,2=w).
func (g *OrthoGrid) axisBounds(a int) (min, d float64, n int) {
	du, dv, dw := g.deltas()
	switch a {
	case 0:
		return g.min.X, du, g.nu
	case 1:
		return g.min.Y, dv, g.nv
	default:
		return g.min.Z, dw, g.nw
	}
}

// SurroundingIndices returns the 1-D element index pair (lo, lo+1) on axis
// a bracketing uvw coordinate t, clamped to a valid element.
func (g *OrthoGrid) SurroundingIndices(a int, t float64) (int, int, error) {
	if a < 0 || a > 2 {
		return 0, 0, amerr.Domainf("grid: axis %d out of range [0,3)", a)
	}
	min, d, n := g.axisBounds(a)
	lo := int(math.Floor((t - min) / d))
	if lo < 0 {
		lo = 0
	}
	if lo > n-2 {
		lo = n - 2
	}
	return lo, lo + 1, nil
}

// ContainingElement returns the eight corner node indices, in the
// canonical order above, of the hex containing xyz point p.
func (g *OrthoGrid) ContainingElement(p vec3.Vec) ([8]int, error) {
	uvw := g.UVWOfPoint(p)
	iu0, _, err := g.SurroundingIndices(0, uvw.X)
	if err != nil {
		return [8]int{}, err
	}
	iv0, _, err := g.SurroundingIndices(1, uvw.Y)
	if err != nil {
		return [8]int{}, err
	}
	iw0, _, err := g.SurroundingIndices(2, uvw.Z)
	if err != nil {
		return [8]int{}, err
	}

	var out [8]int
	for c, off := range hexOffsets {
		idx, err := g.Index(iu0+off[0], iv0+off[1], iw0+off[2])
		if err != nil {
			return [8]int{}, err
		}
		out[c] = idx
	}
	return out, nil
}

// SupportIndices returns the serialized indices of the support set of
// node (i,j,k): the empty set for k==0 (the baseplate), otherwise the
// in-range subset of the five nodes on layer k-1 directly below and
// diagonally adjacent to (i,j).
func (g *OrthoGrid) SupportIndices(i, j, k int) ([]int, error) {
	if _, err := g.Index(i, j, k); err != nil {
		return nil, err
	}
	if k == 0 {
		return nil, nil
	}
	candidates := [5][2]int{
		{i - 1, j}, {i, j - 1}, {i, j}, {i + 1, j}, {i, j + 1},
	}
	out := make([]int, 0, 5)
	for _, c := range candidates {
		if c[0] < 0 || c[0] >= g.nu || c[1] < 0 || c[1] >= g.nv {
			continue
		}
		idx, err := g.Index(c[0], c[1], k-1)
		if err != nil {
			return nil, err
		}
		out = append(out, idx)
	}
	return out, nil
}

// TrilinearWeights returns the standard trilinear basis weights for the 8
// corner indices (in the canonical order ContainingElement returns),
// evaluated at xyz point p. Interpolate is this dotted with corner
// values; the adjoint pass reuses these same weights to scatter a
// tet-space sensitivity back onto the grid.
func (g *OrthoGrid) TrilinearWeights(corners [8]int, p vec3.Vec) ([8]float64, error) {
	c0, err := g.cornerUVW(corners[0])
	if err != nil {
		return [8]float64{}, err
	}
	c7, err := g.cornerUVW(corners[7])
	if err != nil {
		return [8]float64{}, err
	}

	uvw := g.UVWOfPoint(p)
	xi := normalize01(uvw.X, c0.X, c7.X)
	eta := normalize01(uvw.Y, c0.Y, c7.Y)
	zeta := normalize01(uvw.Z, c0.Z, c7.Z)

	return [8]float64{
		(1 - xi) * (1 - eta) * (1 - zeta),
		xi * (1 - eta) * (1 - zeta),
		(1 - xi) * eta * (1 - zeta),
		xi * eta * (1 - zeta),
		(1 - xi) * (1 - eta) * zeta,
		xi * (1 - eta) * zeta,
		(1 - xi) * eta * zeta,
		xi * eta * zeta,
	}, nil
}

// Interpolate applies the standard trilinear basis over the 8 corner
// indices (in the canonical order ContainingElement returns) and their
// scalar values, evaluated at xyz point p.
func (g *OrthoGrid) Interpolate(corners [8]int, values [8]float64, p vec3.Vec) (float64, error) {
	n, err := g.TrilinearWeights(corners, p)
	if err != nil {
		return 0, err
	}
	var sum float64
	for c := 0; c < 8; c++ {
		sum += n[c] * values[c]
	}
	return sum, nil
}

func normalize01(t, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return (t - lo) / (hi - lo)
}

func (g *OrthoGrid) cornerUVW(idx int) (vec3.Vec, error) {
	if idx < 0 || idx >= g.NodeCount() {
		return vec3.Vec{}, amerr.OutOfRangef("grid: corner index %d out of range [0,%d)", idx, g.NodeCount())
	}
	k := idx / (g.nu * g.nv)
	rem := idx % (g.nu * g.nv)
	j := rem / g.nu
	i := rem % g.nu
	return g.UVWOfNode(i, j, k)
}

// String returns a one-line human-readable summary of the grid.
func (g *OrthoGrid) String() string {
	return fmt.Sprintf("OrthoGrid{Nu=%d,Nv=%d,Nw=%d, min=%v, max=%v}", g.nu, g.nv, g.nw, g.min, g.max)
}
