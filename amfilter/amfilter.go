// Package amfilter composes a TetMesh and an OrthoGrid into the
// additive-manufacturing printability filter: resample the tet blueprint
// density onto the grid, run the per-layer smooth-min/smooth-max
// printability recursion, resample the grid printable density back onto
// the tet nodes, plus the adjoint pass propagating a tet-space
// sensitivity back through the whole composition.
package amfilter

import (
	"fmt"

	"github.com/voxelprint/amfilter/amerr"
	"github.com/voxelprint/amfilter/grid"
	"github.com/voxelprint/amfilter/mesh"
	"github.com/voxelprint/amfilter/pvector"
	"github.com/voxelprint/amfilter/vec3"
)

// AMFilter borrows (does not own) a TetMesh and an OrthoGrid; both must
// outlive the filter.
type AMFilter struct {
	mesh *mesh.TetMesh
	grid *grid.OrthoGrid
	p    float64

	// Precomputed once at construction.
	gridXYZ  []vec3.Vec
	gridTets []int // tet index per grid node, mesh.NoTet if outside
}

// New constructs an AMFilter over mesh m and grid g with P-norm parameter
// p (must be >= 1). It precomputes, once, every grid node's xyz position
// and containing-tet index.
func New(m *mesh.TetMesh, g *grid.OrthoGrid, p float64) (*AMFilter, error) {
	if p < 1 {
		return nil, amerr.Domainf("amfilter: P-norm %g must be >= 1", p)
	}

	xyz := g.AllXYZ()
	tets, err := m.LocateAll(xyz)
	if err != nil {
		return nil, err
	}

	return &AMFilter{mesh: m, grid: g, p: p, gridXYZ: xyz, gridTets: tets}, nil
}

// String returns a one-line human-readable summary of the filter.
func (f *AMFilter) String() string {
	nu, nv, nw := f.grid.Dims()
	return fmt.Sprintf("AMFilter{grid=(%d,%d,%d), P=%g, tet-count=%d}", nu, nv, nw, f.p, f.mesh.TetCount())
}

// ComputeGridBlueprintDensity resamples a tet-node blueprint density field
// onto the grid via barycentric interpolation; grid nodes outside every
// tet get 0.
func (f *AMFilter) ComputeGridBlueprintDensity(rhoTet pvector.Vector) ([]float64, error) {
	if rhoTet.Len() != f.mesh.NodeCount() {
		return nil, amerr.Domainf("amfilter: tet density length %d does not match node count %d", rhoTet.Len(), f.mesh.NodeCount())
	}
	out := make([]float64, len(f.gridTets))
	for g := range out {
		v, err := f.computeGridPointBlueprintDensity(g, rhoTet)
		if err != nil {
			return nil, err
		}
		out[g] = v
	}
	return out, nil
}

// computeGridPointBlueprintDensity computes the blueprint density at one
// grid node, given its serialized index.
func (f *AMFilter) computeGridPointBlueprintDensity(gridIdx int, rhoTet pvector.Vector) (float64, error) {
	tetIdx := f.gridTets[gridIdx]
	if tetIdx == mesh.NoTet {
		return 0, nil
	}
	tet, err := f.mesh.Tet(tetIdx)
	if err != nil {
		return 0, err
	}
	w, err := f.mesh.Barycentric(tetIdx, f.gridXYZ[gridIdx])
	if err != nil {
		return 0, err
	}
	var sum float64
	for a := 0; a < 4; a++ {
		sum += w[a] * rhoTet.Get(tet[a])
	}
	return sum, nil
}

// ComputeGridPointBlueprintDensity is the public (i,j,k) overload of the
// per-node blueprint density computation.
func (f *AMFilter) ComputeGridPointBlueprintDensity(i, j, k int, rhoTet pvector.Vector) (float64, error) {
	idx, err := f.grid.Index(i, j, k)
	if err != nil {
		return 0, err
	}
	return f.computeGridPointBlueprintDensity(idx, rhoTet)
}

// ComputeGridPointBlueprintDensityTuple is the [3]int overload.
func (f *AMFilter) ComputeGridPointBlueprintDensityTuple(t [3]int, rhoTet pvector.Vector) (float64, error) {
	return f.ComputeGridPointBlueprintDensity(t[0], t[1], t[2], rhoTet)
}

// ComputeTetNodePrintableDensity trilinearly interpolates the grid
// printable density at the xyz position of tet node nodeIndex.
func (f *AMFilter) ComputeTetNodePrintableDensity(nodeIndex int, rhoTilde []float64) (float64, error) {
	if len(rhoTilde) != f.grid.NodeCount() {
		return 0, amerr.Domainf("amfilter: grid printable density length %d does not match node count %d", len(rhoTilde), f.grid.NodeCount())
	}
	p, err := f.mesh.Node(nodeIndex)
	if err != nil {
		return 0, err
	}
	corners, err := f.grid.ContainingElement(p)
	if err != nil {
		return 0, err
	}
	var values [8]float64
	for c, idx := range corners {
		values[c] = rhoTilde[idx]
	}
	return f.grid.Interpolate(corners, values, p)
}

// ComputeTetMeshPrintableDensity writes, for every tet node, its
// interpolated printable density into rhoStarTet.
func (f *AMFilter) ComputeTetMeshPrintableDensity(rhoTilde []float64, rhoStarTet pvector.Vector) error {
	if rhoStarTet.Len() != f.mesh.NodeCount() {
		return amerr.Domainf("amfilter: tet output length %d does not match node count %d", rhoStarTet.Len(), f.mesh.NodeCount())
	}
	if len(rhoTilde) != f.grid.NodeCount() {
		return amerr.Domainf("amfilter: grid printable density length %d does not match node count %d", len(rhoTilde), f.grid.NodeCount())
	}
	for n := 0; n < f.mesh.NodeCount(); n++ {
		v, err := f.ComputeTetNodePrintableDensity(n, rhoTilde)
		if err != nil {
			return err
		}
		rhoStarTet.Set(n, v)
	}
	return nil
}
