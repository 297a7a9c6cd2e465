package amfilter

import (
	"github.com/voxelprint/amfilter/amerr"
	"github.com/voxelprint/amfilter/mesh"
	"github.com/voxelprint/amfilter/pvector"
	"github.com/voxelprint/amfilter/smooth"
)

// Adjoint propagates a tet-space output sensitivity dLdRhoStarTet (one
// entry per tet node, dL/drho*) back to a tet-space blueprint gradient
// dL/drho:
//  1. Apply the trilinear-interpolation transpose to scatter the tet-space
//     sensitivity onto the grid printable-density field.
//  2. Sweep layers high to low, accumulating through ∂smin/∂ρ̂ into the
//     grid blueprint-density sensitivity and through
//     ∂smin/∂ρ_support · ∂smax/∂ρ̃[neighbour] into the previous layer.
//  3. Apply the barycentric-interpolation transpose to obtain the
//     tet-space blueprint gradient.
//
// The forward pass is recomputed internally at rhoTet to linearize the
// adjoint at the same point a corresponding finite-difference check would
// use.
func (f *AMFilter) Adjoint(rhoTet pvector.Vector, dLdRhoStarTet pvector.Vector) (pvector.Vector, error) {
	if rhoTet.Len() != f.mesh.NodeCount() {
		return nil, amerr.Domainf("amfilter: tet density length %d does not match node count %d", rhoTet.Len(), f.mesh.NodeCount())
	}
	if dLdRhoStarTet.Len() != f.mesh.NodeCount() {
		return nil, amerr.Domainf("amfilter: tet sensitivity length %d does not match node count %d", dLdRhoStarTet.Len(), f.mesh.NodeCount())
	}

	rhoHat, err := f.ComputeGridBlueprintDensity(rhoTet)
	if err != nil {
		return nil, err
	}

	n := f.grid.NodeCount()
	rhoTilde := make([]float64, n)
	supportAll := make([]float64, n)
	_, _, nw := f.grid.Dims()
	for k := 0; k < nw; k++ {
		if err := f.ComputeGridLayerSupportDensity(k, rhoTilde, supportAll); err != nil {
			return nil, err
		}
		if err := f.ComputeGridLayerPrintableDensity(k, rhoHat, supportAll, rhoTilde); err != nil {
			return nil, err
		}
	}

	// Step 1: trilinear-interpolation transpose (G<-T)^T.
	adjRhoTilde := make([]float64, n)
	for t := 0; t < f.mesh.NodeCount(); t++ {
		p, err := f.mesh.Node(t)
		if err != nil {
			return nil, err
		}
		corners, err := f.grid.ContainingElement(p)
		if err != nil {
			return nil, err
		}
		weights, err := f.grid.TrilinearWeights(corners, p)
		if err != nil {
			return nil, err
		}
		sens := dLdRhoStarTet.Get(t)
		for c, idx := range corners {
			adjRhoTilde[idx] += weights[c] * sens
		}
	}

	// Step 2: high-to-low layer sweep through the smin/smax recursion.
	adjRhoHat := make([]float64, n)
	nu, nv, _ := f.grid.Dims()
	for k := nw - 1; k >= 0; k-- {
		for j := 0; j < nv; j++ {
			for i := 0; i < nu; i++ {
				idx, err := f.grid.Index(i, j, k)
				if err != nil {
					return nil, err
				}
				da, db := smooth.SMinGrad(rhoHat[idx], supportAll[idx])
				adjRhoHat[idx] += adjRhoTilde[idx] * da
				adjSupport := adjRhoTilde[idx] * db
				if k == 0 {
					continue
				}
				supportIdx, err := f.grid.SupportIndices(i, j, k)
				if err != nil {
					return nil, err
				}
				vals := make([]float64, len(supportIdx))
				for s, gi := range supportIdx {
					vals[s] = rhoTilde[gi]
				}
				grad := smooth.SMaxGrad(vals, f.p)
				for s, gi := range supportIdx {
					adjRhoTilde[gi] += adjSupport * grad[s]
				}
			}
		}
	}

	// Step 3: barycentric-interpolation transpose (T->G)^T.
	gradTet := pvector.Zeros(f.mesh.NodeCount())
	for g := 0; g < n; g++ {
		tetIdx := f.gridTets[g]
		if tetIdx == mesh.NoTet {
			continue
		}
		tet, err := f.mesh.Tet(tetIdx)
		if err != nil {
			return nil, err
		}
		w, err := f.mesh.Barycentric(tetIdx, f.gridXYZ[g])
		if err != nil {
			return nil, err
		}
		for a := 0; a < 4; a++ {
			gradTet.Set(tet[a], gradTet.Get(tet[a])+w[a]*adjRhoHat[g])
		}
	}

	return gradTet, nil
}
