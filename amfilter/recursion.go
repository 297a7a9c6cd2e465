package amfilter

import (
	"github.com/voxelprint/amfilter/amerr"
	"github.com/voxelprint/amfilter/smooth"
)

// ComputeGridLayerSupportDensity writes, for every node on layer k, its
// support density into out: 1.0 on the baseplate (k==0), otherwise
// smax(P) of the printable density gathered over the support indices.
func (f *AMFilter) ComputeGridLayerSupportDensity(k int, rhoTilde []float64, out []float64) error {
	n := f.grid.NodeCount()
	if len(rhoTilde) != n || len(out) != n {
		return amerr.Domainf("amfilter: grid arrays must have length %d", n)
	}
	nu, nv, _ := f.grid.Dims()
	for j := 0; j < nv; j++ {
		for i := 0; i < nu; i++ {
			idx, err := f.grid.Index(i, j, k)
			if err != nil {
				return err
			}
			if k == 0 {
				out[idx] = 1.0
				continue
			}
			support, err := f.grid.SupportIndices(i, j, k)
			if err != nil {
				return err
			}
			vals := make([]float64, len(support))
			for s, gi := range support {
				vals[s] = rhoTilde[gi]
			}
			sm, err := smooth.SMax(vals, f.p)
			if err != nil {
				return err
			}
			out[idx] = sm
		}
	}
	return nil
}

// ComputeGridLayerPrintableDensity writes, for every node on layer k, its
// printable density: smin(rhoHat[g], rhoSupport[g]).
func (f *AMFilter) ComputeGridLayerPrintableDensity(k int, rhoHat, rhoSupport, rhoTilde []float64) error {
	n := f.grid.NodeCount()
	if len(rhoHat) != n || len(rhoSupport) != n || len(rhoTilde) != n {
		return amerr.Domainf("amfilter: grid arrays must have length %d", n)
	}
	nu, nv, _ := f.grid.Dims()
	for j := 0; j < nv; j++ {
		for i := 0; i < nu; i++ {
			idx, err := f.grid.Index(i, j, k)
			if err != nil {
				return err
			}
			rhoTilde[idx] = smooth.SMin(rhoHat[idx], rhoSupport[idx])
		}
	}
	return nil
}

// ComputeGridPrintableDensity runs the full per-layer recursion low to
// high. Layer k's support reads layer k-1 of the printable field written
// on the previous iteration only; the loop order is mandatory.
func (f *AMFilter) ComputeGridPrintableDensity(rhoHat []float64) ([]float64, error) {
	n := f.grid.NodeCount()
	if len(rhoHat) != n {
		return nil, amerr.Domainf("amfilter: grid blueprint density length %d does not match node count %d", len(rhoHat), n)
	}
	rhoTilde := make([]float64, n)
	support := make([]float64, n)
	_, _, nw := f.grid.Dims()
	for k := 0; k < nw; k++ {
		if err := f.ComputeGridLayerSupportDensity(k, rhoTilde, support); err != nil {
			return nil, err
		}
		if err := f.ComputeGridLayerPrintableDensity(k, rhoHat, support, rhoTilde); err != nil {
			return nil, err
		}
	}
	return rhoTilde, nil
}
