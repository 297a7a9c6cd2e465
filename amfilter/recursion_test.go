package amfilter

import (
	"testing"

	"github.com/voxelprint/amfilter/grid"
	"github.com/voxelprint/amfilter/mesh"
	"github.com/voxelprint/amfilter/smooth"
	"github.com/voxelprint/amfilter/vec3"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tinyFilter builds a 2x2x3 grid (nu=nv=2, nw=3) with a single covering tet.
// Every node of a 2x2 layer is a grid corner, so support sets are empty at
// the baseplate and hold 3 nodes on every layer above it.
func tinyFilter(t *testing.T) *AMFilter {
	t.Helper()
	nodes := []vec3.Vec{
		vec3.New(-10, -10, -10),
		vec3.New(30, -10, -10),
		vec3.New(-10, 30, -10),
		vec3.New(-10, -10, 30),
	}
	m, err := mesh.New(nodes, [][4]int{{0, 1, 2, 3}})
	require.NoError(t, err)

	u, v, w := vec3.New(1, 0, 0), vec3.New(0, 1, 0), vec3.New(0, 0, 1)
	g, err := grid.NewFromCounts(u, v, w, vec3.New(0, 0, 0), vec3.New(1, 1, 2), [3]int{1, 1, 2})
	require.NoError(t, err)

	f, err := New(m, g, 4)
	require.NoError(t, err)
	return f
}

func TestComputeGridLayerSupportDensityBaseplate(t *testing.T) {
	f := tinyFilter(t)
	n := f.grid.NodeCount()
	rhoTilde := make([]float64, n)
	out := make([]float64, n)
	require.NoError(t, f.ComputeGridLayerSupportDensity(0, rhoTilde, out))
	nu, nv, _ := f.grid.Dims()
	for j := 0; j < nv; j++ {
		for i := 0; i < nu; i++ {
			idx, err := f.grid.Index(i, j, 0)
			require.NoError(t, err)
			assert.Equal(t, 1.0, out[idx])
		}
	}
}

func TestComputeGridLayerSupportDensityPropagates(t *testing.T) {
	f := tinyFilter(t)
	n := f.grid.NodeCount()
	rhoHat := make([]float64, n)
	for i := range rhoHat {
		rhoHat[i] = 1.0
	}
	rhoTilde, err := f.ComputeGridPrintableDensity(rhoHat)
	require.NoError(t, err)
	for _, v := range rhoTilde {
		assert.InDelta(t, 1.0, v, 1e-9)
	}
}

func TestComputeGridLayerSupportDensityRejectsBadLength(t *testing.T) {
	f := tinyFilter(t)
	err := f.ComputeGridLayerSupportDensity(0, []float64{1}, []float64{1})
	assert.Error(t, err)
}

func TestComputeGridPrintableDensityRejectsBadLength(t *testing.T) {
	f := tinyFilter(t)
	_, err := f.ComputeGridPrintableDensity([]float64{1})
	assert.Error(t, err)
}

func TestComputeGridLayerPrintableDensityMatchesSMin(t *testing.T) {
	f := tinyFilter(t)
	n := f.grid.NodeCount()
	rhoHat := make([]float64, n)
	rhoSupport := make([]float64, n)
	rhoTilde := make([]float64, n)
	for i := range rhoHat {
		rhoHat[i] = 0.5
		rhoSupport[i] = 0.9
	}
	require.NoError(t, f.ComputeGridLayerPrintableDensity(0, rhoHat, rhoSupport, rhoTilde))
	// Only layer 0 is written; the other layers keep their zero start value.
	nu, nv, nw := f.grid.Dims()
	for k := 0; k < nw; k++ {
		for j := 0; j < nv; j++ {
			for i := 0; i < nu; i++ {
				idx, err := f.grid.Index(i, j, k)
				require.NoError(t, err)
				if k == 0 {
					assert.Equal(t, smooth.SMin(0.5, 0.9), rhoTilde[idx])
				} else {
					assert.Equal(t, 0.0, rhoTilde[idx])
				}
			}
		}
	}
}
