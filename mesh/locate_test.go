package mesh

import (
	"testing"

	"github.com/voxelprint/amfilter/vec3"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointInTetAtVertex(t *testing.T) {
	m, err := New(unitTetNodes(), [][4]int{{0, 1, 2, 3}})
	require.NoError(t, err)

	ok, err := m.PointInTetAt(0, vec3.New(0, 0, 0))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPointInTetOutside(t *testing.T) {
	m, err := New(unitTetNodes(), [][4]int{{0, 1, 2, 3}})
	require.NoError(t, err)

	ok, err := m.PointInTetAt(0, vec3.New(5, 5, 5))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocateAllSingleTet(t *testing.T) {
	m, err := New(unitTetNodes(), [][4]int{{0, 1, 2, 3}})
	require.NoError(t, err)

	pts := []vec3.Vec{
		vec3.New(0.1, 0.1, 0.1), // inside
		vec3.New(5, 5, 5),       // outside
		vec3.New(0, 0, 0),       // on vertex
	}
	got, err := m.LocateAll(pts)
	require.NoError(t, err)
	assert.Equal(t, []int{0, NoTet, 0}, got)
}

func TestLocateAllManyPoints(t *testing.T) {
	m, err := New(unitTetNodes(), [][4]int{{0, 1, 2, 3}})
	require.NoError(t, err)

	pts := make([]vec3.Vec, 0, 50)
	for i := 0; i < 50; i++ {
		f := float64(i) / 200.0
		pts = append(pts, vec3.New(f, f, f))
	}
	got, err := m.LocateAll(pts)
	require.NoError(t, err)
	for _, idx := range got {
		assert.Equal(t, 0, idx)
	}
}
