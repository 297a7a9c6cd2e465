package grid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/voxelprint/amfilter/vec3"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteInp(t *testing.T) {
	u, v, w := axes()
	g, err := NewFromCounts(u, v, w, vec3.New(0, 0, 0), vec3.New(1, 1, 1), [3]int{1, 1, 1})
	require.NoError(t, err)

	field := make([]float64, g.NodeCount())
	for i := range field {
		field[i] = float64(i) / float64(len(field))
	}

	path := filepath.Join(t.TempDir(), "grid.inp")
	require.NoError(t, g.WriteInp(path, field))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "*NODE")
	assert.Contains(t, string(data), "*ELEMENT, TYPE=C3D8")
	assert.Contains(t, string(data), "*NODAL TEMPERATURE")
}

func TestWriteInpRejectsBadFieldLength(t *testing.T) {
	u, v, w := axes()
	g, err := NewFromCounts(u, v, w, vec3.New(0, 0, 0), vec3.New(1, 1, 1), [3]int{1, 1, 1})
	require.NoError(t, err)

	err = g.WriteInp(filepath.Join(t.TempDir(), "grid.inp"), []float64{1, 2, 3})
	assert.Error(t, err)
}
