package mesh

import (
	"math"

	"github.com/voxelprint/amfilter/amerr"
	"github.com/voxelprint/amfilter/vec3"
)

// faces lists the four triangular faces of a tet in (opposite-vertex,
// face-vertex-a, face-vertex-b, face-vertex-c) order, local to the 4
// corner indices 0..3.
var faces = [4][4]int{
	{0, 1, 2, 3},
	{1, 0, 2, 3},
	{2, 0, 1, 3},
	{3, 0, 1, 2},
}

// sameSide reports whether points p and opposite lie on the same side of
// the plane through a, b, c (or exactly on it), using the sign of the
// scalar triple product against the plane normal.
func sameSide(a, b, c, p, opposite vec3.Vec) bool {
	n := b.Sub(a).Cross(c.Sub(a))
	dp := n.Dot(p.Sub(a))
	do := n.Dot(opposite.Sub(a))
	return dp*do >= 0
}

// PointInTet reports whether point p lies inside (or on the boundary of)
// the tet with corners v[0..3], using the same-side test against each of
// the four faces. Fails with DomainError for a degenerate tet.
func PointInTet(v [4]vec3.Vec, p vec3.Vec) (bool, error) {
	if signedVol := signedVolume(v); math.Abs(signedVol) < degenerateTol {
		return false, amerr.Domainf("mesh: degenerate tet")
	}
	for _, f := range faces {
		opp, a, b, c := v[f[0]], v[f[1]], v[f[2]], v[f[3]]
		if !sameSide(a, b, c, p, opp) {
			return false, nil
		}
	}
	return true, nil
}

// PointInTetAt reports whether point p lies inside tet tetIdx of m.
func (m *TetMesh) PointInTetAt(tetIdx int, p vec3.Vec) (bool, error) {
	v, err := m.tetVerts(tetIdx)
	if err != nil {
		return false, err
	}
	return PointInTet(v, p)
}
