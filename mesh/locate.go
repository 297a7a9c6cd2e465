package mesh

import (
	"runtime"
	"sync"

	"github.com/voxelprint/amfilter/vec3"

	"github.com/dhconnelly/rtreego"
)

// RelativeTol is the fraction of a tet's bounding-box extent used to
// inflate it before indexing, absorbing floating-point slop at faces
// shared between adjacent tets.
const RelativeTol = 1e-2

// NoTet is the sentinel tet index reported when a query point falls
// outside every tet in the mesh.
const NoTet = -1

// tetBox is the rtreego.Spatial wrapping one tet's inflated bounding box.
type tetBox struct {
	idx    int
	bounds *rtreego.Rect
}

func (t *tetBox) Bounds() *rtreego.Rect { return t.bounds }

// buildIndex computes an inflated AABB per tet and returns an rtreego
// index over them.
func (m *TetMesh) buildIndex() (*rtreego.Rtree, error) {
	tree := rtreego.NewTree(3, 25, 50)
	for ti := range m.tets {
		v, err := m.tetVerts(ti)
		if err != nil {
			return nil, err
		}
		min, max := vec3.MinMax(v[:])
		lo := [3]float64{min.X, min.Y, min.Z}
		hi := [3]float64{max.X, max.Y, max.Z}
		for a := 0; a < 3; a++ {
			extent := hi[a] - lo[a]
			pad := extent * RelativeTol
			lo[a] -= pad
			hi[a] += pad
			if hi[a] <= lo[a] {
				// Degenerate extent on this axis: still give the box a
				// nonzero thickness so rtreego accepts it.
				hi[a] = lo[a] + 1e-9
			}
		}
		rect, err := rtreego.NewRect(rtreego.Point{lo[0], lo[1], lo[2]}, []float64{hi[0] - lo[0], hi[1] - lo[1], hi[2] - lo[2]})
		if err != nil {
			return nil, err
		}
		tree.Insert(&tetBox{idx: ti, bounds: rect})
	}
	return tree, nil
}

// locateOne finds the containing tet for a single point using the BVH
// broad phase then the exact same-side narrow phase, accepting the first
// candidate (in BVH traversal order) that passes. Returns NoTet when no
// candidate passes.
func (m *TetMesh) locateOne(tree *rtreego.Rtree, p vec3.Vec) (int, error) {
	pt := rtreego.Point{p.X, p.Y, p.Z}
	rect, err := rtreego.NewRect(pt, []float64{1e-12, 1e-12, 1e-12})
	if err != nil {
		return NoTet, err
	}
	for _, candidate := range tree.SearchIntersect(rect) {
		tb := candidate.(*tetBox)
		ok, err := m.PointInTetAt(tb.idx, p)
		if err != nil {
			return NoTet, err
		}
		if ok {
			return tb.idx, nil
		}
	}
	return NoTet, nil
}

// LocateAll returns, for each query point, the index of the tet that
// contains it, or NoTet. The per-point work is embarrassingly parallel;
// it is fanned out across a fixed worker pool sized to the host's CPU
// count, one that mirrors the channel-and-waitgroup batching idiom used
// elsewhere in this codebase for per-point evaluation.
func (m *TetMesh) LocateAll(points []vec3.Vec) ([]int, error) {
	tree, err := m.buildIndex()
	if err != nil {
		return nil, err
	}

	result := make([]int, len(points))
	errs := make([]error, len(points))

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > len(points) {
		workers = len(points)
	}

	var wg sync.WaitGroup
	indices := make(chan int, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				idx, err := m.locateOne(tree, points[i])
				result[i] = idx
				errs[i] = err
			}
		}()
	}
	for i := range points {
		indices <- i
	}
	close(indices)
	wg.Wait()

	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}
	return result, nil
}
