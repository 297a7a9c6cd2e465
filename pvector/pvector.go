// Package pvector models the "parallel vector" capability the AM
// printability filter consumes from its surrounding system: an opaque,
// possibly distributed, index-addressable container of doubles whose length
// equals the tet node count. The filter core only ever needs three
// operations on it — length, get, set — so it is modeled as a narrow
// interface plus an in-process slice-backed reference implementation for
// tests. A real distributed implementation is out of scope for this core.
package pvector

// Vector is the capability interface the AM filter core consumes. All
// indices are local to one process; any distribution is external to the
// core.
type Vector interface {
	// Len returns the total number of elements.
	Len() int
	// Get returns the value at local index i.
	Get(i int) float64
	// Set writes value at local index i.
	Set(i int, value float64)
}

// Dense is a slice-backed Vector, the reference in-process implementation.
type Dense struct {
	data []float64
}

// NewDense wraps data as a Vector. The slice is not copied; callers should
// not mutate it outside of the returned Vector's Set.
func NewDense(data []float64) *Dense {
	return &Dense{data: data}
}

// Zeros returns a new Dense of length n, all zero.
func Zeros(n int) *Dense {
	return &Dense{data: make([]float64, n)}
}

// Len implements Vector.
func (d *Dense) Len() int { return len(d.data) }

// Get implements Vector.
func (d *Dense) Get(i int) float64 { return d.data[i] }

// Set implements Vector.
func (d *Dense) Set(i int, value float64) { d.data[i] = value }

// Slice returns the backing slice (no copy).
func (d *Dense) Slice() []float64 { return d.data }
