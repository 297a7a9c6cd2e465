package vec3

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArithmetic(t *testing.T) {
	a := New(1, 2, 3)
	b := New(4, 5, 6)

	assert.Equal(t, New(5, 7, 9), a.Add(b))
	assert.Equal(t, New(-3, -3, -3), a.Sub(b))
	assert.Equal(t, New(2, 4, 6), a.Scale(2))
	assert.Equal(t, 32.0, a.Dot(b))
}

func TestCross(t *testing.T) {
	x := New(1, 0, 0)
	y := New(0, 1, 0)
	z := New(0, 0, 1)

	assert.True(t, z.Equal(x.Cross(y)))
	assert.True(t, x.Equal(y.Cross(z)))
	assert.True(t, y.Equal(z.Cross(x)))
}

func TestLengthAndNormalize(t *testing.T) {
	v := New(3, 4, 0)
	assert.Equal(t, 5.0, v.Length())

	n, err := v.Normalize()
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, n.Length(), 1e-15)
	assert.InDelta(t, 0.6, n.X, 1e-15)
	assert.InDelta(t, 0.8, n.Y, 1e-15)
}

func TestNormalizeZeroLength(t *testing.T) {
	_, err := New(0, 0, 0).Normalize()
	assert.True(t, errors.Is(err, ErrZeroLength))
}

func TestEqual(t *testing.T) {
	assert.True(t, New(1, 2, 3).Equal(New(1, 2, 3)))
	assert.False(t, New(1, 2, 3).Equal(New(1, 2, 3.0001)))
}

func TestMinMax(t *testing.T) {
	pts := []Vec{New(1, -2, 3), New(-1, 5, 0), New(4, 4, 4)}
	min, max := MinMax(pts)
	assert.Equal(t, New(-1, -2, 0), min)
	assert.Equal(t, New(4, 5, 4), max)
}

func TestMinMaxEmpty(t *testing.T) {
	min, max := MinMax(nil)
	assert.Equal(t, Vec{}, min)
	assert.Equal(t, Vec{}, max)
}
