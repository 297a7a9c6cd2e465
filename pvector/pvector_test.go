package pvector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDense(t *testing.T) {
	var v Vector = NewDense([]float64{1, 2, 3})
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 2.0, v.Get(1))

	v.Set(1, 9)
	assert.Equal(t, 9.0, v.Get(1))
}

func TestZeros(t *testing.T) {
	v := Zeros(4)
	assert.Equal(t, 4, v.Len())
	for i := 0; i < v.Len(); i++ {
		assert.Equal(t, 0.0, v.Get(i))
	}
}
