package amerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	err := Domainf("tet %d is degenerate", 3)
	assert.EqualError(t, err, "tet 3 is degenerate")
	assert.True(t, IsDomain(err))
	assert.False(t, IsOutOfRange(err))

	var de *DomainError
	assert.True(t, errors.As(err, &de))
}

func TestOutOfRangeError(t *testing.T) {
	err := OutOfRangef("node index %d out of range [0,%d)", 7, 4)
	assert.EqualError(t, err, "node index 7 out of range [0,4)")
	assert.True(t, IsOutOfRange(err))
	assert.False(t, IsDomain(err))

	var oe *OutOfRangeError
	assert.True(t, errors.As(err, &oe))
}
