package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3_Normalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Zero, Zero.Normalize())
	n := Vec3{X: 3, Z: 4}.Normalize()
	assert.InDelta(t, 1.0, n.Length(), 1e-12)
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.InDelta(t, 0.8, n.Z, 1e-12)
}

func TestVec3_MoveTowards(t *testing.T) {
	t.Parallel()

	from := Vec3{}
	to := Vec3{X: 10}

	assert.Equal(t, Vec3{X: 2}, from.MoveTowards(to, 2))
	// no overshoot
	assert.Equal(t, to, from.MoveTowards(to, 25))
	assert.Equal(t, to, to.MoveTowards(to, 1))
}

func TestVec3_Distance(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 5.0, Vec3{X: 1, Y: 1}.Distance(Vec3{X: 4, Y: 5}), 1e-12)
	assert.Equal(t, "(1.00, 2.00, 3.00)", Vec3{1, 2, 3}.String())
}
