package mandel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBound(t *testing.T) {
	assert.True(t, Bounded().IsBounded())
	assert.Equal(t, Bound{}, Bounded())

	n, ok := Unbounded(7).Escape()
	assert.True(t, ok)
	assert.EqualValues(t, 7, n)
	assert.False(t, Unbounded(0).IsBounded())
	assert.NotEqual(t, Bounded(), Unbounded(0))

	assert.Equal(t, "Bounded", Bounded().String())
	assert.Equal(t, "Unbounded(3)", Unbounded(3).String())
}

func TestBackendInt(t *testing.T) {
	for i, b := range Backends() {
		assert.Equal(t, i, b.Int())
		assert.Equal(t, b, BackendFromInt(i))
	}
	assert.Equal(t, Double, BackendFromInt(-1))
	assert.Equal(t, Double, BackendFromInt(42))
}

func TestBackendText(t *testing.T) {
	var b Backend
	require.NoError(t, b.UnmarshalText([]byte("simd-f32x8")))
	assert.Equal(t, SimdF32x8, b)

	text, err := Precision.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "precision", string(text))

	assert.Error(t, b.Set("quad"))
	_, err = Backend(9).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Backend(9)", Backend(9).String())
}

func TestRegionViewport(t *testing.T) {
	x, y, scale := Region{Xmin: -1, Xmax: 1, Ymin: 0, Ymax: 0.5}.Viewport()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.25, y)
	assert.Equal(t, 0.5, scale)

	for name, r := range Landmarks {
		assert.Less(t, r.Xmin, r.Xmax, name)
		assert.Less(t, r.Ymin, r.Ymax, name)
	}
}

func TestEventFraction(t *testing.T) {
	assert.Equal(t, 0.0, StartEvent().Fraction())
	assert.Equal(t, 0.5, ProgressEvent(7, 2, 4).Fraction())
	assert.Equal(t, 1.0, EndEvent().Fraction())
	assert.Equal(t, "Progress(7, 4) done=2", ProgressEvent(7, 2, 4).String())
}
