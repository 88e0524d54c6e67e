package compute

import (
	"math/big"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/bounded"
)

func settingsFor(b mandel.Backend, w, h uint32, limit uint64) Settings {
	return NewSettings(-0.5, 0, 1.75, w, h, b, mandel.BoundsSettings{Limit: limit, Precision: 53})
}

// reference is a plain escape-time loop written independently of the
// bounded package.
func reference(cr, ci float64, limit uint64) mandel.Bound {
	var zr, zi float64
	for n := range limit {
		zr, zi = float64(zr*zr)-float64(zi*zi)+cr, float64(2*zr*zi)+ci
		if float64(zr*zr)+float64(zi*zi) >= 4 {
			return mandel.Unbounded(n)
		}
	}
	return mandel.Bounded()
}

func TestScenarioDouble(t *testing.T) {
	set, err := Set(nil, nil, settingsFor(mandel.Double, 4, 2, 50))
	require.NoError(t, err)

	w, h := set.Size()
	require.EqualValues(t, 4, w)
	require.EqualValues(t, 2, h)

	// aspect 2: x from -2.25 in steps of 0.875, y from -0.875 in steps of 0.875
	xs := []float64{-2.25, -1.375, -0.5, 0.375}
	ys := []float64{-0.875, 0}
	for row, y := range ys {
		for col, x := range xs {
			assert.Equal(t, reference(x, y, 50), set.At(uint32(col), uint32(row)), "(%d, %d)", col, row)
		}
	}
	assert.Equal(t, mandel.Unbounded(0), set.At(0, 0))
	assert.Equal(t, mandel.Bounded(), set.At(2, 1))
}

func TestCoordinateOrientation(t *testing.T) {
	for _, b := range []mandel.Backend{mandel.Double, mandel.Precision} {
		s := settingsFor(b, 4, 2, 50)
		x, y := Coordinate(s, 0, 0)
		assert.Equal(t, "-2.25", x.Text('g', 10), b)
		assert.Equal(t, "-0.875", y.Text('g', 10), b)

		_, y1 := Coordinate(s, 0, 1)
		assert.Equal(t, 1, y1.Cmp(y), "row 1 lies above row 0 in the plane")
	}
}

func TestLimitZero(t *testing.T) {
	pool := NewPool(3)
	defer pool.Close()
	for _, b := range mandel.Backends() {
		set, err := Set(pool, nil, settingsFor(b, 16, 9, 0))
		require.NoError(t, err)
		for i, v := range set.All() {
			assert.True(t, v.IsBounded(), "%s pixel %d", b, i)
		}
	}
}

func TestSequentialMatchesParallel(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()
	for _, b := range mandel.Backends() {
		s := settingsFor(b, 37, 23, 80)
		seq, err := Set(nil, nil, s)
		require.NoError(t, err)
		par, err := Set(pool, nil, s)
		require.NoError(t, err)
		assert.True(t, seq.Equal(par), b)
	}
}

func TestBackendsAgree(t *testing.T) {
	double, err := Set(nil, nil, settingsFor(mandel.Double, 64, 36, 120))
	require.NoError(t, err)
	for _, b := range []mandel.Backend{mandel.SimdF64x4, mandel.Precision} {
		set, err := Set(nil, nil, settingsFor(b, 64, 36, 120))
		require.NoError(t, err)
		assert.True(t, double.Equal(set), b)
	}

	single, err := Set(nil, nil, settingsFor(mandel.Single, 64, 36, 120))
	require.NoError(t, err)
	f32x8, err := Set(nil, nil, settingsFor(mandel.SimdF32x8, 64, 36, 120))
	require.NoError(t, err)
	assert.True(t, single.Equal(f32x8))
}

// Widths that are not a multiple of the lane count still give the scalar
// result in every column.
func TestPartialBatch(t *testing.T) {
	for _, w := range []uint32{1, 3, 5, 13} {
		double, err := Set(nil, nil, settingsFor(mandel.Double, w, 3, 60))
		require.NoError(t, err)
		vec, err := Set(nil, nil, settingsFor(mandel.SimdF64x4, w, 3, 60))
		require.NoError(t, err)
		assert.True(t, double.Equal(vec), "width %d", w)
	}
}

func TestDeepZoomPrecision(t *testing.T) {
	bounds := mandel.BoundsSettings{Limit: 10, Precision: 256}
	s, err := ParseSettings("-0.75", "0.1", "1e-30", 8, 2, mandel.Precision, bounds)
	require.NoError(t, err)

	x0, _ := Coordinate(s, 0, 0)
	x1, _ := Coordinate(s, 1, 0)
	assert.Equal(t, 1, x1.Cmp(x0), "adjacent columns stay distinct at 256 bits")

	d := settingsFor(mandel.Double, 8, 2, 10)
	d.X, d.Y, d.Scale = s.X, s.Y, s.Scale
	f0, _ := Coordinate(d, 0, 0)
	f1, _ := Coordinate(d, 1, 0)
	assert.Equal(t, 0, f1.Cmp(f0), "float64 cannot resolve the step")
}

func collect(t *testing.T, mb *Mailbox) []mandel.ComputeEvent {
	t.Helper()
	var events []mandel.ComputeEvent
	for ev := range mb.C() {
		events = append(events, ev)
	}
	return events
}

func checkLifecycle(t *testing.T, events []mandel.ComputeEvent, height uint32) []uint32 {
	t.Helper()
	require.Len(t, events, int(height)+2)
	assert.Equal(t, mandel.EventStart, events[0].Kind)
	assert.Equal(t, mandel.EventEnd, events[len(events)-1].Kind)

	var rows []uint32
	for i, ev := range events[1 : len(events)-1] {
		require.Equal(t, mandel.EventProgress, ev.Kind)
		assert.Equal(t, height, ev.Total)
		assert.EqualValues(t, i+1, ev.Done)
		rows = append(rows, ev.Row)
	}
	return rows
}

func TestProgressSequential(t *testing.T) {
	mb := NewMailbox()
	_, err := Set(nil, mb, settingsFor(mandel.Double, 10, 12, 20))
	require.NoError(t, err)
	mb.Close()

	rows := checkLifecycle(t, collect(t, mb), 12)
	assert.True(t, slices.IsSorted(rows))
	assert.EqualValues(t, 0, rows[0])
	assert.EqualValues(t, 11, rows[11])
}

func TestProgressParallel(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	mb := NewMailbox()
	_, err := Set(pool, mb, settingsFor(mandel.SimdF64x4, 16, 30, 50))
	require.NoError(t, err)
	mb.Close()

	rows := checkLifecycle(t, collect(t, mb), 30)
	slices.Sort(rows)
	for i, r := range rows {
		assert.EqualValues(t, i, r)
	}
}

func TestClosedPool(t *testing.T) {
	pool := NewPool(2)
	pool.Close()

	mb := NewMailbox()
	set, err := Set(pool, mb, settingsFor(mandel.Double, 4, 4, 10))
	mb.Close()
	require.ErrorIs(t, err, ErrPoolClosed)
	assert.False(t, set.Ready())

	events := collect(t, mb)
	require.Len(t, events, 1)
	assert.Equal(t, mandel.EventStart, events[0].Kind)
}

type panicky struct{}

func (panicky) BatchWidth() int { return 1 }

func (panicky) CheckBounded(xs, ys []float64, _ mandel.BoundsSettings, out []mandel.Bound) {
	if ys[0] > 0 {
		panic("broken backend")
	}
	out[0] = mandel.Bounded()
}

var _ bounded.Checker[float64] = panicky{}

func TestRowPanicAborts(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	s := settingsFor(mandel.Double, 4, 6, 10)
	set, err := run[float64](pool, discard{}, s, newFloatPlane(s), panicky{})
	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.False(t, set.Ready())

	// the pool survives and serves the next computation
	_, err = Set(pool, nil, s)
	assert.NoError(t, err)
}

func TestUnknownBackend(t *testing.T) {
	_, err := Set(nil, nil, settingsFor(mandel.Backend(11), 2, 2, 1))
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestJob(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()
	s := settingsFor(mandel.Double, 20, 10, 40)

	want, err := Set(nil, nil, s)
	require.NoError(t, err)

	job := Start(pool, nil, s)
	<-job.Done()
	got, err := job.Wait()
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestEmptySet(t *testing.T) {
	set := EmptySet(64, 48)
	w, h := set.Size()
	assert.EqualValues(t, 64, w)
	assert.EqualValues(t, 48, h)
	assert.False(t, set.Ready())
	for range set.All() {
		t.Fatal("empty set yields values")
	}
	assert.False(t, set.Equal(NewComputedSet(64, 48, make([]mandel.Bound, 64*48))))
}

func TestSettings(t *testing.T) {
	bounds := mandel.BoundsSettings{Limit: 10, Precision: 100}
	s, err := ParseSettings("-0.5", "0", "1.75", 4, 4, mandel.Precision, bounds)
	require.NoError(t, err)
	assert.NoError(t, s.Validate())
	assert.EqualValues(t, 100, s.X.Prec())

	_, err = ParseSettings("abc", "0", "1", 4, 4, mandel.Double, bounds)
	assert.Error(t, err)

	s.Width = 0
	assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)

	s = NewSettings(0, 0, -1, 4, 4, mandel.Double, bounds)
	assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)

	assert.ErrorIs(t, Settings{Width: 1, Height: 1}.Validate(), ErrInvalidSettings)
}

func TestZeroScale(t *testing.T) {
	s := NewSettings(-1, 0, 0, 5, 3, mandel.Double, mandel.BoundsSettings{Limit: 30})
	set, err := Set(nil, nil, s)
	require.NoError(t, err)
	for _, b := range set.All() {
		assert.Equal(t, mandel.Bounded(), b)
	}
	x, y := Coordinate(s, 4, 2)
	assert.Equal(t, 0, x.Cmp(big.NewFloat(-1)))
	assert.Equal(t, 0, y.Sign())
}
