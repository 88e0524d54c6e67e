package mandel

import "fmt"

// Backend selects the numeric representation used by the bounds checker.
type Backend int

const (
	Single Backend = iota
	Double
	SimdF32x8
	SimdF64x4
	Precision
)

var backendNames = [...]string{
	Single:    "single",
	Double:    "double",
	SimdF32x8: "simd-f32x8",
	SimdF64x4: "simd-f64x4",
	Precision: "precision",
}

// Backends lists every backend in selection order.
func Backends() []Backend {
	return []Backend{Single, Double, SimdF32x8, SimdF64x4, Precision}
}

// Int returns the stable integer used by selection lists.
func (b Backend) Int() int { return int(b) }

// BackendFromInt maps a selection index back to a backend.
// Unknown values select Double.
func BackendFromInt(v int) Backend {
	if v < 0 || v >= len(backendNames) {
		return Double
	}
	return Backend(v)
}

func (b Backend) String() string {
	if b < 0 || int(b) >= len(backendNames) {
		return fmt.Sprintf("Backend(%d)", int(b))
	}
	return backendNames[b]
}

func (b Backend) MarshalText() ([]byte, error) {
	if b < 0 || int(b) >= len(backendNames) {
		return nil, fmt.Errorf("unknown backend %d", int(b))
	}
	return []byte(backendNames[b]), nil
}

func (b *Backend) UnmarshalText(text []byte) error {
	for i, name := range backendNames {
		if name == string(text) {
			*b = Backend(i)
			return nil
		}
	}
	return fmt.Errorf("unknown backend %q", text)
}

// Set and Type let a Backend be used directly as a command line flag.
func (b *Backend) Set(s string) error { return b.UnmarshalText([]byte(s)) }

func (b *Backend) Type() string { return "backend" }
