package julia

import "testing"

func TestEscapeTimeDefaultJulia(t *testing.T) {
	tests := []struct {
		initial complex128
		want    int
	}{
		{complex(-1, 1), 1},
		{complex(0, 1), 5},
		{complex(1, 1), 2},
		{complex(-1, 0), 3},
		{complex(0, 0), 112},
		{complex(1, 0), 3},
		{complex(-1, -1), 2},
		{complex(0, -1), 5},
		{complex(1, -1), 1},
	}

	for _, tt := range tests {
		got := EscapeTime(tt.initial, DefaultJulia, 2.0, 256)
		if got != tt.want {
			t.Errorf("EscapeTime(%v) = %d, want %d", tt.initial, got, tt.want)
		}
	}
}

func TestEscapeTimeBound(t *testing.T) {
	identity := func(z complex128) complex128 { return z }

	for _, bound := range []int{0, 1, 255, 10000} {
		if got := EscapeTime(0, identity, 2.0, bound); got != bound {
			t.Errorf("identity with bound %d returned %d", bound, got)
		}
	}
}

func TestEscapeTimeAlreadyOutside(t *testing.T) {
	calls := 0
	step := func(z complex128) complex128 {
		calls++
		return z
	}

	if got := EscapeTime(complex(3, 0), step, 2.0, 255); got != 0 {
		t.Errorf("EscapeTime outside threshold = %d, want 0", got)
	}
	if calls != 0 {
		t.Errorf("step called %d times for a value already outside the threshold", calls)
	}
}

// A point on the diagonal escapes the circle before it would escape the square.
func TestEscapeTimeUsesSquaredMagnitude(t *testing.T) {
	identity := func(z complex128) complex128 { return z }

	if got := EscapeTime(complex(1.5, 1.5), identity, 2.0, 10); got != 0 {
		t.Errorf("(1.5, 1.5) should be outside radius 2, got %d iterations", got)
	}
}

func TestNewJuliaMatchesDefault(t *testing.T) {
	step := NewJulia(complex(-0.221, -0.713))

	for _, z := range []complex128{0, complex(0.3, -0.2), complex(-1, 1), complex(1e-3, 7)} {
		if got, want := step(z), DefaultJulia(z); got != want {
			t.Errorf("NewJulia(c)(%v) = %v, DefaultJulia = %v", z, got, want)
		}
	}
}

func BenchmarkEscapeTimeOrigin(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		EscapeTime(0, DefaultJulia, 2.0, 255)
	}
}
