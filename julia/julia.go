package julia

// Step is one application of the function whose Julia set is being drawn. It is called
// from several goroutines at once so it must not capture mutable state.
type Step func(z complex128) complex128

// DefaultJulia was chosen for its looks: z*z - 0.221 - 0.713i
func DefaultJulia(z complex128) complex128 {
	re, im := square(z)
	return complex(re-0.221, im-0.713)
}

// NewJulia returns the step z*z + c.
func NewJulia(c complex128) Step {
	cr, ci := real(c), imag(c)
	return func(z complex128) complex128 {
		re, im := square(z)
		return complex(re+cr, im+ci)
	}
}

// The explicit conversions keep the compiler from fusing the multiply and add, so every
// architecture produces the same iteration counts.
func square(z complex128) (float64, float64) {
	re, im := real(z), imag(z)
	return float64(re*re) - float64(im*im), float64(re*im) + float64(im*re)
}

// EscapeTime counts how many times step can be applied, starting from initial, before the
// value leaves the circle of radius threshold. The count never exceeds bound.
// https://en.wikipedia.org/wiki/Plotting_algorithms_for_the_Mandelbrot_set#Escape_time_algorithm
func EscapeTime(initial complex128, step Step, threshold float64, bound int) int {
	limit := threshold * threshold
	value := initial
	count := 0
	for count < bound {
		re, im := real(value), imag(value)
		if float64(re*re)+float64(im*im) >= limit {
			break
		}
		count++
		value = step(value)
	}
	return count
}
