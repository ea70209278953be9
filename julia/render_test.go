package julia

import (
	"bytes"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
)

func defaultOptions(t testing.TB, width int, height int) Options {
	mapper, err := NewStretchMapper(width, height, DefaultViewport)
	if err != nil {
		t.Fatal(err)
	}
	return Options{
		Width:     width,
		Height:    height,
		Step:      DefaultJulia,
		Mapper:    mapper,
		Threshold: 2.0,
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	o := defaultOptions(t, 200, 200)

	want, err := SequentialImage(o)
	if err != nil {
		t.Fatal(err)
	}

	for _, workers := range []int{1, 2, 3, 4, 8, 64, 500} {
		o.Workers = workers
		got, err := ParallelImage(o)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if !bytes.Equal(got.Pix, want.Pix) {
			t.Errorf("workers=%d: parallel image differs from sequential image", workers)
		}
	}
}

func TestParallelMatchesSequentialShapes(t *testing.T) {
	tests := []struct {
		width     int
		height    int
		threshold float64
		step      Step
	}{
		{1, 1, 2.0, DefaultJulia},
		{1, 37, 2.0, DefaultJulia},
		{53, 1, 1.5, DefaultJulia},
		{64, 17, 0.5, NewJulia(complex(-0.8, 0.156))},
		{31, 90, 2.5, NewJulia(complex(0.285, 0.01))},
	}

	for _, tt := range tests {
		mapper, err := NewRectilinearMapper(tt.width, tt.height, DefaultViewport)
		if err != nil {
			t.Fatal(err)
		}
		o := Options{Width: tt.width, Height: tt.height, Step: tt.step, Mapper: mapper, Threshold: tt.threshold, Workers: 4}

		want, err := SequentialImage(o)
		if err != nil {
			t.Fatal(err)
		}
		got, err := ParallelImage(o)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got.Pix, want.Pix) {
			t.Errorf("%dx%d threshold %f: parallel image differs from sequential image", tt.width, tt.height, tt.threshold)
		}
	}
}

func TestImageLayout(t *testing.T) {
	o := defaultOptions(t, 7, 5)
	img, err := ParallelImage(o)
	if err != nil {
		t.Fatal(err)
	}

	if img.Stride != 7 || len(img.Pix) != 35 {
		t.Fatalf("image stride %d, %d pixels; want 7 and 35", img.Stride, len(img.Pix))
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			want := uint8(EscapeTime(o.Mapper(x, y), DefaultJulia, 2.0, DefaultBound))
			if got := img.GrayAt(x, y).Y; got != want {
				t.Errorf("pixel (%d, %d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestBoundClampsToByte(t *testing.T) {
	identity := func(z complex128) complex128 { return z }
	mapper := func(x int, y int) complex128 { return 0 }

	for _, bound := range []int{10, 255, 1000} {
		o := Options{Width: 3, Height: 3, Step: identity, Mapper: mapper, Threshold: 2.0, Bound: bound}
		img, err := ParallelImage(o)
		if err != nil {
			t.Fatal(err)
		}

		want := uint8(bound)
		if bound > 255 {
			want = 255
		}
		for _, p := range img.Pix {
			if p != want {
				t.Fatalf("bound %d: pixel %d, want %d", bound, p, want)
			}
		}
	}
}

func TestRenderRejectsBadOptions(t *testing.T) {
	good := defaultOptions(t, 4, 4)

	tests := []struct {
		name   string
		modify func(o *Options)
		want   error
	}{
		{"zero width", func(o *Options) { o.Width = 0 }, ErrInvalidDimension},
		{"zero height", func(o *Options) { o.Height = 0 }, ErrInvalidDimension},
		{"no step", func(o *Options) { o.Step = nil }, ErrMissingStep},
		{"no mapper", func(o *Options) { o.Mapper = nil }, ErrMissingMapper},
		{"zero threshold", func(o *Options) { o.Threshold = 0 }, ErrInvalidThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := good
			tt.modify(&o)
			if _, err := ParallelImage(o); !errors.Is(err, tt.want) {
				t.Errorf("ParallelImage error = %v, want %v", err, tt.want)
			}
			if _, err := SequentialImage(o); !errors.Is(err, tt.want) {
				t.Errorf("SequentialImage error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWorkerPanicFailsRender(t *testing.T) {
	o := defaultOptions(t, 50, 50)
	mapper := o.Mapper
	o.Mapper = func(x int, y int) complex128 {
		if y == 17 && x == 3 {
			panic("bad pixel")
		}
		return mapper(x, y)
	}
	o.Workers = 4

	img, err := ParallelImage(o)
	if !errors.Is(err, ErrWorkerPanic) {
		t.Fatalf("ParallelImage error = %v, want ErrWorkerPanic", err)
	}
	if img != nil {
		t.Error("ParallelImage returned an image alongside a worker panic")
	}
	if !strings.Contains(err.Error(), "of 50 rows") || !strings.Contains(err.Error(), "bad pixel") {
		t.Errorf("panic error %q does not say how far the render got", err)
	}
}

func TestWorkerPanicStopsOtherWorkers(t *testing.T) {
	var rows atomic.Int64
	o := Options{
		Width:     1,
		Height:    10000,
		Step:      DefaultJulia,
		Threshold: 2.0,
		Workers:   2,
		Mapper: func(x int, y int) complex128 {
			rows.Add(1)
			if y == 0 {
				panic("first row")
			}
			return 0
		},
	}

	if _, err := ParallelImage(o); !errors.Is(err, ErrWorkerPanic) {
		t.Fatalf("ParallelImage error = %v, want ErrWorkerPanic", err)
	}
	if n := rows.Load(); n == 10000 {
		t.Errorf("every row was rendered after a worker panicked")
	}
}

func BenchmarkSequentialImage(b *testing.B) {
	o := defaultOptions(b, 200, 200)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := SequentialImage(o); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParallelImage(b *testing.B) {
	o := defaultOptions(b, 200, 200)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ParallelImage(o); err != nil {
			b.Fatal(err)
		}
	}
}
