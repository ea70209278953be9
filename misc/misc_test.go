package misc

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestFixImagePath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		in   string
		want string
	}{
		{filepath.Join(dir, "out.png"), filepath.Join(dir, "out.png")},
		{filepath.Join(dir, "out.PNG"), filepath.Join(dir, "out.PNG")},
		{filepath.Join(dir, "out.jpg"), filepath.Join(dir, "out.png")},
		{filepath.Join(dir, "out"), filepath.Join(dir, "out.png")},
		{filepath.Join(dir, ".hidden"), filepath.Join(dir, ".hidden.png")},
		{filepath.Join(dir, "frames.v2.jpeg"), filepath.Join(dir, "frames.v2.png")},
		{dir, filepath.Join(dir, "julia_set.png")},
		{dir + "/", filepath.Join(dir, "julia_set.png")},
	}

	for _, tt := range tests {
		got, err := FixImagePath(tt.in, "julia_set.png")
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("FixImagePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFixImagePathDefault(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	got, err := FixImagePath("", "julia_set.png")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(wd, "julia_set.png"); got != want {
		t.Errorf("FixImagePath(\"\") = %q, want %q", got, want)
	}
}

func TestEnsureAndClearDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "animate", "frames")
	if err := EnsureDirectory(dir); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDirectory(dir); err != nil {
		t.Fatalf("second EnsureDirectory: %v", err)
	}

	for _, name := range []string{"a.png", "b.png"} {
		if _, err := WriteFile(filepath.Join(dir, name), []byte("x")); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "keep"), os.ModePerm); err != nil {
		t.Fatal(err)
	}

	if err := ClearDirectory(dir); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "keep" {
		t.Errorf("after ClearDirectory: %v", entries)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	type settings struct {
		Name      string
		Threshold float64
		Width     int
	}

	path := filepath.Join(t.TempDir(), "settings.json")
	in := settings{Name: "run", Threshold: 2.5, Width: 640}
	if err := SaveSettings(path, in); err != nil {
		t.Fatal(err)
	}

	var out settings
	if err := LoadSettings(path, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("loaded %+v, want %+v", out, in)
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	var out struct{}
	if err := LoadSettings(filepath.Join(t.TempDir(), "missing.json"), &out); err == nil {
		t.Error("LoadSettings of a missing file returned no error")
	}
	if err := LoadSettings("", &out); err == nil {
		t.Error("LoadSettings without a file name returned no error")
	}
}

func TestLerp(t *testing.T) {
	if got := LerpFloat64(3, 5, 0.5); got != 4 {
		t.Errorf("LerpFloat64(3, 5, 0.5) = %v", got)
	}
	if got := LerpComplex(complex(0, 2), complex(4, -2), 0.25); got != complex(1, 1) {
		t.Errorf("LerpComplex = %v", got)
	}
}

func TestResizeAndSave(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	small := Resize(img, 20, 10)
	if small.Bounds().Dx() != 20 || small.Bounds().Dy() != 10 {
		t.Fatalf("resized to %v", small.Bounds())
	}
	if same := Resize(img, 40, 20); same != image.Image(img) {
		t.Error("Resize to the same size copied the image")
	}

	path := filepath.Join(t.TempDir(), "small.png")
	if err := SavePNG(path, small); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("saved image missing or empty: %v", err)
	}
}
