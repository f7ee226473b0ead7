package sphere

import (
	"reflect"
	"testing"
)

func TestSizingValidate(t *testing.T) {
	good := Sizing{Width: 4, Height: 2, FaceSize: 8, SubWidth: 3, SubHeight: 3}
	if err := good.Validate(); err != nil {
		t.Fatalf("Validate(%+v) = %v, want nil", good, err)
	}

	tests := []struct {
		name   string
		sizing Sizing
	}{
		{"zero width", Sizing{Width: 0, Height: 2, FaceSize: 8, SubWidth: 3, SubHeight: 3}},
		{"negative height", Sizing{Width: 4, Height: -1, FaceSize: 8, SubWidth: 3, SubHeight: 3}},
		{"zero face size", Sizing{Width: 4, Height: 2, FaceSize: 0, SubWidth: 3, SubHeight: 3}},
		{"zero sub width", Sizing{Width: 4, Height: 2, FaceSize: 8, SubWidth: 0, SubHeight: 3}},
		{"zero sub height", Sizing{Width: 4, Height: 2, FaceSize: 8, SubWidth: 3, SubHeight: 0}},
	}
	for _, tt := range tests {
		if err := tt.sizing.Validate(); err == nil {
			t.Errorf("%s: Validate(%+v) = nil, want error", tt.name, tt.sizing)
		}
	}
}

func TestBuildSamplingIndexRejectsBadInput(t *testing.T) {
	sizing := Sizing{Width: 4, Height: 2, FaceSize: 8, SubWidth: 2, SubHeight: 2}

	if _, err := BuildSamplingIndex(Sizing{}, Equirectangular); err == nil {
		t.Error("BuildSamplingIndex with zero sizing: want error")
	}
	if _, err := BuildSamplingIndex(sizing, Projection(7)); err == nil {
		t.Error("BuildSamplingIndex with unknown projection: want error")
	}
}

func TestBuildSamplingIndexShape(t *testing.T) {
	sizing := Sizing{Width: 16, Height: 8, FaceSize: 9, SubWidth: 3, SubHeight: 3}

	for _, proj := range []Projection{Equirectangular, Mercator} {
		index, err := BuildSamplingIndex(sizing, proj)
		if err != nil {
			t.Fatalf("%s: BuildSamplingIndex: %v", proj, err)
		}
		if len(index.Pixels) != sizing.PixelCount() {
			t.Fatalf("%s: got %d pixels, want %d", proj, len(index.Pixels), sizing.PixelCount())
		}
		for i, samples := range index.Pixels {
			if len(samples) != sizing.SamplesPerPixel() {
				t.Fatalf("%s: pixel %d has %d samples, want %d",
					proj, i, len(samples), sizing.SamplesPerPixel())
			}
			for _, s := range samples {
				if s.Face >= NumFaces {
					t.Fatalf("%s: pixel %d references face %d", proj, i, s.Face)
				}
				if int(s.X) >= sizing.FaceSize || int(s.Y) >= sizing.FaceSize {
					t.Fatalf("%s: pixel %d sample (%d, %d) outside face of size %d",
						proj, i, s.X, s.Y, sizing.FaceSize)
				}
			}
		}
	}
}

func TestBuildSamplingIndexDeterministic(t *testing.T) {
	sizing := Sizing{Width: 24, Height: 12, FaceSize: 20, SubWidth: 3, SubHeight: 3}

	a, err := BuildSamplingIndex(sizing, Equirectangular)
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildSamplingIndex(sizing, Equirectangular)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two builds with identical parameters differ")
	}
}

func TestBuildSamplingIndexDeterministicWhenParallel(t *testing.T) {
	// Forcing parallel execution must not change the table: each row's
	// samples depend only on its own geometry, never on the scan order.
	sizing := Sizing{Width: 32, Height: 16, FaceSize: 25, SubWidth: 2, SubHeight: 2}

	sequential, err := BuildSamplingIndex(sizing, Mercator)
	if err != nil {
		t.Fatal(err)
	}

	old := GetParallelConfig()
	defer SetParallelConfig(old)
	SetParallelConfig(ParallelConfig{NumWorkers: 4, GrainSize: 1})

	parallel, err := BuildSamplingIndex(sizing, Mercator)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sequential, parallel) {
		t.Error("parallel build differs from sequential build")
	}
}

func TestBuildSamplingIndexProjectionsDiffer(t *testing.T) {
	sizing := Sizing{Width: 24, Height: 12, FaceSize: 20, SubWidth: 2, SubHeight: 2}

	eqrc, err := BuildSamplingIndex(sizing, Equirectangular)
	if err != nil {
		t.Fatal(err)
	}
	merc, err := BuildSamplingIndex(sizing, Mercator)
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(eqrc.Pixels, merc.Pixels) {
		t.Error("equirectangular and Mercator tables are identical")
	}
}

func TestBuildSamplingIndexPolarPixels(t *testing.T) {
	// With the equirectangular projection the top output row looks almost
	// straight down (-Z) and the bottom row almost straight up (+Z).
	sizing := Sizing{Width: 8, Height: 8, FaceSize: 16, SubWidth: 3, SubHeight: 3}
	index, err := BuildSamplingIndex(sizing, Equirectangular)
	if err != nil {
		t.Fatal(err)
	}

	for x := 0; x < sizing.Width; x++ {
		for _, s := range index.Pixels[x] {
			if s.Face != FaceNegZ {
				t.Fatalf("top row pixel %d references face %s, want zNeg", x, FaceName(int(s.Face)))
			}
		}
		for _, s := range index.Pixels[(sizing.Height-1)*sizing.Width+x] {
			if s.Face != FacePosZ {
				t.Fatalf("bottom row pixel %d references face %s, want zPos", x, FaceName(int(s.Face)))
			}
		}
	}
}
