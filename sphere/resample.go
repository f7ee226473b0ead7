package sphere

import "fmt"

// Resample produces the final panoramic image by averaging, for each output
// pixel, the cube-face pixels listed in the sampling index. faces must hold
// exactly six buffers in the fixed face order (see the Face constants), each
// FaceSize by FaceSize pixels as given by the index's sizing parameters.
//
// The index and the face buffers are only read; every call returns a fresh
// image. Output rows are computed in parallel.
func Resample(index *SamplingIndex, faces []*FaceBuffer) (*Image, error) {
	sizing := index.Sizing
	if len(faces) != NumFaces {
		return nil, fmt.Errorf("sphere: resample needs %d face buffers, got %d", NumFaces, len(faces))
	}
	for i, f := range faces {
		if f == nil {
			return nil, fmt.Errorf("sphere: face %s (%d) is nil", FaceName(i), i)
		}
		if f.Size != sizing.FaceSize {
			return nil, fmt.Errorf("sphere: face %s (%d) has size %d, want %d",
				FaceName(i), i, f.Size, sizing.FaceSize)
		}
		if len(f.Pixels) != f.Size*f.Size {
			return nil, fmt.Errorf("sphere: face %s (%d) has %d pixels, want %d",
				FaceName(i), i, len(f.Pixels), f.Size*f.Size)
		}
	}
	if len(index.Pixels) != sizing.PixelCount() {
		return nil, fmt.Errorf("sphere: sampling index has %d pixels, want %d",
			len(index.Pixels), sizing.PixelCount())
	}

	result := NewImage(sizing.Width, sizing.Height)

	ParallelFor(sizing.Height, func(y int) {
		row := index.Pixels[y*sizing.Width : (y+1)*sizing.Width]
		for x, samples := range row {
			var sum RGBA
			for _, s := range samples {
				face := faces[s.Face]
				sum = sum.Add(face.Pixels[int(s.Y)*face.Size+int(s.X)])
			}
			if n := len(samples); n > 0 {
				sum = sum.Scale(1 / float32(n))
			} else {
				sum.A = 1
			}
			result.Pixels[y*sizing.Width+x] = sum
		}
	})

	return result, nil
}
