package sphere

import (
	"fmt"

	"github.com/mrjoshuak/go-spherical/internal/wire"
)

// SampleEncodedSize is the number of bytes one Sample occupies in the
// binary cache format: one byte for the face index and two big-endian
// bytes for each face coordinate.
const SampleEncodedSize = 5

// EncodedSize returns the byte length of the encoded sampling index for
// these sizing parameters.
func (s Sizing) EncodedSize() int {
	return s.PixelCount() * s.SamplesPerPixel() * SampleEncodedSize
}

// Encode converts the sampling index to its binary cache form: every
// sample in table order, with no delimiters and no header. The sizing
// parameters are not stored; Decode receives them from the caller.
func (index *SamplingIndex) Encode() []byte {
	n := 0
	for _, samples := range index.Pixels {
		n += len(samples)
	}
	w := wire.NewWriter(n * SampleEncodedSize)
	for _, samples := range index.Pixels {
		for _, s := range samples {
			w.WriteUint8(s.Face)
			w.WriteUint16(s.X)
			w.WriteUint16(s.Y)
		}
	}
	return w.Bytes()
}

// DecodeSamplingIndex converts the binary form produced by Encode back into
// a sampling index, grouping every SubWidth*SubHeight samples into one
// output pixel. The data length must match the sizing parameters exactly;
// a mismatch is reported as ErrIndexSize and means the cached data does not
// belong to these parameters.
func DecodeSamplingIndex(sizing Sizing, data []byte) (*SamplingIndex, error) {
	if err := sizing.Validate(); err != nil {
		return nil, err
	}
	if len(data) != sizing.EncodedSize() {
		return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrIndexSize, len(data), sizing.EncodedSize())
	}

	nSub := sizing.SamplesPerPixel()
	pixels := make([][]Sample, sizing.PixelCount())
	r := wire.NewReader(data)

	for i := range pixels {
		samples := make([]Sample, nSub)
		for j := range samples {
			// Lengths were checked above; the reads cannot fail.
			face, _ := r.ReadUint8()
			x, _ := r.ReadUint16()
			y, _ := r.ReadUint16()
			samples[j] = Sample{Face: face, X: x, Y: y}
		}
		pixels[i] = samples
	}

	return &SamplingIndex{Sizing: sizing, Pixels: pixels}, nil
}
