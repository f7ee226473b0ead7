// Package sphere assembles six perspective cube-face renders surrounding a
// viewpoint into a single panoramic image using a standard map projection
// (equirectangular or Mercator).
//
// The expensive part of the conversion, deciding which cube-face pixel every
// output sub-sample reads from, depends only on the image dimensions and the
// projection. It is computed once into a SamplingIndex and then applied to
// the six face buffers of each animation frame by Resample.
package sphere

import (
	"errors"
	"fmt"
	"math"
)

// Cube face indices, in the fixed order used for face buffers.
const (
	// FacePosX is the face at X == 1.
	FacePosX = 0
	// FaceNegX is the face at X == -1.
	FaceNegX = 1
	// FacePosY is the face at Y == 1.
	FacePosY = 2
	// FaceNegY is the face at Y == -1.
	FaceNegY = 3
	// FacePosZ is the face at Z == 1.
	FacePosZ = 4
	// FaceNegZ is the face at Z == -1.
	FaceNegZ = 5

	// NumFaces is the number of cube faces.
	NumFaces = 6
)

// faceNames are the conventional short names for the six faces, also used
// as per-face subdirectory names by the frame tooling.
var faceNames = [NumFaces]string{"xPos", "xNeg", "yPos", "yNeg", "zPos", "zNeg"}

// FaceName returns the conventional name of a cube face ("xPos", "zNeg", ...).
func FaceName(face int) string {
	if face < 0 || face >= NumFaces {
		return "unknown"
	}
	return faceNames[face]
}

// V2d represents a 2D double-precision vector.
type V2d struct {
	X, Y float64
}

// V3d represents a 3D double-precision vector.
type V3d struct {
	X, Y, Z float64
}

// Length returns the Euclidean length of the vector.
func (v V3d) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns the vector scaled to unit length.
// The zero vector is returned unchanged.
func (v V3d) Normalized() V3d {
	l := v.Length()
	if l == 0 {
		return v
	}
	return V3d{X: v.X / l, Y: v.Y / l, Z: v.Z / l}
}

// RGBA represents an RGBA color with float32 components.
type RGBA struct {
	R, G, B, A float32
}

// Add returns the sum of two RGBA colors.
func (c RGBA) Add(other RGBA) RGBA {
	return RGBA{
		R: c.R + other.R,
		G: c.G + other.G,
		B: c.B + other.B,
		A: c.A + other.A,
	}
}

// Scale returns the RGBA color scaled by a factor.
func (c RGBA) Scale(s float32) RGBA {
	return RGBA{
		R: c.R * s,
		G: c.G * s,
		B: c.B * s,
		A: c.A * s,
	}
}

// Sizing collects the dimensions used in the conversion from six cube-face
// images to the final panoramic image.
//
// Width and Height are the pixel dimensions of the final image. FaceSize is
// the edge length of each (square) cube-face image. SubWidth and SubHeight
// are the number of sub-samples per axis used to compute each output pixel.
// All fields must be positive.
//
// A Sizing, together with a Projection, fully determines a SamplingIndex:
// two indices built from equal parameters are bit-identical.
type Sizing struct {
	Width     int
	Height    int
	FaceSize  int
	SubWidth  int
	SubHeight int
}

// Validate reports whether the sizing parameters are usable.
func (s Sizing) Validate() error {
	switch {
	case s.Width <= 0:
		return fmt.Errorf("sphere: output width must be positive, got %d", s.Width)
	case s.Height <= 0:
		return fmt.Errorf("sphere: output height must be positive, got %d", s.Height)
	case s.FaceSize <= 0:
		return fmt.Errorf("sphere: face size must be positive, got %d", s.FaceSize)
	case s.SubWidth <= 0:
		return fmt.Errorf("sphere: sub-sample width must be positive, got %d", s.SubWidth)
	case s.SubHeight <= 0:
		return fmt.Errorf("sphere: sub-sample height must be positive, got %d", s.SubHeight)
	}
	return nil
}

// PixelCount returns the number of pixels in the final image.
func (s Sizing) PixelCount() int {
	return s.Width * s.Height
}

// SamplesPerPixel returns the number of sub-samples per output pixel.
func (s Sizing) SamplesPerPixel() int {
	return s.SubWidth * s.SubHeight
}

/// FaceBuffer holds the pixels of one rendered cube face: a dense Size*Size
// array of RGBA pixels in row-major order with the origin at the top left.
type FaceBuffer struct {
	Size   int
	Pixels []RGBA
}

// NewFaceBuffer creates a face buffer with all pixels zero.
func NewFaceBuffer(size int) *FaceBuffer {
	return &FaceBuffer{
		Size:   size,
		Pixels: make([]RGBA, size*size),
	}
}

// Fill sets every pixel to c.
func (f *FaceBuffer) Fill(c RGBA) {
	for i := range f.Pixels {
		f.Pixels[i] = c
	}
}

// At returns the pixel at (x, y).
func (f *FaceBuffer) At(x, y int) RGBA {
	return f.Pixels[y*f.Size+x]
}

// Set sets the pixel at (x, y).
func (f *FaceBuffer) Set(x, y int, c RGBA) {
	f.Pixels[y*f.Size+x] = c
}

// Image holds the pixels of a panoramic image: a dense Width*Height array
// of RGBA pixels in row-major order with the origin at the top left.
type Image struct {
	Width  int
	Height int
	Pixels []RGBA
}

// NewImage creates an image with all pixels zero.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]RGBA, width*height),
	}
}

// At returns the pixel at (x, y).
func (img *Image) At(x, y int) RGBA {
	return img.Pixels[y*img.Width+x]
}

// Set sets the pixel at (x, y).
func (img *Image) Set(x, y int, c RGBA) {
	img.Pixels[y*img.Width+x] = c
}

var (
	// ErrNoIntersection is returned when a ray intersects no cube face.
	// For a well-formed unit ray this cannot happen; it indicates a
	// geometry bug and callers should treat it as fatal.
	ErrNoIntersection = errors.New("sphere: ray intersects no cube face")

	// ErrUnknownProjection is returned for a Projection value that is
	// neither Equirectangular nor Mercator.
	ErrUnknownProjection = errors.New("sphere: unknown projection")

	// ErrIndexSize is returned when an encoded sampling index does not
	// have the exact byte length implied by its sizing parameters.
	ErrIndexSize = errors.New("sphere: encoded sampling index has wrong size")
)
