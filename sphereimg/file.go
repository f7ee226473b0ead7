package sphereimg

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/mrjoshuak/go-jpeg2000"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/mrjoshuak/go-spherical/sphere"
)

// LoadImage reads an image file into a float RGBA buffer. The format is
// chosen by the file extension.
func LoadImage(path string) (*sphere.Image, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("sphereimg: cannot decode %s: %w", path, err)
	}

	bounds := src.Bounds()
	result := sphere.NewImage(bounds.Dx(), bounds.Dy())
	for y := 0; y < result.Height; y++ {
		for x := 0; x < result.Width; x++ {
			r, g, b, a := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			result.Set(x, y, sphere.RGBA{
				R: float32(r) / 0xffff,
				G: float32(g) / 0xffff,
				B: float32(b) / 0xffff,
				A: float32(a) / 0xffff,
			})
		}
	}
	return result, nil
}

// LoadFace reads one cube-face render and checks that it is square with the
// expected edge length.
func LoadFace(path string, faceSize int) (*sphere.FaceBuffer, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	if img.Width != faceSize || img.Height != faceSize {
		return nil, fmt.Errorf("sphereimg: face image %s is %dx%d, want %dx%d",
			path, img.Width, img.Height, faceSize, faceSize)
	}
	return &sphere.FaceBuffer{Size: faceSize, Pixels: img.Pixels}, nil
}

// SaveImage writes a float RGBA buffer to an image file. The format is
// chosen by the file extension. Channel values are clamped to [0, 1] and
// quantized to 8 bits.
func SaveImage(path string, img *sphere.Image) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			out.SetNRGBA(x, y, color.NRGBA{
				R: quantize(c.R),
				G: quantize(c.G),
				B: quantize(c.B),
				A: quantize(c.A),
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, out, format); err != nil {
		f.Close()
		return fmt.Errorf("sphereimg: cannot encode %s: %w", path, err)
	}
	return f.Close()
}

func decode(r io.Reader, format Format) (image.Image, error) {
	switch format {
	case FormatPNG:
		return png.Decode(r)
	case FormatJPEG:
		return jpeg.Decode(r)
	case FormatJPEG2000:
		return jpeg2000.Decode(r)
	case FormatBMP:
		return bmp.Decode(r)
	case FormatTIFF:
		return tiff.Decode(r)
	default:
		return nil, unknownFormatError(string(format))
	}
}

func encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, nil)
	case FormatJPEG2000:
		return jpeg2000.Encode(w, img, &jpeg2000.Options{
			Format:   jpeg2000.FormatJP2,
			Lossless: true,
		})
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, nil)
	default:
		return unknownFormatError(string(format))
	}
}

func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
