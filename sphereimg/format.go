// Package sphereimg reads and writes the image files consumed and produced
// by the panorama tools: cube-face renders on the way in, panoramic frames
// on the way out.
//
// Pixel values are converted between 8/16-bit channel data on disk and the
// float32 RGBA buffers used by package sphere. No color management is
// applied; channel values pass through unchanged apart from quantization.
package sphereimg

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported image file format.
type Format string

// Supported file formats.
const (
	FormatPNG      Format = "PNG"
	FormatJPEG     Format = "JPEG"
	FormatJPEG2000 Format = "JPEG2000"
	FormatBMP      Format = "BMP"
	FormatTIFF     Format = "TIFF"
)

// formatExts lists the supported formats with their file extensions, in
// the order used for error messages.
var formatExts = []struct {
	format Format
	ext    string
}{
	{FormatPNG, ".png"},
	{FormatJPEG, ".jpg"},
	{FormatJPEG2000, ".jp2"},
	{FormatBMP, ".bmp"},
	{FormatTIFF, ".tif"},
}

// Ext returns the file extension for a format, including the leading dot.
func (f Format) Ext() string {
	for _, fe := range formatExts {
		if fe.format == f {
			return fe.ext
		}
	}
	return ""
}

// ParseFormat converts a format name such as "png" or "TIFF" to a Format.
func ParseFormat(name string) (Format, error) {
	upper := Format(strings.ToUpper(name))
	for _, fe := range formatExts {
		if fe.format == upper {
			return fe.format, nil
		}
	}
	return "", unknownFormatError(name)
}

// FormatForPath returns the format implied by a file name's extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpeg":
		ext = ".jpg"
	case ".tiff":
		ext = ".tif"
	}
	for _, fe := range formatExts {
		if fe.ext == ext {
			return fe.format, nil
		}
	}
	return "", unknownFormatError(ext)
}

// unknownFormatError lists the supported choices, e.g.
// "sphereimg: unsupported file format 'x'; use one of: PNG (.png), ...".
func unknownFormatError(name string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "sphereimg: unsupported file format %q; use one of:", name)
	for i, fe := range formatExts {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, " %s (%s)", fe.format, fe.ext)
	}
	return fmt.Errorf("%s", b.String())
}
