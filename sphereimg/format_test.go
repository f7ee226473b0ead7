package sphereimg

import (
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"png", FormatPNG},
		{"PNG", FormatPNG},
		{"jpeg", FormatJPEG},
		{"Jpeg2000", FormatJPEG2000},
		{"bmp", FormatBMP},
		{"tiff", FormatTIFF},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.name)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestParseFormatUnknown(t *testing.T) {
	_, err := ParseFormat("webp")
	if err == nil {
		t.Fatal("ParseFormat(webp) succeeded, want error")
	}
	// The error lists the supported choices.
	for _, want := range []string{"webp", "PNG (.png)", "TIFF (.tif)"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestFormatExt(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatPNG, ".png"},
		{FormatJPEG, ".jpg"},
		{FormatJPEG2000, ".jp2"},
		{FormatBMP, ".bmp"},
		{FormatTIFF, ".tif"},
		{Format("WEBP"), ""},
	}
	for _, tt := range tests {
		if got := tt.format.Ext(); got != tt.want {
			t.Errorf("%s.Ext() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"frames/0001.png", FormatPNG},
		{"0001.jpg", FormatJPEG},
		{"0001.jpeg", FormatJPEG},
		{"0001.jp2", FormatJPEG2000},
		{"0001.bmp", FormatBMP},
		{"0001.tif", FormatTIFF},
		{"0001.tiff", FormatTIFF},
		{"0001.PNG", FormatPNG},
	}
	for _, tt := range tests {
		got, err := FormatForPath(tt.path)
		if err != nil {
			t.Errorf("FormatForPath(%q): %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatForPath(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}

	if _, err := FormatForPath("frame.webp"); err == nil {
		t.Error("FormatForPath(frame.webp) succeeded, want error")
	}
	if _, err := FormatForPath("noextension"); err == nil {
		t.Error("FormatForPath(noextension) succeeded, want error")
	}
}
