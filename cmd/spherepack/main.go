// spherepack packs each group of three consecutive input frames into one
// output frame, by converting each input frame to grayscale and putting
// frame i into one channel of the output frame (e.g. red), frame i+1 into
// another channel (e.g. green), and frame i+2 into another (e.g. blue).
// Unpacking the channels at playback time triples the frame rate.
//
// Usage:
//
//	spherepack [options] -i inputDir
//
// Options:
//
//	-i <dir>       directory containing the input frames (required)
//	-o <dir>       directory for the output packed frames (default: input directory)
//	-po <order>    packing order, e.g. RGB means frame 0 in R, 1 in G, 2 in B (default RGB)
//	-of <format>   image format for output (default bmp)
//	-s <frame>     first frame to pack (default 1)
//	-e <frame>     last frame to pack (default 999999)
//	-h, --help     print this message
//	--version      print version information
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mrjoshuak/go-spherical/sphere"
	"github.com/mrjoshuak/go-spherical/sphereimg"
)

const version = "0.1.0"

func main() {
	inputDir := ""
	outputDir := ""
	packedOrder := "RGB"
	formatName := "bmp"
	start := 1
	end := 999999

	args := os.Args[1:]
	i := 0
	next := func(flag string) string {
		i++
		if i >= len(args) {
			fmt.Fprintf(os.Stderr, "spherepack: missing value for %s\n", flag)
			os.Exit(2)
		}
		return args[i]
	}
	nextInt := func(flag string) int {
		s := next(flag)
		v, err := strconv.Atoi(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "spherepack: invalid value for %s: %q\n", flag, s)
			os.Exit(2)
		}
		return v
	}

	for ; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "-h", "--help":
			usageMessage(os.Stdout)
			os.Exit(0)
		case "--version":
			fmt.Printf("spherepack (go-spherical) %s\n", version)
			os.Exit(0)
		case "-i", "--input":
			inputDir = next(arg)
		case "-o", "--output":
			outputDir = next(arg)
		case "-po", "--packedOrder":
			packedOrder = next(arg)
		case "-of", "--outputFormat":
			formatName = next(arg)
		case "-s", "--start":
			start = nextInt(arg)
		case "-e", "--end":
			end = nextInt(arg)
		default:
			fmt.Fprintf(os.Stderr, "spherepack: unknown option: %s\n", arg)
			usageMessage(os.Stderr)
			os.Exit(2)
		}
	}

	if inputDir == "" {
		usageMessage(os.Stderr)
		os.Exit(2)
	}
	if outputDir == "" {
		outputDir = inputDir
	}

	format, err := sphereimg.ParseFormat(formatName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spherepack: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("Using output format: %s\n", format)

	order, err := parseOrder(packedOrder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spherepack: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("Using packed order: %s\n", strings.ToUpper(packedOrder))
	fmt.Printf("Using output directory: %s\n", outputDir)

	timeStart := time.Now()
	if err := pack(inputDir, outputDir, order, format, start, end); err != nil {
		fmt.Fprintf(os.Stderr, "spherepack: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Packing took %.2f secs\n", time.Since(timeStart).Seconds())
}

// parseOrder maps an order string like "RGB" to the output channel index
// used for each of the three frames in a group.
func parseOrder(order string) ([3]int, error) {
	var result [3]int
	if len(order) != 3 {
		return result, fmt.Errorf("packing order must name three channels, got %q", order)
	}
	seen := [3]bool{}
	for i, c := range strings.ToUpper(order) {
		var channel int
		switch c {
		case 'R':
			channel = 0
		case 'G':
			channel = 1
		case 'B':
			channel = 2
		default:
			return result, fmt.Errorf("packing order may only use R, G and B, got %q", order)
		}
		if seen[channel] {
			return result, fmt.Errorf("packing order repeats a channel: %q", order)
		}
		seen[channel] = true
		result[i] = channel
	}
	return result, nil
}

// findInputFrames lists the numbered frame files within the range, sorted.
// If the count is not a multiple of three, the final frame is repeated so
// that pack can assume whole groups.
func findInputFrames(inputDir string, start, end int) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}
	var frames []string
	for _, e := range entries {
		name := e.Name()
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		n, err := strconv.Atoi(stem)
		if err != nil {
			continue
		}
		if n >= start && n <= end {
			frames = append(frames, name)
		}
	}
	sort.Strings(frames)
	if len(frames) == 0 {
		return nil, fmt.Errorf("no input frames found in %s", inputDir)
	}
	for len(frames)%3 > 0 {
		frames = append(frames, frames[len(frames)-1])
	}
	return frames, nil
}

func pack(inputDir, outputDir string, order [3]int, format sphereimg.Format, start, end int) error {
	frames, err := findInputFrames(inputDir, start, end)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	for group := 0; group < len(frames); group += 3 {
		first := frames[group]
		stem := strings.TrimSuffix(first, filepath.Ext(first))
		outPath := filepath.Join(outputDir, stem+format.Ext())

		var packed *sphere.Image
		for j := 0; j < 3; j++ {
			img, err := sphereimg.LoadImage(filepath.Join(inputDir, frames[group+j]))
			if err != nil {
				return err
			}
			if packed == nil {
				packed = sphere.NewImage(img.Width, img.Height)
				for k := range packed.Pixels {
					packed.Pixels[k].A = 1
				}
			} else if img.Width != packed.Width || img.Height != packed.Height {
				return fmt.Errorf("frame %s is %dx%d, want %dx%d",
					frames[group+j], img.Width, img.Height, packed.Width, packed.Height)
			}
			setChannel(packed, order[j], img)
		}

		if err := sphereimg.SaveImage(outPath, packed); err != nil {
			return err
		}
		fmt.Printf("Saved '%s'\n", outPath)
	}
	return nil
}

// setChannel writes the grayscale value of every src pixel into one
// channel of dst (0 = R, 1 = G, 2 = B), using Rec. 709 luma weights.
func setChannel(dst *sphere.Image, channel int, src *sphere.Image) {
	for i, p := range src.Pixels {
		v := 0.2126*p.R + 0.7152*p.G + 0.0722*p.B
		switch channel {
		case 0:
			dst.Pixels[i].R = v
		case 1:
			dst.Pixels[i].G = v
		case 2:
			dst.Pixels[i].B = v
		}
	}
}

func usageMessage(w io.Writer) {
	fmt.Fprintln(w, "Usage: spherepack [options] -i inputDir")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Packs each group of three consecutive frames into one output frame,")
	fmt.Fprintln(w, "one grayscale frame per color channel.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -i <dir>       directory containing the input frames (required)")
	fmt.Fprintln(w, "  -o <dir>       directory for the output packed frames (default: input directory)")
	fmt.Fprintln(w, "  -po <order>    packing order, e.g. RGB: frame 0 in R, 1 in G, 2 in B (default RGB)")
	fmt.Fprintln(w, "  -of <format>   image format for output (default bmp)")
	fmt.Fprintln(w, "  -s <frame>     first frame to pack (default 1)")
	fmt.Fprintln(w, "  -e <frame>     last frame to pack (default 999999)")
	fmt.Fprintln(w, "  -h, --help     print this message")
	fmt.Fprintln(w, "  --version      print version information")
}
