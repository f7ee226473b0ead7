// sphereproj assembles six cube-face render frames into panoramic image
// frames using an equirectangular or Mercator projection.
//
// Usage:
//
//	sphereproj [options] -i inputDir
//
// The input directory must contain one subdirectory per cube face, named
// xPos, xNeg, yPos, yNeg, zPos and zNeg, each holding one image per frame
// named NNNN.<ext> (frame number zero-padded to four digits). Panorama
// frames are written to the "spherical" subdirectory of the output
// directory, one per input frame.
//
// Options:
//
//	-i <dir>         input directory with per-face frame subdirectories (required)
//	-o <dir>         output directory (default ./spherical-video)
//	-ow <pixels>     width of the output panorama (default 1280)
//	-oh <pixels>     height of the output panorama (default 720)
//	-cu <pixels>     cube face edge length (default 0.75 * max(width, height))
//	-sw <n>          sub-samples per pixel, horizontal (default 3)
//	-sh <n>          sub-samples per pixel, vertical (default 3)
//	-pr <n>          projection: 0 equirectangular, 1 Mercator (default 0)
//	-f <format>      image format for frames (default png)
//	-s <frame>       first frame (default: lowest frame present)
//	-e <frame>       last frame (default: highest frame present)
//	-j <frames>      frame step (default 1)
//	-cachedir <dir>  sampling index cache directory (default samplingIndexCache)
//	-nc              do not use the sampling index cache
//	-zc              compress cache entries with zlib
//	-h, --help       print this message
//	--version        print version information
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mrjoshuak/go-spherical/sphere"
	"github.com/mrjoshuak/go-spherical/spherecache"
	"github.com/mrjoshuak/go-spherical/sphereimg"
)

const version = "0.1.0"

type options struct {
	inputDir   string
	outputDir  string
	width      int
	height     int
	cubeSize   int
	subWidth   int
	subHeight  int
	projection sphere.Projection
	format     sphereimg.Format
	start      int
	end        int
	step       int
	cacheDir   string
	noCache    bool
	zlibCache  bool
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "sphereproj: %v\n", err)
		usageMessage(os.Stderr)
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "sphereproj: %v\n", err)
		os.Exit(1)
	}
}

func parseArgs(args []string) (*options, error) {
	opts := &options{
		outputDir:  "./spherical-video",
		width:      1280,
		height:     720,
		subWidth:   3,
		subHeight:  3,
		projection: sphere.Equirectangular,
		format:     sphereimg.FormatPNG,
		start:      -1,
		end:        -1,
		step:       1,
		cacheDir:   "samplingIndexCache",
	}

	i := 0
	next := func(flag string) (string, error) {
		i++
		if i >= len(args) {
			return "", fmt.Errorf("missing value for %s", flag)
		}
		return args[i], nil
	}
	nextInt := func(flag string) (int, error) {
		s, err := next(flag)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid value for %s: %q", flag, s)
		}
		return v, nil
	}

	var err error
	for ; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "-h", "--help":
			usageMessage(os.Stdout)
			os.Exit(0)
		case "--version":
			fmt.Printf("sphereproj (go-spherical) %s\n", version)
			os.Exit(0)
		case "-i", "--input":
			opts.inputDir, err = next(arg)
		case "-o", "--output":
			opts.outputDir, err = next(arg)
		case "-ow", "--width":
			opts.width, err = nextInt(arg)
		case "-oh", "--height":
			opts.height, err = nextInt(arg)
		case "-cu", "--cubeSize":
			opts.cubeSize, err = nextInt(arg)
		case "-sw", "--subWidth":
			opts.subWidth, err = nextInt(arg)
		case "-sh", "--subHeight":
			opts.subHeight, err = nextInt(arg)
		case "-pr", "--proj":
			var v int
			v, err = nextInt(arg)
			opts.projection = sphere.Projection(v)
		case "-f", "--format":
			var name string
			name, err = next(arg)
			if err == nil {
				opts.format, err = sphereimg.ParseFormat(name)
			}
		case "-s", "--frame-start":
			opts.start, err = nextInt(arg)
		case "-e", "--frame-end":
			opts.end, err = nextInt(arg)
		case "-j", "--frame-jump":
			opts.step, err = nextInt(arg)
		case "-cachedir", "--cachedir":
			opts.cacheDir, err = next(arg)
		case "-nc", "--nocache":
			opts.noCache = true
		case "-zc", "--zcache":
			opts.zlibCache = true
		default:
			return nil, fmt.Errorf("unknown option: %s", arg)
		}
		if err != nil {
			return nil, err
		}
	}

	if opts.inputDir == "" {
		return nil, fmt.Errorf("no input directory specified")
	}
	if opts.cubeSize == 0 {
		opts.cubeSize = opts.width * 3 / 4
		if h := opts.height * 3 / 4; h > opts.cubeSize {
			opts.cubeSize = h
		}
	}
	if opts.step <= 0 {
		return nil, fmt.Errorf("frame step must be positive, got %d", opts.step)
	}
	return opts, nil
}

func run(opts *options) error {
	sizing := sphere.Sizing{
		Width:     opts.width,
		Height:    opts.height,
		FaceSize:  opts.cubeSize,
		SubWidth:  opts.subWidth,
		SubHeight: opts.subHeight,
	}
	if err := sizing.Validate(); err != nil {
		return err
	}
	if err := opts.projection.Validate(); err != nil {
		return fmt.Errorf("%w: %d", err, int(opts.projection))
	}

	start, end := opts.start, opts.end
	if start < 0 || end < 0 {
		lo, hi, err := frameRange(filepath.Join(opts.inputDir, sphere.FaceName(sphere.FacePosX)), opts.format)
		if err != nil {
			return err
		}
		if start < 0 {
			start = lo
		}
		if end < 0 {
			end = hi
		}
	}

	index, err := samplingIndex(sizing, opts)
	if err != nil {
		return err
	}

	outputDir := filepath.Join(opts.outputDir, "spherical")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	faces := make([]*sphere.FaceBuffer, sphere.NumFaces)
	for frame := start; frame <= end; frame += opts.step {
		name := frameName(frame, opts.format)
		for i := range faces {
			path := filepath.Join(opts.inputDir, sphere.FaceName(i), name)
			faces[i], err = sphereimg.LoadFace(path, sizing.FaceSize)
			if err != nil {
				return fmt.Errorf("frame %d: %w", frame, err)
			}
		}

		t0 := time.Now()
		result, err := sphere.Resample(index, faces)
		if err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}

		outPath := filepath.Join(outputDir, name)
		if err := sphereimg.SaveImage(outPath, result); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		fmt.Printf("Saved '%s' (resampled in %.2f secs)\n", outPath, time.Since(t0).Seconds())
	}
	return nil
}

// samplingIndex loads the sampling index from the cache, or builds it and
// stores it for later runs. With -nc the cache is bypassed entirely.
func samplingIndex(sizing sphere.Sizing, opts *options) (*sphere.SamplingIndex, error) {
	var store spherecache.Store
	if !opts.noCache {
		dirStore, err := spherecache.NewDirStore(opts.cacheDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cache disabled: %v\n", err)
		} else if opts.zlibCache {
			store = spherecache.NewZlibStore(dirStore)
		} else {
			store = dirStore
		}
	} else {
		fmt.Println("Ignoring the sampling indices cache")
	}

	if store != nil {
		if index, ok := spherecache.LoadIndex(store, sizing, opts.projection); ok {
			fmt.Println("Using cached sampling indices")
			return index, nil
		}
	}

	fmt.Println("Building sampling indices...")
	t0 := time.Now()
	index, err := sphere.BuildSamplingIndex(sizing, opts.projection)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Done, %.2f secs\n", time.Since(t0).Seconds())

	if store != nil {
		spherecache.SaveIndex(store, index, opts.projection)
	}
	return index, nil
}

// frameRange returns the lowest and highest frame numbers present in dir
// for the given format.
func frameRange(dir string, format sphereimg.Format) (lo, hi int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, err
	}
	lo, hi = -1, -1
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, format.Ext()) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(name, format.Ext()))
		if err != nil {
			continue
		}
		if lo < 0 || n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	if lo < 0 {
		return 0, 0, fmt.Errorf("no %s frames found in %s", format, dir)
	}
	return lo, hi, nil
}

func frameName(frame int, format sphereimg.Format) string {
	return fmt.Sprintf("%04d%s", frame, format.Ext())
}

func usageMessage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sphereproj [options] -i inputDir")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Assembles six cube-face render frames into panoramic image frames.")
	fmt.Fprintln(w, "The input directory must contain subdirectories xPos, xNeg, yPos,")
	fmt.Fprintln(w, "yNeg, zPos and zNeg, each with one image per frame named NNNN.<ext>.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -i <dir>         input directory with per-face frame subdirectories (required)")
	fmt.Fprintln(w, "  -o <dir>         output directory (default ./spherical-video)")
	fmt.Fprintln(w, "  -ow <pixels>     width of the output panorama (default 1280)")
	fmt.Fprintln(w, "  -oh <pixels>     height of the output panorama (default 720)")
	fmt.Fprintln(w, "  -cu <pixels>     cube face edge length (default 0.75 * max(width, height))")
	fmt.Fprintln(w, "  -sw <n>          sub-samples per pixel, horizontal (default 3)")
	fmt.Fprintln(w, "  -sh <n>          sub-samples per pixel, vertical (default 3)")
	fmt.Fprintln(w, "  -pr <n>          projection: 0 equirectangular, 1 Mercator (default 0)")
	fmt.Fprintln(w, "  -f <format>      image format for frames (default png)")
	fmt.Fprintln(w, "  -s <frame>       first frame (default: lowest frame present)")
	fmt.Fprintln(w, "  -e <frame>       last frame (default: highest frame present)")
	fmt.Fprintln(w, "  -j <frames>      frame step (default 1)")
	fmt.Fprintln(w, "  -cachedir <dir>  sampling index cache directory (default samplingIndexCache)")
	fmt.Fprintln(w, "  -nc              do not use the sampling index cache")
	fmt.Fprintln(w, "  -zc              compress cache entries with zlib")
	fmt.Fprintln(w, "  -h, --help       print this message")
	fmt.Fprintln(w, "  --version        print version information")
}
