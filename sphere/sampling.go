package sphere

import "fmt"

// Sample identifies one cube-face pixel to read when computing an output
// pixel: the face index and the pixel coordinates on that face, each in
// [0, FaceSize).
type Sample struct {
	Face uint8
	X    uint16
	Y    uint16
}

// SamplingIndex holds, for every pixel of the final image, the list of
// cube-face pixels whose average produces that pixel. Pixels is in
// row-major order over the final image; within a pixel the samples are in
// row-major order over the sub-sample grid.
//
// The index depends only on the sizing parameters and the projection, never
// on actual pixel data, so it is built once and reused for every frame of
// an animation, and cached across runs.
type SamplingIndex struct {
	Sizing Sizing
	Pixels [][]Sample
}

// BuildSamplingIndex computes the sampling index for the given sizing
// parameters and projection.
//
// For every output pixel, SubWidth*SubHeight sub-sample locations evenly
// spaced strictly inside the pixel are projected to latitude and longitude,
// converted to a view ray, and intersected with the cube; the intersection
// point is mapped to a pixel on the intersected face's image. Identical
// parameters always produce a bit-identical index.
func BuildSamplingIndex(sizing Sizing, proj Projection) (*SamplingIndex, error) {
	if err := sizing.Validate(); err != nil {
		return nil, err
	}
	mapToLatLon, err := proj.latLon()
	if err != nil {
		return nil, fmt.Errorf("%w: %d", err, int(proj))
	}

	width := float64(sizing.Width)
	height := float64(sizing.Height)
	faceSize := float64(sizing.FaceSize)
	xSubDx := 1 / float64(sizing.SubWidth+1)
	ySubDy := 1 / float64(sizing.SubHeight+1)
	nSub := sizing.SamplesPerPixel()

	pixels := make([][]Sample, sizing.PixelCount())

	// Rows are independent; each row carries its own intersection hint,
	// seeded as if the previous ray had hit face 0.
	err = ParallelForWithError(sizing.Height, func(y int) error {
		hint := 0
		for x := 0; x < sizing.Width; x++ {
			samples := make([]Sample, 0, nSub)
			ySub := float64(y) + ySubDy
			for sy := 0; sy < sizing.SubHeight; sy++ {
				xSub := float64(x) + xSubDx
				for sx := 0; sx < sizing.SubWidth; sx++ {
					lat, lon := mapToLatLon(xSub, ySub, width, height)
					ray := DirectionFromLatLon(lat, lon)
					face, pt, err := IntersectCube(ray, hint)
					if err != nil {
						return fmt.Errorf("pixel (%d, %d): %w", x, y, err)
					}
					hint = face

					xInter := pt.X * faceOrientX[face]
					yInter := pt.Y

					xFace := int(faceSize * (xInter + 1) / 2)
					yFace := int(faceSize * (yInter + 1) / 2)
					// An intersection coordinate of exactly +1 lands one
					// past the last pixel row or column.
					if xFace >= sizing.FaceSize {
						xFace = sizing.FaceSize - 1
					}
					if yFace >= sizing.FaceSize {
						yFace = sizing.FaceSize - 1
					}

					samples = append(samples, Sample{
						Face: uint8(face),
						X:    uint16(xFace),
						Y:    uint16(yFace),
					})
					xSub += xSubDx
				}
				ySub += ySubDy
			}
			pixels[y*sizing.Width+x] = samples
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SamplingIndex{Sizing: sizing, Pixels: pixels}, nil
}
