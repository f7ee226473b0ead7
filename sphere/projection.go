package sphere

import "math"

// Projection selects the map projection used for the final panoramic image.
type Projection int

const (
	// Equirectangular maps longitude and latitude linearly to x and y.
	Equirectangular Projection = iota
	// Mercator maps latitude through the Mercator relation, truncated
	// at MaxLatMercator since the projection diverges at the poles.
	Mercator
)

// MaxLatMercator is the maximum north latitude (and minimum south latitude,
// negated) produced by the Mercator projection, which is undefined at the
// poles.
const MaxLatMercator = 85 * math.Pi / 180

// yForMaxLatMercator is the Mercator Y value corresponding to MaxLatMercator,
// computed as log(tan(pi/4 + MaxLatMercator/2)).
const yForMaxLatMercator = 3.131301331471645

const piOver2 = math.Pi / 2

// String returns the name of the projection.
func (p Projection) String() string {
	switch p {
	case Equirectangular:
		return "equirectangular"
	case Mercator:
		return "mercator"
	default:
		return "unknown"
	}
}

// Tag returns the short tag identifying the projection in cache keys:
// "eqrc" for Equirectangular, "merc" for Mercator.
func (p Projection) Tag() string {
	switch p {
	case Equirectangular:
		return "eqrc"
	case Mercator:
		return "merc"
	default:
		return "unkn"
	}
}

// Validate reports whether p is a known projection.
func (p Projection) Validate() error {
	switch p {
	case Equirectangular, Mercator:
		return nil
	default:
		return ErrUnknownProjection
	}
}

// latLonFunc converts a location (x, y) in a final image of the given total
// size to a latitude and longitude, both in radians.
type latLonFunc func(x, y, width, height float64) (lat, lon float64)

// latLon returns the conversion function for the projection.
func (p Projection) latLon() (latLonFunc, error) {
	switch p {
	case Equirectangular:
		return EquirectangularLatLon, nil
	case Mercator:
		return MercatorLatLon, nil
	default:
		return nil, ErrUnknownProjection
	}
}

// EquirectangularLatLon converts a location (x, y) in a final image of the
// given total size to (latitude, longitude) using the equirectangular
// projection. Latitude goes from -pi/2 at y == 0 to pi/2 at y == height.
// Longitude goes from -pi at x == 0 to pi at x == width.
func EquirectangularLatLon(x, y, width, height float64) (lat, lon float64) {
	lon = (2*(x/width) - 1) * math.Pi
	lat = (2*(y/height) - 1) * piOver2
	return lat, lon
}

// MercatorLatLon converts a location (x, y) in a final image of the given
// total size to (latitude, longitude) using the Mercator projection.
// Latitude goes from -MaxLatMercator at y == 0 to MaxLatMercator at
// y == height. Longitude goes from -pi at x == 0 to pi at x == width.
func MercatorLatLon(x, y, width, height float64) (lat, lon float64) {
	lon = (2*(x/width) - 1) * math.Pi
	y1 := (2*(y/height) - 1) * yForMaxLatMercator
	lat = 2*math.Atan(math.Exp(y1)) - piOver2
	return lat, lon
}

// DirectionFromLatLon converts a latitude and longitude to a unit 3D vector
// pointing from the center of the sphere to the point with that latitude and
// longitude. The positive Z axis is "up".
func DirectionFromLatLon(lat, lon float64) V3d {
	colat := piOver2 - lat
	s := math.Sin(colat)
	return V3d{
		X: s * math.Cos(lon),
		Y: -s * math.Sin(lon),
		Z: math.Cos(colat),
	}
}
