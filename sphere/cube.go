package sphere

// intersectEps rejects rays that are parallel to a face or pointing away
// from it. Rays are unit vectors from the cube center, so a dot product
// below this threshold means the face cannot be hit.
const intersectEps = 1e-10

// faceOrientX gives the sign applied to the intersection X coordinate of
// each face so that it matches the left-to-right orientation of that face's
// rendered image. The face cameras look along their axis with a fixed roll,
// which mirrors X on half the faces.
var faceOrientX = [NumFaces]float64{-1, 1, 1, -1, -1, 1}

// IntersectCube returns the intersection of ray with the axis-aligned cube
// spanning -1 to 1 in each dimension. The ray is a unit vector emanating
// from the origin. The result is the index of the intersected face (see the
// Face constants) and the 2D intersection point on that face, with each
// coordinate in [-1, 1], in ascending order of the two remaining axes.
//
// hint should be the face intersected by the preceding ray; adjacent rays
// usually hit the same face, so testing it first lets the scan terminate
// early. Pass 0 when there is no preceding ray. The hint affects only the
// search order, never the result.
//
// ErrNoIntersection is returned if no face is hit, which cannot happen for
// a well-formed unit ray and indicates a geometry bug.
func IntersectCube(ray V3d, hint int) (face int, pt V2d, err error) {
	// Scan the faces with hint swapped to the front of the order.
	faces := [NumFaces]int{0, 1, 2, 3, 4, 5}
	faces[0] = hint
	faces[hint] = 0

	for _, i := range faces {
		axis := i / 2
		dot := component(ray, axis)
		if i%2 == 1 {
			dot = -dot
		}

		// A negative dot means the ray points away from this face; only
		// the flipped ray would hit it. A dot below intersectEps means
		// the ray is parallel to the face and never intersects it.
		if dot < intersectEps {
			continue
		}

		var p [2]float64
		n := 0
		for j := 0; j < 3; j++ {
			if j == axis {
				continue
			}
			inter := component(ray, j) / dot
			if inter < -1 || inter > 1 {
				break
			}
			p[n] = inter
			n++
		}
		if n == 2 {
			return i, V2d{X: p[0], Y: p[1]}, nil
		}
	}

	return 0, V2d{}, ErrNoIntersection
}

// component returns the axis'th component of v (0 = X, 1 = Y, 2 = Z).
func component(v V3d, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
