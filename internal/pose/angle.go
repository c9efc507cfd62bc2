package pose

import "math"

// Angle returns the planar angle in degrees at vertex b formed by a and c.
// The result is always in [0,180]. Z is not taken into account.
func Angle(a, b, c Landmark) float64 {
	radians := math.Atan2(c.Y-b.Y, c.X-b.X) - math.Atan2(a.Y-b.Y, a.X-b.X)
	degrees := math.Abs(radians * 180.0 / math.Pi)
	if degrees > 180.0 {
		degrees = 360 - degrees
	}
	return degrees
}

// JointAngle computes the angle for the given triplet. It returns false when any
// index is out of range, or when minVisibility > 0 and one of the three landmarks
// reports a visibility below it.
func JointAngle(landmarks Landmarks, t Triplet, minVisibility float64) (float64, bool) {
	for _, idx := range t {
		if !landmarks.Has(idx) {
			return 0, false
		}
		if minVisibility > 0 {
			if vis := landmarks[idx].Visibility; vis != nil && *vis < minVisibility {
				return 0, false
			}
		}
	}
	return Angle(landmarks[t[0]], landmarks[t[1]], landmarks[t[2]]), true
}
