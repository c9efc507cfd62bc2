package pose

import "math"

const (
	// IdealHalfWidth is the half width of the band around the range midpoint
	// that scores a perfect 100.
	IdealHalfWidth = 5.0
	// CorrectionThreshold is the joint score below which a correction is issued.
	CorrectionThreshold = 60.0
)

// Score rates an angle against the acceptable range [minAngle, maxAngle].
//   - within the ideal band around the midpoint: 100
//   - within the range: max(70, 90 - distance to the ideal band)
//   - outside the range: max(0, 70 - 2 * distance to the range)
func Score(angle, minAngle, maxAngle float64) float64 {
	mid := (minAngle + maxAngle) / 2
	idealLow := mid - IdealHalfWidth
	idealHigh := mid + IdealHalfWidth

	if angle >= idealLow && angle <= idealHigh {
		return 100
	}

	if angle >= minAngle && angle <= maxAngle {
		deviation := math.Min(math.Abs(angle-idealLow), math.Abs(angle-idealHigh))
		return math.Max(70, 90-deviation)
	}

	deviation := math.Min(math.Abs(angle-minAngle), math.Abs(angle-maxAngle))
	return math.Max(0, 70-2*deviation)
}
