package pose

// Normalize maps normalized detector coordinates into pixel space of a
// width x height image. Z is scaled by the width, the same way the detector
// defines its depth axis. The input is not modified.
func Normalize(landmarks Landmarks, width, height int) Landmarks {
	w, h := float64(width), float64(height)
	out := make(Landmarks, len(landmarks))
	for i, l := range landmarks {
		out[i] = Landmark{
			X:          l.X * w,
			Y:          l.Y * h,
			Z:          l.Z * w,
			Visibility: l.Visibility,
		}
	}
	return out
}

// Normalized returns the frame landmarks in pixel space, or the raw landmarks
// when the frame carries no dimensions.
func (f Frame) Normalized() Landmarks {
	if f.Width <= 0 || f.Height <= 0 {
		return f.Landmarks
	}
	return Normalize(f.Landmarks, f.Width, f.Height)
}
