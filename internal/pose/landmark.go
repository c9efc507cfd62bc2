package pose

// Body landmark indices following the MediaPipe pose convention.
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// Landmark is a single detected body keypoint. Coordinates are either normalized
// to [0,1] or in pixel space, depending on the producer. Visibility is the detector
// confidence in [0,1], nil when the detector does not report one.
type Landmark struct {
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Z          float64  `json:"z"`
	Visibility *float64 `json:"visibility,omitempty"`
}

// Landmarks is the ordered landmark set of one detected pose.
type Landmarks []Landmark

// Has reports whether idx is a valid index into the set.
func (l Landmarks) Has(idx int) bool {
	return idx >= 0 && idx < len(l)
}

// Frame is one unit of detector output: the landmark set plus the
// dimensions of the image it was detected on.
type Frame struct {
	Landmarks Landmarks `json:"landmarks"`
	Width     int       `json:"frameWidth,omitempty"`
	Height    int       `json:"frameHeight,omitempty"`
}

// Triplet names the three landmark indices forming a joint angle;
// the middle one is the vertex.
type Triplet [3]int

// Connection is a pair of landmark indices joined by a skeleton segment.
type Connection [2]int

// Connections lists the skeleton segments used when drawing a pose overlay.
var Connections = []Connection{
	{0, 1}, {1, 2}, {2, 3}, {3, 7}, {0, 4}, {4, 5}, {5, 6}, {6, 8}, {9, 10},
	{11, 12}, {11, 13}, {13, 15}, {15, 17}, {15, 19}, {15, 21}, {17, 19},
	{12, 14}, {14, 16}, {16, 18}, {16, 20}, {16, 22}, {18, 20}, {11, 23},
	{12, 24}, {23, 24}, {23, 25}, {24, 26}, {25, 27}, {26, 28}, {27, 29},
	{28, 30}, {29, 31}, {30, 32}, {27, 31}, {28, 32},
}

// Vis is a helper for building landmarks with a visibility value.
func Vis(v float64) *float64 {
	return &v
}
