package pose

// DefaultFilterWindow is the window used by NewMovingAverage when given a non-positive size.
const DefaultFilterWindow = 5

// MovingAverage smooths a stream of values over the last window samples.
type MovingAverage struct {
	window int
	values []float64
	next   int
	sum    float64
}

func NewMovingAverage(window int) *MovingAverage {
	if window <= 0 {
		window = DefaultFilterWindow
	}
	return &MovingAverage{
		window: window,
		values: make([]float64, 0, window),
	}
}

// Filter adds v and returns the mean of the samples currently in the window.
func (m *MovingAverage) Filter(v float64) float64 {
	if len(m.values) < m.window {
		m.values = append(m.values, v)
	} else {
		m.sum -= m.values[m.next]
		m.values[m.next] = v
		m.next = (m.next + 1) % m.window
	}
	m.sum += v
	return m.sum / float64(len(m.values))
}

func (m *MovingAverage) Reset() {
	m.values = m.values[:0]
	m.next = 0
	m.sum = 0
}

// JointFilter keeps one moving average per joint name.
type JointFilter struct {
	window  int
	filters map[string]*MovingAverage
}

func NewJointFilter(window int) *JointFilter {
	return &JointFilter{
		window:  window,
		filters: make(map[string]*MovingAverage),
	}
}

// Apply returns a smoothed copy of angles. The input map is not modified.
func (jf *JointFilter) Apply(angles map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(angles))
	for joint, angle := range angles {
		f, ok := jf.filters[joint]
		if !ok {
			f = NewMovingAverage(jf.window)
			jf.filters[joint] = f
		}
		out[joint] = f.Filter(angle)
	}
	return out
}

func (jf *JointFilter) Reset() {
	jf.filters = make(map[string]*MovingAverage)
}
