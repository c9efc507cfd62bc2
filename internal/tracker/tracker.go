package tracker

import "sync"

// DefaultCapacity is the number of samples kept per joint.
const DefaultCapacity = 300

// Pattern holds the indexes, within the current history window, of strict
// local maxima and minima.
type Pattern struct {
	Peaks   []int `json:"peaks"`
	Valleys []int `json:"valleys"`
}

// Reps is the repetition estimate of a joint: every two valleys count as one rep.
// It is an approximation that works for clean oscillating movements.
func (p Pattern) Reps() int {
	return len(p.Valleys) / 2
}

type ring struct {
	samples []float64
	start   int
	size    int
}

func (r *ring) push(v float64) {
	if r.size < len(r.samples) {
		r.samples[(r.start+r.size)%len(r.samples)] = v
		r.size++
		return
	}
	r.samples[r.start] = v
	r.start = (r.start + 1) % len(r.samples)
}

func (r *ring) values() []float64 {
	out := make([]float64, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.samples[(r.start+i)%len(r.samples)]
	}
	return out
}

// Tracker keeps a bounded angle history for every joint it has seen.
type Tracker struct {
	mu       sync.Mutex
	capacity int
	joints   map[string]*ring
}

func New(capacity int) *Tracker {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Tracker{
		capacity: capacity,
		joints:   make(map[string]*ring),
	}
}

// Track appends an angle to the joint history, evicting the oldest sample once
// the history is full.
func (t *Tracker) Track(joint string, angle float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.joints[joint]
	if !ok {
		r = &ring{samples: make([]float64, t.capacity)}
		t.joints[joint] = r
	}
	r.push(angle)
}

func (t *Tracker) TrackAll(angles map[string]float64) {
	for joint, angle := range angles {
		t.Track(joint, angle)
	}
}

// History returns a copy of the joint samples, oldest first.
func (t *Tracker) History(joint string) []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.joints[joint]
	if !ok {
		return nil
	}
	return r.values()
}

func (t *Tracker) Len(joint string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if r, ok := t.joints[joint]; ok {
		return r.size
	}
	return 0
}

func (t *Tracker) Pattern(joint string) Pattern {
	return DetectPattern(t.History(joint))
}

func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.joints = make(map[string]*ring)
}

// DetectPattern finds every index i in [1, len-2] that is strictly greater (peak)
// or strictly smaller (valley) than both neighbours.
func DetectPattern(h []float64) Pattern {
	p := Pattern{
		Peaks:   []int{},
		Valleys: []int{},
	}
	for i := 1; i < len(h)-1; i++ {
		switch {
		case h[i] > h[i-1] && h[i] > h[i+1]:
			p.Peaks = append(p.Peaks, i)
		case h[i] < h[i-1] && h[i] < h[i+1]:
			p.Valleys = append(p.Valleys, i)
		}
	}
	return p
}
