package exercise

// CheckKind selects the statistic a checkpoint rule inspects.
type CheckKind string

const (
	// CheckAvgBelowMin fires when the joint average is below the checkpoint min.
	CheckAvgBelowMin CheckKind = "avg_below_min"
	// CheckAvgAboveMax fires when the joint average is above the checkpoint max.
	CheckAvgAboveMax CheckKind = "avg_above_max"
	// CheckLowestBelowMin fires when the lowest sample is below the checkpoint min.
	CheckLowestBelowMin CheckKind = "lowest_below_min"
	// CheckLowestAbove fires when the lowest sample is above Threshold.
	CheckLowestAbove CheckKind = "lowest_above"
	// CheckAvgOffIdeal fires when |avg - ideal| exceeds Threshold.
	CheckAvgOffIdeal CheckKind = "avg_off_ideal"
	// CheckOutOfRangeShare fires when the percentage of session frames outside
	// [min,max] exceeds Threshold.
	CheckOutOfRangeShare CheckKind = "out_of_range_share"
	// CheckVariation fires when max - min exceeds Threshold.
	CheckVariation CheckKind = "variation"
	// CheckShareBelow fires when the share of samples under Value exceeds Threshold.
	CheckShareBelow CheckKind = "share_below"
	// CheckInRangeShareBelow fires when the share of samples inside [min,max]
	// is below Threshold.
	CheckInRangeShareBelow CheckKind = "in_range_share_below"
)

// CheckRule is one templated observation about a joint. Message may contain the
// placeholders {avg}, {min}, {max}, {ideal}, {pct} and {variation}.
type CheckRule struct {
	Kind      CheckKind
	Value     float64
	Threshold float64
	Message   string
}

// Checkpoint is the post-session target for one joint.
type Checkpoint struct {
	Joint string
	Min   float64
	Max   float64
	Ideal float64
	Rules []CheckRule
}

// FallbackAdvice is used when checkpoint analysis produced nothing.
type FallbackAdvice struct {
	MaxScore  float64
	Inclusive bool
	Messages  []string
}

func (f FallbackAdvice) Applies(score float64) bool {
	if f.Inclusive {
		return score <= f.MaxScore
	}
	return score < f.MaxScore
}

// CoachingProfile is the report configuration of one exercise.
type CoachingProfile struct {
	Checkpoints []Checkpoint
	// Fallback entries are checked in order, the first applicable one wins.
	Fallback         []FallbackAdvice
	Tip              string
	BeginnerTip      string
	BeginnerTipBelow float64
}

func (p *CoachingProfile) Checkpoint(joint string) (Checkpoint, bool) {
	if p == nil {
		return Checkpoint{}, false
	}
	for _, cp := range p.Checkpoints {
		if cp.Joint == joint {
			return cp, true
		}
	}
	return Checkpoint{}, false
}
