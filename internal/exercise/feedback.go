package exercise

import "math"

// FeedbackRule turns the angles of one evaluated frame into instantaneous
// coaching lines.
type FeedbackRule interface {
	Feedback(angles map[string]float64) []string
}

// FeedbackFunc adapts a plain function to FeedbackRule.
type FeedbackFunc func(angles map[string]float64) []string

func (f FeedbackFunc) Feedback(angles map[string]float64) []string {
	return f(angles)
}

// Band is an angle interval with its message. Infinite bounds make it one-sided.
type Band struct {
	Low       float64
	High      float64
	Exclusive bool
	Message   string
}

func (b Band) Contains(angle float64) bool {
	if b.Exclusive {
		return angle > b.Low && angle < b.High
	}
	return angle >= b.Low && angle <= b.High
}

// Below matches angle < v.
func Below(v float64, msg string) Band {
	return Band{Low: math.Inf(-1), High: v, Exclusive: true, Message: msg}
}

// Above matches angle > v.
func Above(v float64, msg string) Band {
	return Band{Low: v, High: math.Inf(1), Exclusive: true, Message: msg}
}

// AtLeast matches angle >= v.
func AtLeast(v float64, msg string) Band {
	return Band{Low: v, High: math.Inf(1), Message: msg}
}

// Within matches lo <= angle <= hi.
func Within(lo, hi float64, msg string) Band {
	return Band{Low: lo, High: hi, Message: msg}
}

// Inside matches lo < angle < hi.
func Inside(lo, hi float64, msg string) Band {
	return Band{Low: lo, High: hi, Exclusive: true, Message: msg}
}

// JointRule checks one joint against its bands; the first matching band wins.
// Default stands in for the angle when the joint was not measured this frame.
type JointRule struct {
	Joint   string
	Default float64
	Bands   []Band
}

// FeedbackTable is a FeedbackRule built from joint rules, evaluated in order.
type FeedbackTable []JointRule

func (ft FeedbackTable) Feedback(angles map[string]float64) []string {
	var feedback []string
	for _, rule := range ft {
		angle, ok := angles[rule.Joint]
		if !ok {
			angle = rule.Default
		}
		for _, band := range rule.Bands {
			if band.Contains(angle) {
				feedback = append(feedback, band.Message)
				break
			}
		}
	}
	return feedback
}
