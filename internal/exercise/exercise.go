package exercise

import (
	"errors"
	"fmt"

	"github.com/2beens/posecoach/internal/pose"
)

var (
	ErrInvalidExercise   = errors.New("invalid exercise")
	ErrDuplicateExercise = errors.New("exercise already registered")
)

// Category can be one of:
//   - upper
//   - lower
//   - core
//   - fullbody
type Category string

const (
	CategoryUpper    Category = "upper"
	CategoryLower    Category = "lower"
	CategoryCore     Category = "core"
	CategoryFullBody Category = "fullbody"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryUpper,
		CategoryLower,
		CategoryCore,
		CategoryFullBody:
		return true
	default:
		return false
	}
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) String() string {
	return string(d)
}

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner,
		DifficultyIntermediate,
		DifficultyAdvanced:
		return true
	default:
		return false
	}
}

// AngleSpec defines which three landmarks form a joint angle and the
// acceptable range for correct form.
type AngleSpec struct {
	Joint    string       `json:"joint"`
	Points   pose.Triplet `json:"points"`
	MinAngle float64      `json:"minAngle"`
	MaxAngle float64      `json:"maxAngle"`
	Feedback string       `json:"feedback,omitempty"`
}

// Exercise is read-only configuration. Angles keep their declared order,
// and the first entry is the primary joint used for repetition counting.
type Exercise struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Category      Category    `json:"category"`
	Difficulty    Difficulty  `json:"difficulty"`
	Static        bool        `json:"static"`
	MET           float64     `json:"met"`
	Angles        []AngleSpec `json:"angles"`
	KeyPoints     []string    `json:"keyPoints"`
	TargetMuscles []string    `json:"targetMuscles"`
}

// PrimaryJoint returns the first declared joint.
func (e *Exercise) PrimaryJoint() (string, bool) {
	if e == nil || len(e.Angles) == 0 {
		return "", false
	}
	return e.Angles[0].Joint, true
}

func (e *Exercise) Spec(joint string) (AngleSpec, bool) {
	if e == nil {
		return AngleSpec{}, false
	}
	for _, s := range e.Angles {
		if s.Joint == joint {
			return s, true
		}
	}
	return AngleSpec{}, false
}

// Joints returns the declared joint names in order.
func (e *Exercise) Joints() []string {
	if e == nil {
		return nil
	}
	joints := make([]string, 0, len(e.Angles))
	for _, s := range e.Angles {
		joints = append(joints, s.Joint)
	}
	return joints
}

func (e *Exercise) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidExercise)
	}
	if e.Category != "" && !e.Category.IsValid() {
		return fmt.Errorf("%w: [%s] unknown category %q", ErrInvalidExercise, e.ID, e.Category)
	}
	if e.Difficulty != "" && !e.Difficulty.IsValid() {
		return fmt.Errorf("%w: [%s] unknown difficulty %q", ErrInvalidExercise, e.ID, e.Difficulty)
	}

	seen := make(map[string]bool, len(e.Angles))
	for _, s := range e.Angles {
		if s.Joint == "" {
			return fmt.Errorf("%w: [%s] angle spec without joint name", ErrInvalidExercise, e.ID)
		}
		if seen[s.Joint] {
			return fmt.Errorf("%w: [%s] joint %q declared twice", ErrInvalidExercise, e.ID, s.Joint)
		}
		seen[s.Joint] = true
		if s.MinAngle > s.MaxAngle {
			return fmt.Errorf("%w: [%s] joint %q min angle above max", ErrInvalidExercise, e.ID, s.Joint)
		}
	}
	return nil
}

// clone returns a deep copy so registry callers cannot mutate shared configuration.
func (e Exercise) clone() Exercise {
	e.Angles = append([]AngleSpec(nil), e.Angles...)
	e.KeyPoints = append([]string(nil), e.KeyPoints...)
	e.TargetMuscles = append([]string(nil), e.TargetMuscles...)
	return e
}
