package exercise

import (
	"fmt"
	"sync"
)

type entry struct {
	exercise Exercise
	feedback FeedbackRule
	coaching *CoachingProfile
}

// Registry holds exercise configuration keyed by exercise id. Adding an exercise,
// its feedback rules or its coaching profile never requires engine changes.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	order   []string
}

type RegisterOption func(e *entry)

func WithFeedback(rule FeedbackRule) RegisterOption {
	return func(e *entry) {
		e.feedback = rule
	}
}

func WithCoaching(profile CoachingProfile) RegisterOption {
	return func(e *entry) {
		e.coaching = &profile
	}
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*entry),
	}
}

// Default returns a registry populated with the built-in exercises.
func Default() *Registry {
	r := NewRegistry()
	for _, b := range builtins() {
		if err := r.Register(b.exercise, b.opts...); err != nil {
			panic(fmt.Sprintf("register builtin exercise: %s", err))
		}
	}
	return r
}

func (r *Registry) Register(ex Exercise, opts ...RegisterOption) error {
	if err := ex.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[ex.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateExercise, ex.ID)
	}

	e := &entry{exercise: ex.clone()}
	for _, opt := range opts {
		opt(e)
	}
	r.entries[ex.ID] = e
	r.order = append(r.order, ex.ID)
	return nil
}

// Get returns a copy of the exercise with the given id.
func (r *Registry) Get(id string) (*Exercise, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	ex := e.exercise.clone()
	return &ex, true
}

// List returns all exercises in registration order.
func (r *Registry) List() []Exercise {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Exercise, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.entries[id].exercise.clone())
	}
	return list
}

func (r *Registry) ByCategory(category Category) []Exercise {
	var list []Exercise
	for _, ex := range r.List() {
		if ex.Category == category {
			list = append(list, ex)
		}
	}
	return list
}

// Feedback returns the realtime feedback rule of an exercise, nil if it has none.
func (r *Registry) Feedback(id string) FeedbackRule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.entries[id]; ok {
		return e.feedback
	}
	return nil
}

func (r *Registry) Coaching(id string) (*CoachingProfile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok || e.coaching == nil {
		return nil, false
	}
	return e.coaching, true
}
