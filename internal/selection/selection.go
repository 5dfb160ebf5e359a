// Package selection holds the set of images chosen during one picker session.
//
// The set is ordered by insertion and bounded by a capacity. Every call that
// changes the set notifies observers exactly once, after the change; calls that
// change nothing notify no one. The model is not safe for concurrent use: it
// lives on the UI loop like the controllers that share it.
package selection

import (
	"errors"
	"fmt"
	"slices"

	"github.com/llehouerou/vitrine/internal/media"
)

// Capacity rejections. Match with errors.Is.
var (
	ErrFull        = errors.New("selection is full")
	ErrWouldExceed = errors.New("selection would exceed its capacity")
)

// CapacityError describes a rejected mutation.
type CapacityError struct {
	Reason    error
	Max       int
	Size      int
	Requested int
}

func (e *CapacityError) Error() string {
	if e.Reason == ErrWouldExceed {
		return fmt.Sprintf("%v: %d selected, %d more requested, max %d", e.Reason, e.Size, e.Requested, e.Max)
	}
	return fmt.Sprintf("%v: %d of %d selected", e.Reason, e.Size, e.Max)
}

func (e *CapacityError) Is(target error) bool {
	return target == e.Reason
}

func (e *CapacityError) Unwrap() error {
	return e.Reason
}

// Outcome tells what a successful Toggle did.
type Outcome int

const (
	Added Outcome = iota + 1
	Removed
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Removed:
		return "removed"
	}
	return "none"
}

// Changed is delivered to observers after each mutating call.
type Changed struct {
	Size int
}

type observer struct {
	id int
	fn func(Changed)
}

// Model is an ordered, bounded set of refs.
type Model struct {
	refs      []media.Ref
	index     map[media.Ref]struct{}
	max       int
	observers []observer
	nextID    int
}

// New returns a model with capacity max seeded with initial. Seeding follows
// Replace rules and notifies no one. A negative max is treated as zero.
func New(maxSelection int, initial ...media.Ref) *Model {
	m := &Model{
		index: make(map[media.Ref]struct{}),
		max:   max(maxSelection, 0),
	}
	m.refs = m.normalize(initial)
	for _, r := range m.refs {
		m.index[r] = struct{}{}
	}
	return m
}

// Max returns the capacity.
func (m *Model) Max() int {
	return m.max
}

// Size returns the number of selected refs.
func (m *Model) Size() int {
	return len(m.refs)
}

// Full reports whether no more refs can be added.
func (m *Model) Full() bool {
	return len(m.refs) >= m.max
}

// Contains reports whether ref is selected.
func (m *Model) Contains(ref media.Ref) bool {
	_, ok := m.index[ref]
	return ok
}

// IndexOf returns the 1-based selection order of ref, or 0 if not selected.
func (m *Model) IndexOf(ref media.Ref) int {
	if !m.Contains(ref) {
		return 0
	}
	return slices.Index(m.refs, ref) + 1
}

// Snapshot returns the selected refs in insertion order. The slice is a copy.
func (m *Model) Snapshot() []media.Ref {
	return slices.Clone(m.refs)
}

// Toggle removes ref if selected, else appends it when there is room.
func (m *Model) Toggle(ref media.Ref) (Outcome, error) {
	if m.Contains(ref) {
		m.refs = slices.DeleteFunc(m.refs, func(r media.Ref) bool { return r == ref })
		delete(m.index, ref)
		m.notify()
		return Removed, nil
	}
	if m.Full() {
		return 0, &CapacityError{Reason: ErrFull, Max: m.max, Size: len(m.refs), Requested: 1}
	}
	m.refs = append(m.refs, ref)
	m.index[ref] = struct{}{}
	m.notify()
	return Added, nil
}

// AddAll appends every ref of refs not already selected, or none of them if
// they would not all fit. It returns the number of refs added.
func (m *Model) AddAll(refs []media.Ref) (int, error) {
	var fresh []media.Ref
	seen := make(map[media.Ref]struct{}, len(refs))
	for _, r := range refs {
		if m.Contains(r) {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		fresh = append(fresh, r)
	}
	if len(fresh) == 0 {
		return 0, nil
	}
	if len(m.refs)+len(fresh) > m.max {
		return 0, &CapacityError{Reason: ErrWouldExceed, Max: m.max, Size: len(m.refs), Requested: len(fresh)}
	}
	m.refs = append(m.refs, fresh...)
	for _, r := range fresh {
		m.index[r] = struct{}{}
	}
	m.notify()
	return len(fresh), nil
}

// Replace sets the contents to the deduplicated prefix of refs that fits the
// capacity. Refs past the capacity are dropped.
func (m *Model) Replace(refs []media.Ref) {
	next := m.normalize(refs)
	if slices.Equal(next, m.refs) {
		return
	}
	m.refs = next
	clear(m.index)
	for _, r := range next {
		m.index[r] = struct{}{}
	}
	m.notify()
}

// Clear empties the selection.
func (m *Model) Clear() {
	if len(m.refs) == 0 {
		return
	}
	m.refs = nil
	clear(m.index)
	m.notify()
}

// Subscribe registers fn for change notifications. Observers are called in
// subscription order. The returned function removes the observer.
func (m *Model) Subscribe(fn func(Changed)) (unsubscribe func()) {
	m.nextID++
	id := m.nextID
	m.observers = append(m.observers, observer{id: id, fn: fn})
	return func() {
		m.observers = slices.DeleteFunc(m.observers, func(o observer) bool { return o.id == id })
	}
}

func (m *Model) normalize(refs []media.Ref) []media.Ref {
	out := make([]media.Ref, 0, min(len(refs), m.max))
	seen := make(map[media.Ref]struct{}, len(refs))
	for _, r := range refs {
		if len(out) == m.max {
			break
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

func (m *Model) notify() {
	ev := Changed{Size: len(m.refs)}
	// Copy so an observer may unsubscribe while being notified.
	for _, o := range slices.Clone(m.observers) {
		o.fn(ev)
	}
}
