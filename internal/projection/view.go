// Package projection provides read-only, filtered views over the roster's
// entity lists for the presentation layer.
package projection

// Predicate selects the elements a View shows.
type Predicate[T any] func(T) bool

// All matches every element.
func All[T any](T) bool { return true }

type listener struct {
	id int
	fn func()
}

// View is a filtered window over a source list. It holds no copy of the
// data: Items asks the source each time, so a View can never show a state
// the source has not published. Listeners are told when the filter changes
// or when the owner reports a change with Changed.
type View[T any] struct {
	source    func() []T
	filter    Predicate[T]
	listeners []listener
	nextID    int
}

// New returns a View over source that shows every element.
func New[T any](source func() []T) *View[T] {
	return &View[T]{source: source, filter: All[T]}
}

// SetFilter replaces the predicate. A nil predicate shows everything.
func (v *View[T]) SetFilter(pred Predicate[T]) {
	if pred == nil {
		pred = All[T]
	}
	v.filter = pred
	v.Changed()
}

// Filter returns the current predicate.
func (v *View[T]) Filter() Predicate[T] {
	return v.filter
}

// Items returns the matching elements in source order.
func (v *View[T]) Items() []T {
	all := v.source()
	out := make([]T, 0, len(all))
	for _, x := range all {
		if v.filter(x) {
			out = append(out, x)
		}
	}
	return out
}

// Len returns the number of matching elements.
func (v *View[T]) Len() int {
	n := 0
	for _, x := range v.source() {
		if v.filter(x) {
			n++
		}
	}
	return n
}

// Subscribe registers fn to run after every change. The returned function
// removes the registration.
func (v *View[T]) Subscribe(fn func()) (cancel func()) {
	id := v.nextID
	v.nextID++
	v.listeners = append(v.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range v.listeners {
			if l.id == id {
				v.listeners = append(v.listeners[:i], v.listeners[i+1:]...)
				return
			}
		}
	}
}

// Changed tells listeners the view's content may differ.
func (v *View[T]) Changed() {
	for _, l := range append([]listener(nil), v.listeners...) {
		l.fn()
	}
}
