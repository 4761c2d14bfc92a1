package ui

// FocusRing tracks which of a fixed set of controls has focus and rotates
// through them in order, wrapping at both ends.
type FocusRing[T comparable] struct {
	Current  T
	Order    []T
	OnChange func(from, to T)
}

// NewFocusRing returns a ring focused on the first element of order.
func NewFocusRing[T comparable](order ...T) *FocusRing[T] {
	r := &FocusRing[T]{Order: order}
	if len(order) > 0 {
		r.Current = order[0]
	}
	return r
}

func (r *FocusRing[T]) index() int {
	for i, id := range r.Order {
		if id == r.Current {
			return i
		}
	}
	return -1
}

func (r *FocusRing[T]) move(to int) T {
	from := r.Current
	r.Current = r.Order[to]
	if r.OnChange != nil && from != r.Current {
		r.OnChange(from, r.Current)
	}
	return r.Current
}

// Next focuses the following control.
func (r *FocusRing[T]) Next() T {
	if len(r.Order) == 0 {
		return r.Current
	}
	return r.move((r.index() + 1) % len(r.Order))
}

// Prev focuses the preceding control.
func (r *FocusRing[T]) Prev() T {
	if len(r.Order) == 0 {
		return r.Current
	}
	i := r.index() - 1
	if i < 0 {
		i = len(r.Order) - 1
	}
	return r.move(i)
}

// SetFocus focuses id. It returns false if id is not part of the ring.
func (r *FocusRing[T]) SetFocus(id T) bool {
	for i, o := range r.Order {
		if o == id {
			r.move(i)
			return true
		}
	}
	return false
}

// Is reports whether id has focus.
func (r *FocusRing[T]) Is(id T) bool { return r.Current == id }
