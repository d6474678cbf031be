package world

import "fmt"

// Handle identifies an arena slot and encodes a generation for stale-handle
// detection. The zero Handle never resolves.
type Handle struct {
	index      uint32
	generation uint32
}

// IsZero reports whether the handle is the zero value.
func (h Handle) IsZero() bool {
	return h.generation == 0
}

// String renders the handle for logs.
func (h Handle) String() string {
	return fmt.Sprintf("%d:%d", h.index, h.generation)
}

type slot[T any] struct {
	generation uint32
	alive      bool
	value      T
}

// Arena stores values in reusable slots addressed by generational handles.
// Removing a value bumps its slot's generation on reuse, so a handle held by
// a background task can never resolve to a different entity.
// Arena is not safe for concurrent use; World serializes access.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// Insert stores v and returns its handle, recycling freed slots first.
func (a *Arena[T]) Insert(v T) Handle {
	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		index = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{})
	}

	s := &a.slots[index]
	s.generation++
	s.alive = true
	s.value = v
	a.live++
	return Handle{index: index, generation: s.generation}
}

// Get returns a pointer to the value behind h, or false if h is stale.
// The pointer is valid until the next Insert.
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	if !a.valid(h) {
		return nil, false
	}
	return &a.slots[h.index].value, true
}

// Contains reports whether h still resolves.
func (a *Arena[T]) Contains(h Handle) bool {
	return a.valid(h)
}

// Remove deletes the value behind h and returns it.
// Removing a stale handle is a no-op that returns false.
func (a *Arena[T]) Remove(h Handle) (T, bool) {
	var zero T
	if !a.valid(h) {
		return zero, false
	}
	s := &a.slots[h.index]
	v := s.value
	s.value = zero
	s.alive = false
	a.free = append(a.free, h.index)
	a.live--
	return v, true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.live
}

// Handles returns the live handles in slot order.
// Callers may remove values while ranging over the returned slice.
func (a *Arena[T]) Handles() []Handle {
	handles := make([]Handle, 0, a.live)
	for i := range a.slots {
		if a.slots[i].alive {
			handles = append(handles, Handle{index: uint32(i), generation: a.slots[i].generation})
		}
	}
	return handles
}

// Values returns copies of the live values in slot order.
func (a *Arena[T]) Values() []T {
	values := make([]T, 0, a.live)
	for i := range a.slots {
		if a.slots[i].alive {
			values = append(values, a.slots[i].value)
		}
	}
	return values
}

func (a *Arena[T]) valid(h Handle) bool {
	if h.IsZero() || int(h.index) >= len(a.slots) {
		return false
	}
	s := &a.slots[h.index]
	return s.alive && s.generation == h.generation
}
