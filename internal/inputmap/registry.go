package inputmap

// registry maps child names to child handles and remembers registration order.
type registry[T comparable] struct {
	order  []string
	byName map[string]T
}

func newRegistry[T comparable]() *registry[T] {
	return &registry[T]{byName: make(map[string]T)}
}

func (r *registry[T]) get(name string) (T, bool) {
	v, ok := r.byName[name]
	return v, ok
}

// put stores v under name and returns the value it replaced, if any.
// An existing name keeps its position.
func (r *registry[T]) put(name string, v T) (old T, replaced bool) {
	old, replaced = r.byName[name]
	if !replaced {
		r.order = append(r.order, name)
	}
	r.byName[name] = v
	return old, replaced
}

// remove deletes name only if it still maps to v.
func (r *registry[T]) remove(name string, v T) bool {
	cur, ok := r.byName[name]
	if !ok || cur != v {
		return false
	}
	delete(r.byName, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// values returns the children in registration order.
func (r *registry[T]) values() []T {
	out := make([]T, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.byName[n])
	}
	return out
}

func (r *registry[T]) names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *registry[T]) snapshot() map[string]T {
	out := make(map[string]T, len(r.byName))
	for n, v := range r.byName {
		out[n] = v
	}
	return out
}
