package utils

// Lazy is a compute-once cell. The first call to Get runs the compute
// function and caches both the value and the error; every later call returns
// the cached pair without re-running compute.
//
// A Lazy is confined to a single owner and is not safe for concurrent use.
// The resolved flag is the uninitialized sentinel: a zero Lazy is ready to
// use.
type Lazy[T any] struct {
	resolved bool
	value    T
	err      error
}

// Get returns the memoized value, computing it on first use.
func (l *Lazy[T]) Get(compute func() (T, error)) (T, error) {
	if !l.resolved {
		l.value, l.err = compute()
		l.resolved = true
	}
	return l.value, l.err
}

// Resolved reports whether the value has been computed.
func (l *Lazy[T]) Resolved() bool {
	return l.resolved
}
