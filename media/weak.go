package media

import "weak"

// Weak is a non-owning handle. It doesn't keep the referent alive and
// doesn't extend its lifetime beyond the owner's.
type Weak[T any] struct {
	p weak.Pointer[T]
}

type disposable interface {
	Disposed() bool
}

// Downgrade returns a non-owning handle to v.
func Downgrade[T any](v *T) Weak[T] {
	return Weak[T]{p: weak.Make(v)}
}

// Upgrade returns an owning pointer to the referent. False is returned if
// the referent was collected or disposed by its owner.
func (w Weak[T]) Upgrade() (*T, bool) {
	v := w.p.Value()
	if v == nil {
		return nil, false
	}
	if d, ok := any(v).(disposable); ok && d.Disposed() {
		return nil, false
	}
	return v, true
}
