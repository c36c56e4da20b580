package payment

import "sync"

// Registry holds the callbacks of in-flight payments keyed by provider
// reference. Events for unknown references are dropped: a late webhook for a
// session that already closed must not panic or misfire.
type Registry struct {
	mu        sync.Mutex
	callbacks map[string]Callbacks
}

func NewRegistry() *Registry {
	return &Registry{callbacks: make(map[string]Callbacks)}
}

func (r *Registry) Register(ref string, cb Callbacks) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks[ref] = cb
}

func (r *Registry) take(ref string) (Callbacks, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cb, ok := r.callbacks[ref]
	if ok {
		delete(r.callbacks, ref)
	}
	return cb, ok
}

func (r *Registry) Success(ref string) {
	if cb, ok := r.take(ref); ok && cb.OnSuccess != nil {
		cb.OnSuccess(ref)
	}
}

func (r *Registry) Failure(ref, reason string) {
	if cb, ok := r.take(ref); ok && cb.OnFailure != nil {
		cb.OnFailure(reason)
	}
}

func (r *Registry) Dismiss(ref string) {
	if cb, ok := r.take(ref); ok && cb.OnDismiss != nil {
		cb.OnDismiss()
	}
}
