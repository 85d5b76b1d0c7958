// Package dedup tracks the shared artifact names already scheduled for
// emission within one generation run.
//
// Shared artifacts (variable/parameter enumerations, constructor-argument
// types) are keyed by fewer dimensions than the combinations that reference
// them, so many combinations map onto one artifact. The registry here is
// what makes that emission idempotent: the first combination to need an
// artifact emits it, every later one finds the name taken.
//
// A Registry is created empty per generation run and passed explicitly down
// the pipeline. It is not safe for concurrent use and is never shared
// between runs.
package dedup

// Registry is a set of emitted symbol names that remembers insertion order.
type Registry struct {
	names map[string]struct{}
	order []string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// TryRegister inserts name and reports true if it was absent. A false
// return means the artifact was already scheduled; the registry is not
// modified in that case.
func (r *Registry) TryRegister(name string) bool {
	if _, ok := r.names[name]; ok {
		return false
	}
	r.names[name] = struct{}{}
	r.order = append(r.order, name)
	return true
}

// Has reports whether name has been registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.names[name]
	return ok
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return len(r.order)
}

// Names returns the registered names in first-registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
