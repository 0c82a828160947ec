package logicdb

import (
	"fmt"
	"sync"
)

// Predicate is a host-language function usable from the lisp-value form.
// It receives the fully-instantiated argument terms and returns a
// boolean-like result. It must be pure; an error return surfaces as a
// fatal PredicateError.
type Predicate func(args []Term) (bool, error)

// PredicateRegistry is a narrow, named-predicate registry for the
// lisp-value escape hatch. Unlike the source material, which evaluates
// arbitrary host code, the registry only ever invokes a predicate that
// was explicitly registered by name; there is no general code-evaluation
// path.
type PredicateRegistry struct {
	mu    sync.RWMutex
	table map[string]Predicate
}

// NewPredicateRegistry returns an empty registry.
func NewPredicateRegistry() *PredicateRegistry {
	return &PredicateRegistry{table: make(map[string]Predicate)}
}

// Register adds or replaces the predicate bound to name.
func (r *PredicateRegistry) Register(name string, p Predicate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table[name] = p
}

// Invoke looks up the predicate named by call's head and applies it to
// call's instantiated arguments verbatim. call must be a fully
// instantiated compound term (predicate-name arg1 arg2 ...).
func (r *PredicateRegistry) Invoke(call Term) (bool, error) {
	p, ok := call.(*Pair)
	if !ok {
		return false, fmt.Errorf("lisp-value: call %v is not a compound form", call)
	}
	nameConst, ok := p.Head.(Constant)
	if !ok {
		return false, fmt.Errorf("lisp-value: predicate name %v is not a symbol", p.Head)
	}
	name, ok := nameConst.Value.(string)
	if !ok {
		return false, fmt.Errorf("lisp-value: predicate name %v is not a symbol", nameConst.Value)
	}
	args, ok := ToSlice(p.Tail)
	if !ok {
		return false, fmt.Errorf("lisp-value: malformed argument list in %v", call)
	}

	r.mu.RLock()
	fn, found := r.table[name]
	r.mu.RUnlock()
	if !found {
		return false, fmt.Errorf("lisp-value: unknown predicate %q", name)
	}
	return fn(args)
}
