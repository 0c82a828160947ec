package logicdb

// UnboundHandler is invoked by Instantiate when it encounters a variable
// with no binding in the frame. It either produces a placeholder term
// (result printing) or signals a fatal error (the lisp-value use).
type UnboundHandler func(v Variable, frame *Frame) Term

// Instantiate tree-walks expr, replacing every bound variable with its
// (recursively resolved) value and calling unbound for every variable
// that has no binding in frame. Recursing into a bound value resolves
// binding chains (a variable bound to another bound variable, etc).
func Instantiate(expr Term, frame *Frame, unbound UnboundHandler) Term {
	switch t := expr.(type) {
	case Variable:
		if bound, ok := frame.Lookup(t); ok {
			return Instantiate(bound, frame, unbound)
		}
		return unbound(t, frame)
	case *Pair:
		return &Pair{
			Head: Instantiate(t.Head, frame, unbound),
			Tail: Instantiate(t.Tail, frame, unbound),
		}
	default:
		return expr
	}
}

// ContractQuestionMark renders a variable back to its surface form: ?x
// for a user variable, ?x-7 for a rule-generated one carrying Gen 7.
func ContractQuestionMark(v Variable) string {
	return v.String()
}

// DisplayUnbound is the UnboundHandler used for result presentation: it
// rewrites an unbound variable to a constant holding its surface ?name
// form, so printed results read like the original query syntax.
func DisplayUnbound(v Variable, _ *Frame) Term {
	return Constant{Value: ContractQuestionMark(v)}
}

// PredicateUnbound is the UnboundHandler used when instantiating a
// lisp-value call: any variable left unbound is a fatal condition, since
// the host predicate cannot be invoked with a free variable as an
// argument (§4.8, §7).
func PredicateUnbound(v Variable, _ *Frame) Term {
	fatalf(ErrUnboundInPredicate, "variable %s is unbound", ContractQuestionMark(v))
	return nil // unreachable; fatalf panics
}
