package logicdb

// Unify is the symmetric counterpart of Match: both p1 and p2 may contain
// variables. It enforces the occurs-check, rejecting equations with no
// finite solution (e.g. ?x = (f ?x)), which would otherwise let a frame
// become cyclic and provoke nontermination during instantiation.
func Unify(p1, p2 Term, frame *Frame) *Frame {
	if frame == Failed {
		return Failed
	}
	if p1.Equal(p2) {
		return frame
	}
	if v, ok := p1.(Variable); ok {
		return extendIfPossible(v, p2, frame)
	}
	if v, ok := p2.(Variable); ok {
		return extendIfPossible(v, p1, frame)
	}
	pp1, ok1 := p1.(*Pair)
	pp2, ok2 := p2.(*Pair)
	if ok1 && ok2 {
		return Unify(pp1.Tail, pp2.Tail, Unify(pp1.Head, pp2.Head, frame))
	}
	return Failed
}

func extendIfPossible(v Variable, val Term, frame *Frame) *Frame {
	if bound, ok := frame.Lookup(v); ok {
		return Unify(bound, val, frame)
	}
	if vv, ok := val.(Variable); ok {
		if bound, ok := frame.Lookup(vv); ok {
			return Unify(v, bound, frame)
		}
	}
	if dependsOn(val, v, frame) {
		return Failed
	}
	return frame.Extend(v, val)
}

// dependsOn reports whether v occurs free in expr under frame's current
// bindings: a variable equal to v yields true; a bound variable is walked
// through its binding; a pair ors over car and cdr.
func dependsOn(expr Term, v Variable, frame *Frame) bool {
	switch e := expr.(type) {
	case Variable:
		if e.Equal(v) {
			return true
		}
		if bound, ok := frame.Lookup(e); ok {
			return dependsOn(bound, v, frame)
		}
		return false
	case *Pair:
		return dependsOn(e.Head, v, frame) || dependsOn(e.Tail, v, frame)
	default:
		return false
	}
}
