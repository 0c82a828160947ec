package logicdb

// andForm implements conjunction: each conjunct's output frames feed
// into the next, threading extensions through the pipeline (§4.8).
func andForm(db *Database, operands Term, frames *FrameStream) *FrameStream {
	conjuncts, ok := ToSlice(operands)
	if !ok {
		fatalf(ErrInvalidQuery, "and: malformed operand list %v", operands)
	}
	return andSeq(db, conjuncts, frames)
}

func andSeq(db *Database, conjuncts []Term, frames *FrameStream) *FrameStream {
	if len(conjuncts) == 0 {
		return frames
	}
	return andSeq(db, conjuncts[1:], qeval(db, conjuncts[0], frames))
}

// orForm implements disjunction: fairly interleaved across disjuncts so
// that an infinite first disjunct never starves the rest (§4.8).
func orForm(db *Database, operands Term, frames *FrameStream) *FrameStream {
	disjuncts, ok := ToSlice(operands)
	if !ok {
		fatalf(ErrInvalidQuery, "or: malformed operand list %v", operands)
	}
	return orSeq(db, disjuncts, frames)
}

func orSeq(db *Database, disjuncts []Term, frames *FrameStream) *FrameStream {
	if len(disjuncts) == 0 {
		return nil
	}
	first := qeval(db, disjuncts[0], frames)
	rest := func() *FrameStream { return orSeq(db, disjuncts[1:], frames) }
	return InterleaveDelayed(first, rest)
}

// notFormHandler validates not's single-operand arity, then delegates to
// notForm.
func notFormHandler(db *Database, operands Term, frames *FrameStream) *FrameStream {
	items, ok := ToSlice(operands)
	if !ok || len(items) != 1 {
		fatalf(ErrInvalidQuery, "not: expected exactly one operand, got %v", operands)
	}
	return notForm(db, items[0], frames)
}

// notForm is negation-as-failure relative to the current frame: for each
// frame f, if qeval(operand, {f}) is empty, f passes through unchanged;
// otherwise f is dropped. This is not sound under an open-world
// assumption and cannot be used to generate bindings — operand is
// evaluated only to test satisfiability, never for its bindings.
func notForm(db *Database, operand Term, frames *FrameStream) *FrameStream {
	for frames != nil {
		f := frames.Head
		if qeval(db, operand, Singleton(f)) == nil {
			rest := frames
			return Cons(f, func() *FrameStream { return notForm(db, operand, rest.Tail()) })
		}
		frames = frames.Tail()
	}
	return nil
}

// lispValueForm is the host-predicate filter: for each frame f, operands
// (already a fully-formed compound call term, e.g. (> ?age 30)) is
// instantiated under f — every variable it mentions must be bound, else
// PredicateUnbound raises a fatal UnboundInPredicate — then the
// instantiated call is handed to the database's predicate registry. f
// passes through iff the predicate returns true (§4.8, §6).
func lispValueForm(db *Database, operands Term, frames *FrameStream) *FrameStream {
	return filterFrames(frames, func(f *Frame) bool {
		call := Instantiate(operands, f, PredicateUnbound)
		ok, err := db.Predicates.Invoke(call)
		if err != nil {
			fatalf(ErrPredicateError, "%v", err)
		}
		return ok
	})
}

func filterFrames(s *FrameStream, pred func(*Frame) bool) *FrameStream {
	for s != nil {
		if pred(s.Head) {
			cur := s
			return Cons(cur.Head, func() *FrameStream { return filterFrames(cur.Tail(), pred) })
		}
		s = s.Tail()
	}
	return nil
}

// alwaysTrueForm returns the input stream unchanged; it is the default
// body for a rule whose BODY field was omitted.
func alwaysTrueForm(_ *Database, _ Term, frames *FrameStream) *FrameStream {
	return frames
}
