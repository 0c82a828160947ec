package logicdb

// Match performs one-sided pattern matching: pattern may contain
// variables, datum is treated as variable-free (it is an assertion).
// Returns the extended frame, or Failed on mismatch.
func Match(pattern, datum Term, frame *Frame) *Frame {
	if frame == Failed {
		return Failed
	}
	if pattern.Equal(datum) {
		return frame
	}
	if v, ok := pattern.(Variable); ok {
		return matchVar(v, datum, frame)
	}
	pp, pOK := pattern.(*Pair)
	dp, dOK := datum.(*Pair)
	if pOK && dOK {
		return Match(pp.Tail, dp.Tail, Match(pp.Head, dp.Head, frame))
	}
	return Failed
}

func matchVar(v Variable, datum Term, frame *Frame) *Frame {
	if bound, ok := frame.Lookup(v); ok {
		return Match(bound, datum, frame)
	}
	return frame.Extend(v, datum)
}
