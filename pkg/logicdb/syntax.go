package logicdb

import "strings"

// QuerySyntaxProcess is the external syntax preprocessor (§6): given a
// surface expression in which every atom is still a Constant, it rewrites
// every atom whose printed form begins with "?" into the internal
// variable form. Non-symbol atoms are unchanged; pairs are walked
// structurally.
func QuerySyntaxProcess(t Term) Term {
	switch v := t.(type) {
	case Constant:
		if s, ok := v.Value.(string); ok && strings.HasPrefix(s, "?") && s != "?" {
			return Variable{Name: s[1:]}
		}
		return v
	case *Pair:
		return &Pair{Head: QuerySyntaxProcess(v.Head), Tail: QuerySyntaxProcess(v.Tail)}
	default:
		return t
	}
}
