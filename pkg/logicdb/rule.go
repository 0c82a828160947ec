package logicdb

import "fmt"

// alwaysTrueTag is the form tag for a rule body that always succeeds.
const alwaysTrueTag = "always-true"

// AlwaysTrueForm is the default body substituted for a rule whose BODY
// field is omitted: (always-true).
var AlwaysTrueForm Term = ListOf(Constant{Value: alwaysTrueTag})

// Rule is a Horn-clause-like implication: Conclusion holds whenever Body,
// a query term itself, is satisfiable. Conclusion and Body are
// implicitly universally quantified over the variables appearing in
// them.
type Rule struct {
	Conclusion Term
	Body       Term
}

// ParseRule parses a term of the form (rule CONCLUSION) or
// (rule CONCLUSION BODY) into a Rule. A missing BODY defaults to
// (always-true); a malformed rule body field (neither absent nor a
// well-formed term) is evaluated as-is and will fail at qeval time rather
// than here.
func ParseRule(term Term) (*Rule, error) {
	items, ok := ToSlice(term)
	if !ok || len(items) < 2 {
		return nil, fmt.Errorf("logicdb: malformed rule %v", term)
	}
	tag, ok := items[0].(Constant)
	if !ok {
		return nil, fmt.Errorf("logicdb: expected rule tag, got %v", items[0])
	}
	if s, ok := tag.Value.(string); !ok || s != "rule" {
		return nil, fmt.Errorf("logicdb: expected rule tag, got %v", items[0])
	}
	body := AlwaysTrueForm
	if len(items) >= 3 {
		body = items[2]
	}
	return &Rule{Conclusion: items[1], Body: body}, nil
}

// AlphaRename rewrites every variable in the rule's conclusion and body
// to carry generation id gen, producing a fresh copy isolated from every
// other application of the same rule (§4.11). Because variable identity
// is (Name, Gen) value equality rather than pointer identity, a single
// pass that stamps the new generation on each Variable node suffices; no
// rename map is required.
func AlphaRename(rule *Rule, gen int64) *Rule {
	return &Rule{
		Conclusion: renameTerm(rule.Conclusion, gen),
		Body:       renameTerm(rule.Body, gen),
	}
}

func renameTerm(t Term, gen int64) Term {
	switch v := t.(type) {
	case Variable:
		return Variable{Name: v.Name, Gen: int(gen)}
	case *Pair:
		return &Pair{Head: renameTerm(v.Head, gen), Tail: renameTerm(v.Tail, gen)}
	default:
		return t
	}
}
