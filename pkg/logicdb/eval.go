package logicdb

import "sync"

// FormHandler transforms an input frame stream into an output frame
// stream for one compound-query form. operands is the form's tail (the
// query term minus its leading tag).
type FormHandler func(db *Database, operands Term, frames *FrameStream) *FrameStream

var (
	formRegistryMu sync.RWMutex
	formRegistry   = map[string]FormHandler{}
)

// RegisterForm installs (or replaces) the handler for a form tag. The
// five built-in tags (and, or, not, lisp-value, always-true) are
// registered in init(); callers may register additional user-defined
// forms the same way. This mutable table mirrors the source material's
// dynamic dispatch while keeping the three per-database registers
// (assertions, rules, index) as explicit Database fields rather than
// process-wide state.
func RegisterForm(tag string, h FormHandler) {
	formRegistryMu.Lock()
	defer formRegistryMu.Unlock()
	formRegistry[tag] = h
}

func lookupForm(tag string) (FormHandler, bool) {
	formRegistryMu.RLock()
	defer formRegistryMu.RUnlock()
	h, ok := formRegistry[tag]
	return h, ok
}

func init() {
	RegisterForm("and", andForm)
	RegisterForm("or", orForm)
	RegisterForm("not", notFormHandler)
	RegisterForm("lisp-value", lispValueForm)
	RegisterForm(alwaysTrueTag, alwaysTrueForm)
}

// Eval evaluates query against a singleton stream of the empty frame,
// wrapping the initial (necessarily synchronous, per cons(head,tail))
// evaluation work in a panic recovery that converts a fatal EvalError
// into a returned error. Later frames, pulled lazily, are produced by
// forcing tails; use Next to recover errors raised during that forcing
// too.
func Eval(db *Database, query Term) (result *FrameStream, err error) {
	defer func() { err = recoverEvalError(recover()) }()
	return qeval(db, query, Singleton(nil)), nil
}

// Next pulls one frame from s, recovering any EvalError panic raised
// while forcing s's tail into a returned error. ok is false once the
// stream is exhausted (with err nil) or once a fatal error has been
// reported (in which case err is non-nil and the stream should not be
// pulled further).
func Next(s *FrameStream) (frame *Frame, rest *FrameStream, ok bool, err error) {
	defer func() { err = recoverEvalError(recover()) }()
	if s == nil {
		return nil, nil, false, nil
	}
	return s.Head, s.Tail(), true, nil
}

func recoverEvalError(r interface{}) error {
	if r == nil {
		return nil
	}
	if ee, ok := r.(*EvalError); ok {
		return ee
	}
	panic(r)
}

// qeval dispatches query to a registered form handler if its head is a
// tagged symbol, otherwise treats it as a simple query (§4.6).
func qeval(db *Database, query Term, frames *FrameStream) *FrameStream {
	p, ok := query.(*Pair)
	if !ok {
		fatalf(ErrInvalidQuery, "query %v is not a pair", query)
	}
	if c, ok := p.Head.(Constant); ok {
		if tag, ok := c.Value.(string); ok {
			if handler, found := lookupForm(tag); found {
				return handler(db, p.Tail, frames)
			}
		}
	}
	return simpleQuery(db, p, frames)
}

// simpleQuery answers pattern against both the fact base and the rule
// base, for every incoming frame, flat-interleaving the per-frame result
// streams (§4.7).
func simpleQuery(db *Database, pattern Term, frames *FrameStream) *FrameStream {
	return FlatMap(func(f *Frame) *FrameStream {
		return AppendDelayed(
			findAssertions(db, pattern, f),
			func() *FrameStream { return applyRules(db, pattern, f) },
		)
	}, frames)
}

// findAssertions matches pattern against every candidate assertion under
// f, in most-recently-added-first order. Assertion lookup is bounded
// (the fact base is finite at any instant), so the result is built
// eagerly and wrapped in a stream for uniform composition.
func findAssertions(db *Database, pattern Term, f *Frame) *FrameStream {
	candidates := db.FetchAssertions(pattern)
	matched := make([]*Frame, 0, len(candidates))
	for _, a := range candidates {
		if r := Match(pattern, a, f); r != Failed {
			matched = append(matched, r)
		}
	}
	return FromFrames(matched)
}

// applyRules tries every candidate rule for pattern under f. Unlike
// findAssertions, this must stay genuinely lazy: a rule's body can
// itself invoke applyRules recursively (directly or mutually recursive
// predicates), so each candidate rule's result stream is combined via
// interleave-delayed rather than eager concatenation — the same
// mandatory-interleave discipline FlatMap uses, here applied across the
// list of candidate rules instead of a stream of input frames.
func applyRules(db *Database, pattern Term, f *Frame) *FrameStream {
	return applyRuleList(db, pattern, f, db.FetchRules(pattern))
}

func applyRuleList(db *Database, pattern Term, f *Frame, rules []*Rule) *FrameStream {
	if len(rules) == 0 {
		return nil
	}
	first := applyOneRule(db, pattern, f, rules[0])
	rest := func() *FrameStream { return applyRuleList(db, pattern, f, rules[1:]) }
	return InterleaveDelayed(first, rest)
}

// applyOneRule runs the state machine of §4.11: fetch, alpha-rename with
// a fresh generation id, unify the query pattern against the renamed
// conclusion, then (on success) recursively evaluate the renamed body.
// UnifyFailed is absorbing and contributes the empty stream.
func applyOneRule(db *Database, pattern Term, f *Frame, rule *Rule) *FrameStream {
	renamed := AlphaRename(rule, db.NextGeneration())
	unified := Unify(pattern, renamed.Conclusion, f)
	if unified == Failed {
		return nil
	}
	return qeval(db, renamed.Body, Singleton(unified))
}
