package logicdb

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// wildcardKey is the index bucket for patterns whose head is a variable:
// rules with variable-headed conclusions must always be considered,
// regardless of the query's head symbol.
const wildcardKey = "?"

// Database is an append-only knowledge base of assertions and rules, plus
// a single-key head-symbol index over both. It replaces the three
// process-wide mutable registers of the source material (assertion
// stream, rule stream, index) with fields on an explicit value, which
// also unlocks running multiple independent databases in one process.
//
// Entries are added only through Add/AddAssertion/AddRule; they are never
// removed. The database assumes a quiescent writer during evaluation: the
// mutex below protects bookkeeping consistency across goroutines but does
// not provide snapshot isolation for a writer mutating concurrently with
// an in-flight query (see spec §5).
type Database struct {
	mu sync.Mutex

	assertions     []Term
	rules          []*Rule
	assertionIndex map[string][]int
	ruleIndex      map[string][]int

	generation int64

	logger     hclog.Logger
	Predicates *PredicateRegistry
}

// Option configures a Database at construction time.
type Option func(*Database)

// WithLogger overrides the database's logger. The default is a no-op
// logger so library consumers get silence unless they opt in.
func WithLogger(l hclog.Logger) Option {
	return func(db *Database) { db.logger = l }
}

// NewDatabase returns an empty database.
func NewDatabase(opts ...Option) *Database {
	db := &Database{
		assertionIndex: make(map[string][]int),
		ruleIndex:      make(map[string][]int),
		logger:         hclog.NewNullLogger(),
		Predicates:     NewPredicateRegistry(),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// NextGeneration draws the next value from the process-wide (well, here:
// per-database) rule-application counter used to alpha-rename rules.
func (db *Database) NextGeneration() int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.generation++
	return db.generation
}

// Add dispatches ITEM to AddRule if it is a (rule ...) form, else to
// AddAssertion, matching the driver's (assert! ITEM) handling (§6).
func (db *Database) Add(item Term) error {
	if p, ok := item.(*Pair); ok {
		if c, ok := p.Head.(Constant); ok {
			if s, ok := c.Value.(string); ok && s == "rule" {
				return db.AddRule(item)
			}
		}
	}
	return db.AddAssertion(item)
}

// AddAssertion stores a ground Pair as a fact. Assertions containing
// variables are rejected: the source material leaves this case
// undefined (pattern-match assumes a variable-free datum, yet nothing
// stops a variable-containing term from being stored), and this
// implementation resolves the ambiguity by rejecting rather than
// silently admitting a term that match() could never model correctly
// (see DESIGN.md).
func (db *Database) AddAssertion(t Term) error {
	if !IsPair(t) {
		return fmt.Errorf("logicdb: assertion must be a compound term, got %v", t)
	}
	if !isGround(t) {
		return fmt.Errorf("logicdb: assertion %v is not ground", t)
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	idx := len(db.assertions)
	if indexable(t) {
		key := indexKeyOf(t)
		db.assertionIndex[key] = append(db.assertionIndex[key], idx)
	}
	db.assertions = append(db.assertions, t)
	db.logger.Debug("assertion added", "term", t.String())
	return nil
}

// AddAssertions stores many facts, collecting every per-item failure into
// a single multierror.Error rather than stopping at the first bad item.
func (db *Database) AddAssertions(items ...Term) error {
	var result *multierror.Error
	for _, t := range items {
		if err := db.AddAssertion(t); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// AddRule parses and stores a (rule CONCLUSION [BODY]) term, indexed by
// its conclusion's head symbol (or the wildcard bucket, if the
// conclusion's head is itself a variable).
func (db *Database) AddRule(term Term) error {
	rule, err := ParseRule(term)
	if err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	idx := len(db.rules)
	key := indexKeyOf(rule.Conclusion)
	db.ruleIndex[key] = append(db.ruleIndex[key], idx)
	db.rules = append(db.rules, rule)
	db.logger.Debug("rule added", "conclusion", rule.Conclusion.String())
	return nil
}

// FetchAssertions returns the candidate assertions for pattern, most
// recently added first (§4.9, §4.12). If pattern's head is a constant
// symbol, only the matching bucket is returned; otherwise every stored
// assertion is a candidate.
func (db *Database) FetchAssertions(pattern Term) []Term {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !useIndex(pattern) {
		return reverseTerms(db.assertions)
	}
	return db.bucketAssertionsLocked(indexKeyOf(pattern))
}

// FetchRules returns the candidate rules for pattern, most recently
// added first within each bucket. If pattern's head is a constant
// symbol, the matching bucket is returned followed by the wildcard
// bucket (rules with variable-headed conclusions always apply);
// otherwise every stored rule is a candidate.
func (db *Database) FetchRules(pattern Term) []*Rule {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !useIndex(pattern) {
		return reverseRules(db.rules)
	}
	key := indexKeyOf(pattern)
	out := db.bucketRulesLocked(key)
	if key != wildcardKey {
		out = append(out, db.bucketRulesLocked(wildcardKey)...)
	}
	return out
}

func (db *Database) bucketAssertionsLocked(key string) []Term {
	idxs := db.assertionIndex[key]
	out := make([]Term, len(idxs))
	for i, j := range idxs {
		out[len(idxs)-1-i] = db.assertions[j]
	}
	return out
}

func (db *Database) bucketRulesLocked(key string) []*Rule {
	idxs := db.ruleIndex[key]
	out := make([]*Rule, len(idxs))
	for i, j := range idxs {
		out[len(idxs)-1-i] = db.rules[j]
	}
	return out
}

func reverseTerms(ts []Term) []Term {
	out := make([]Term, len(ts))
	for i, t := range ts {
		out[len(ts)-1-i] = t
	}
	return out
}

func reverseRules(rs []*Rule) []*Rule {
	out := make([]*Rule, len(rs))
	for i, r := range rs {
		out[len(rs)-1-i] = r
	}
	return out
}

// useIndex reports whether pattern's head is a constant symbol, i.e.
// whether lookups for it can be narrowed to a single index bucket.
func useIndex(pat Term) bool {
	p, ok := pat.(*Pair)
	if !ok {
		return false
	}
	_, isConst := p.Head.(Constant)
	return isConst
}

// indexKeyOf returns the bucket key for pat: its head constant's printed
// form, or the wildcard key if the head is a variable or pat isn't a
// pair at all.
func indexKeyOf(pat Term) string {
	p, ok := pat.(*Pair)
	if !ok {
		return wildcardKey
	}
	if c, ok := p.Head.(Constant); ok {
		return fmt.Sprintf("%v", c.Value)
	}
	return wildcardKey
}

// indexable reports whether pat can be stored under some bucket at all
// (its head is a constant symbol or a variable).
func indexable(pat Term) bool {
	p, ok := pat.(*Pair)
	if !ok {
		return false
	}
	switch p.Head.(type) {
	case Constant, Variable:
		return true
	default:
		return false
	}
}
