// Package logicdb implements a Prolog-style deductive query engine: an
// indexed knowledge base of ground assertions and Horn-clause rules,
// answered by pattern matching and unification over lazy frame streams.
package logicdb

import (
	"fmt"
	"strings"
)

// Term is the S-expression-like representation shared by assertions, rules,
// and queries: a Constant, a Variable, or a Pair of two Terms. Compound
// terms are right-nested Pairs ending in EmptyList, forming lists.
type Term interface {
	fmt.Stringer
	Equal(other Term) bool
	isTerm()
}

// emptySym is the unique marker stored inside the EmptyList constant so
// that two EmptyList values always compare equal via Constant.Equal.
type emptySym struct{}

// EmptyList is the list terminator, printed as "()".
var EmptyList Term = Constant{Value: emptySym{}}

// Constant is a symbol or literal scalar (string, number, bool). Equality
// is plain Go value equality, so Value must hold a comparable type.
type Constant struct {
	Value interface{}
}

func (Constant) isTerm() {}

func (c Constant) String() string {
	if _, ok := c.Value.(emptySym); ok {
		return "()"
	}
	return fmt.Sprintf("%v", c.Value)
}

// Equal implements Term.
func (c Constant) Equal(other Term) bool {
	o, ok := other.(Constant)
	return ok && c.Value == o.Value
}

// Variable is a logic variable: a user-visible name plus an application
// generation id. Gen is 0 for user-entered variables; fresh variables
// created during rule application share the rule's generation id. Two
// variables are equal iff both Name and Gen match (see §3 of the spec).
type Variable struct {
	Name string
	Gen  int
}

func (Variable) isTerm() {}

func (v Variable) String() string {
	if v.Gen == 0 {
		return "?" + v.Name
	}
	return fmt.Sprintf("?%s-%d", v.Name, v.Gen)
}

// Equal implements Term.
func (v Variable) Equal(other Term) bool {
	o, ok := other.(Variable)
	return ok && v.Name == o.Name && v.Gen == o.Gen
}

// Pair is an ordered cons cell of two Terms.
type Pair struct {
	Head Term
	Tail Term
}

func (*Pair) isTerm() {}

func (p *Pair) String() string {
	var b strings.Builder
	b.WriteByte('(')
	cur := Term(p)
	first := true
	for {
		pp, ok := cur.(*Pair)
		if !ok {
			if !isEmptyList(cur) {
				b.WriteString(" . ")
				b.WriteString(cur.String())
			}
			break
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(pp.Head.String())
		cur = pp.Tail
	}
	b.WriteByte(')')
	return b.String()
}

// Equal implements Term.
func (p *Pair) Equal(other Term) bool {
	o, ok := other.(*Pair)
	return ok && p.Head.Equal(o.Head) && p.Tail.Equal(o.Tail)
}

func isEmptyList(t Term) bool {
	c, ok := t.(Constant)
	if !ok {
		return false
	}
	_, ok = c.Value.(emptySym)
	return ok
}

// IsVariable reports whether t is a Variable.
func IsVariable(t Term) bool {
	_, ok := t.(Variable)
	return ok
}

// IsPair reports whether t is a Pair.
func IsPair(t Term) bool {
	_, ok := t.(*Pair)
	return ok
}

// ListOf builds a right-nested list of Pairs terminated by EmptyList.
func ListOf(items ...Term) Term {
	result := EmptyList
	for i := len(items) - 1; i >= 0; i-- {
		result = &Pair{Head: items[i], Tail: result}
	}
	return result
}

// ToSlice unrolls a proper list into a slice. ok is false if t is not a
// pair/EmptyList chain (an improper or dotted list).
func ToSlice(t Term) (items []Term, ok bool) {
	for {
		if isEmptyList(t) {
			return items, true
		}
		p, isPair := t.(*Pair)
		if !isPair {
			return nil, false
		}
		items = append(items, p.Head)
		t = p.Tail
	}
}

// isGround reports whether expr contains no Variable, directly or nested.
func isGround(t Term) bool {
	switch v := t.(type) {
	case Variable:
		return false
	case *Pair:
		return isGround(v.Head) && isGround(v.Tail)
	default:
		return true
	}
}
