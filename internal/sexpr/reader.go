// Package sexpr reads the surface S-expression syntax used by the
// logicdb driver and examples: atoms, numbers, strings, and nested
// parenthesized lists. It is deliberately separate from pkg/logicdb,
// whose term model never needs to know how a term was typed in (the
// core spec calls surface tokenization an external concern).
package sexpr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gitrdm/logicdb/pkg/logicdb"
)

// Read parses exactly one S-expression from src and returns the
// corresponding Term plus the trailing, unconsumed tokens rejoined with
// single spaces (comments and original spacing are not preserved).
func Read(src string) (logicdb.Term, string, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, "", err
	}
	if len(toks) == 0 {
		return nil, "", fmt.Errorf("sexpr: empty input")
	}
	term, rest, err := readTerm(toks)
	if err != nil {
		return nil, "", err
	}
	return term, strings.Join(rest, " "), nil
}

// ReadAll parses every top-level S-expression in src.
func ReadAll(src string) ([]logicdb.Term, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	var out []logicdb.Term
	for len(toks) > 0 {
		var term logicdb.Term
		term, toks, err = readTerm(toks)
		if err != nil {
			return nil, err
		}
		out = append(out, term)
	}
	return out, nil
}

func tokenize(src string) ([]string, error) {
	var toks []string
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == ';':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '(' || c == ')':
			toks = append(toks, string(c))
			i++
		case c == '"':
			j := i + 1
			for j < len(src) && src[j] != '"' {
				j++
			}
			if j >= len(src) {
				return nil, fmt.Errorf("sexpr: unterminated string literal")
			}
			toks = append(toks, src[i:j+1])
			i = j + 1
		default:
			j := i
			for j < len(src) && !isDelim(src[j]) {
				j++
			}
			toks = append(toks, src[i:j])
			i = j
		}
	}
	return toks, nil
}

func isDelim(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '(' || c == ')'
}

func readTerm(toks []string) (logicdb.Term, []string, error) {
	if len(toks) == 0 {
		return nil, nil, fmt.Errorf("sexpr: unexpected end of input")
	}
	head, rest := toks[0], toks[1:]
	switch head {
	case "(":
		return readList(rest)
	case ")":
		return nil, nil, fmt.Errorf("sexpr: unexpected )")
	default:
		return atomTerm(head), rest, nil
	}
}

func readList(toks []string) (logicdb.Term, []string, error) {
	var items []logicdb.Term
	for {
		if len(toks) == 0 {
			return nil, nil, fmt.Errorf("sexpr: unterminated list")
		}
		if toks[0] == ")" {
			return logicdb.ListOf(items...), toks[1:], nil
		}
		var item logicdb.Term
		var err error
		item, toks, err = readTerm(toks)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
	}
}

func atomTerm(tok string) logicdb.Term {
	if strings.HasPrefix(tok, "\"") && strings.HasSuffix(tok, "\"") && len(tok) >= 2 {
		return logicdb.Constant{Value: tok[1 : len(tok)-1]}
	}
	if n, err := strconv.Atoi(tok); err == nil {
		return logicdb.Constant{Value: n}
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return logicdb.Constant{Value: f}
	}
	if tok == "true" || tok == "false" {
		return logicdb.Constant{Value: tok == "true"}
	}
	return logicdb.QuerySyntaxProcess(logicdb.Constant{Value: tok})
}
