package sexpr

import (
	"testing"

	"github.com/gitrdm/logicdb/pkg/logicdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSimpleList(t *testing.T) {
	term, rest, err := Read("(job alice (computer wizard))")
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, "(job alice (computer wizard))", term.String())
}

func TestReadRewritesQuestionMarkAtoms(t *testing.T) {
	term, _, err := Read("(job ?who (computer wizard))")
	require.NoError(t, err)
	items, ok := logicdb.ToSlice(term)
	require.True(t, ok)
	assert.Equal(t, logicdb.Variable{Name: "who"}, items[1])
}

func TestReadNumbersAndStrings(t *testing.T) {
	term, _, err := Read(`(salary "alice" 3000)`)
	require.NoError(t, err)
	items, ok := logicdb.ToSlice(term)
	require.True(t, ok)
	assert.Equal(t, logicdb.Constant{Value: "alice"}, items[1])
	assert.Equal(t, logicdb.Constant{Value: 3000}, items[2])
}

func TestReadAllParsesMultipleForms(t *testing.T) {
	terms, err := ReadAll("(assert! (job alice clerk)) (job ?who ?title)")
	require.NoError(t, err)
	require.Len(t, terms, 2)
}

func TestReadRejectsUnterminatedList(t *testing.T) {
	_, _, err := Read("(job alice")
	assert.Error(t, err)
}

func TestReadRejectsUnmatchedCloseParen(t *testing.T) {
	_, err := ReadAll(")")
	assert.Error(t, err)
}
