package logicdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuleWithExplicitBody(t *testing.T) {
	term := ListOf(Constant{Value: "rule"},
		ListOf(Constant{Value: "same"}, Variable{Name: "x"}, Variable{Name: "x"}),
		AlwaysTrueForm)
	rule, err := ParseRule(term)
	require.NoError(t, err)
	assert.True(t, rule.Body.Equal(AlwaysTrueForm))
}

func TestParseRuleDefaultsBodyToAlwaysTrue(t *testing.T) {
	term := ListOf(Constant{Value: "rule"},
		ListOf(Constant{Value: "same"}, Variable{Name: "x"}, Variable{Name: "x"}))
	rule, err := ParseRule(term)
	require.NoError(t, err)
	assert.True(t, rule.Body.Equal(AlwaysTrueForm))
}

func TestParseRuleRejectsMalformedTag(t *testing.T) {
	_, err := ParseRule(ListOf(Constant{Value: "not-a-rule"}, Constant{Value: "x"}))
	assert.Error(t, err)
}

func TestParseRuleRejectsTooShort(t *testing.T) {
	_, err := ParseRule(ListOf(Constant{Value: "rule"}))
	assert.Error(t, err)
}

func TestAlphaRenameProducesFreshGeneration(t *testing.T) {
	term := ListOf(Constant{Value: "rule"},
		ListOf(Constant{Value: "same"}, Variable{Name: "x"}, Variable{Name: "x"}),
		AlwaysTrueForm)
	rule, err := ParseRule(term)
	require.NoError(t, err)

	renamed := AlphaRename(rule, 7)
	items, ok := ToSlice(renamed.Conclusion)
	require.True(t, ok)
	first := items[1].(Variable)
	second := items[2].(Variable)
	assert.Equal(t, "x", first.Name)
	assert.Equal(t, 7, first.Gen)
	assert.Equal(t, first, second, "repeated variable occurrences must rename identically")
}

func TestAlphaRenameTwoApplicationsAreIndependent(t *testing.T) {
	term := ListOf(Constant{Value: "rule"},
		ListOf(Constant{Value: "same"}, Variable{Name: "x"}, Variable{Name: "x"}),
		AlwaysTrueForm)
	rule, err := ParseRule(term)
	require.NoError(t, err)

	a := AlphaRename(rule, 1)
	b := AlphaRename(rule, 2)
	itemsA, _ := ToSlice(a.Conclusion)
	itemsB, _ := ToSlice(b.Conclusion)
	varA := itemsA[1].(Variable)
	varB := itemsB[1].(Variable)
	assert.NotEqual(t, varA, varB, "no variable may be shared across two renamed copies of a rule")
}

func TestAlphaRenameLeavesConstantsUntouched(t *testing.T) {
	term := ListOf(Constant{Value: "rule"},
		ListOf(Constant{Value: "job"}, Variable{Name: "x"}, Constant{Value: "clerk"}),
		AlwaysTrueForm)
	rule, err := ParseRule(term)
	require.NoError(t, err)
	renamed := AlphaRename(rule, 3)
	items, _ := ToSlice(renamed.Conclusion)
	assert.Equal(t, Constant{Value: "clerk"}, items[2])
}
