package logicdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func job(who Term, title ...Term) Term {
	titleList := ListOf(title...)
	return ListOf(Constant{Value: "job"}, who, titleList)
}

func TestAddAssertionRejectsNonGround(t *testing.T) {
	db := NewDatabase()
	err := db.AddAssertion(job(Variable{Name: "who"}, Constant{Value: "clerk"}))
	assert.Error(t, err)
}

func TestAddAssertionRejectsNonPair(t *testing.T) {
	db := NewDatabase()
	err := db.AddAssertion(Constant{Value: "not-a-list"})
	assert.Error(t, err)
}

func TestFetchAssertionsUsesIndexAndLIFOOrder(t *testing.T) {
	db := NewDatabase()
	require.NoError(t, db.AddAssertion(job(Constant{Value: "alice"}, Constant{Value: "clerk"})))
	require.NoError(t, db.AddAssertion(job(Constant{Value: "bob"}, Constant{Value: "clerk"})))
	require.NoError(t, db.AddAssertion(ListOf(Constant{Value: "salary"}, Constant{Value: "alice"}, Constant{Value: 40})))

	pattern := job(Variable{Name: "who"}, Variable{Name: "title"})
	candidates := db.FetchAssertions(pattern)
	require.Len(t, candidates, 2)
	// Most recently added first.
	assert.Equal(t, "bob", candidates[0].(*Pair).Tail.(*Pair).Head.(Constant).Value)
	assert.Equal(t, "alice", candidates[1].(*Pair).Tail.(*Pair).Head.(Constant).Value)
}

func TestFetchRulesIncludesWildcardBucket(t *testing.T) {
	db := NewDatabase()
	specific := ListOf(Constant{Value: "rule"},
		ListOf(Constant{Value: "job"}, Variable{Name: "x"}),
		AlwaysTrueForm)
	wildcardHead := ListOf(Constant{Value: "rule"},
		ListOf(Variable{Name: "p"}, Variable{Name: "x"}),
		AlwaysTrueForm)
	require.NoError(t, db.AddRule(specific))
	require.NoError(t, db.AddRule(wildcardHead))

	pattern := job(Variable{Name: "who"}, Variable{Name: "title"})
	rules := db.FetchRules(pattern)
	require.Len(t, rules, 2)
}

func TestAddAssertionsCollectsMultipleErrors(t *testing.T) {
	db := NewDatabase()
	err := db.AddAssertions(
		job(Constant{Value: "alice"}, Constant{Value: "clerk"}),
		job(Variable{Name: "bad"}, Constant{Value: "clerk"}),
		Constant{Value: "also-bad"},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")
}

func TestAddDispatchesRuleVsAssertion(t *testing.T) {
	db := NewDatabase()
	require.NoError(t, db.Add(job(Constant{Value: "alice"}, Constant{Value: "clerk"})))
	require.NoError(t, db.Add(ListOf(Constant{Value: "rule"},
		ListOf(Constant{Value: "same"}, Variable{Name: "x"}, Variable{Name: "x"}))))

	assert.Len(t, db.FetchAssertions(job(Variable{Name: "w"}, Variable{Name: "t"})), 1)
	assert.Len(t, db.FetchRules(ListOf(Constant{Value: "same"}, Variable{Name: "a"}, Variable{Name: "b"})), 1)
}
