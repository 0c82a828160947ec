package logicdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchBindsVariable(t *testing.T) {
	pattern := ListOf(Constant{Value: "job"}, Variable{Name: "who"}, ListOf(Constant{Value: "computer"}, Constant{Value: "wizard"}))
	datum := ListOf(Constant{Value: "job"}, ListOf(Constant{Value: "Bitdiddle"}, Constant{Value: "Ben"}), ListOf(Constant{Value: "computer"}, Constant{Value: "wizard"}))

	result := Match(pattern, datum, nil)
	assert.NotEqual(t, Failed, result)

	who, ok := result.Lookup(Variable{Name: "who"})
	assert.True(t, ok)
	assert.True(t, who.Equal(ListOf(Constant{Value: "Bitdiddle"}, Constant{Value: "Ben"})))
}

func TestMatchMismatchFails(t *testing.T) {
	pattern := ListOf(Constant{Value: "job"}, Constant{Value: "alice"})
	datum := ListOf(Constant{Value: "job"}, Constant{Value: "bob"})
	assert.Equal(t, Failed, Match(pattern, datum, nil))
}

func TestMatchPropagatesFailed(t *testing.T) {
	assert.Equal(t, Failed, Match(Constant{Value: "x"}, Constant{Value: "y"}, Failed))
}

func TestMatchSoundness(t *testing.T) {
	// If match(P, D, F) = F', instantiating P under F' equals D structurally.
	pattern := ListOf(Variable{Name: "a"}, Variable{Name: "b"}, Variable{Name: "a"})
	datum := ListOf(Constant{Value: 1}, Constant{Value: 2}, Constant{Value: 1})
	result := Match(pattern, datum, nil)
	assert.NotEqual(t, Failed, result)
	instantiated := Instantiate(pattern, result, DisplayUnbound)
	assert.True(t, instantiated.Equal(datum))
}

func TestMatchRepeatedVariableMustAgree(t *testing.T) {
	pattern := ListOf(Variable{Name: "a"}, Variable{Name: "a"})
	ok := ListOf(Constant{Value: 1}, Constant{Value: 1})
	bad := ListOf(Constant{Value: 1}, Constant{Value: 2})
	assert.NotEqual(t, Failed, Match(pattern, ok, nil))
	assert.Equal(t, Failed, Match(pattern, bad, nil))
}
