package calculator

import (
	"calc/core/evaluator"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, c *Calculator, keys ...string) string {
	t.Helper()
	var display string
	for _, key := range keys {
		var err error
		display, err = c.Press(key)
		require.NoError(t, err, "key %q", key)
	}
	return display
}

func TestKeystrokesAccumulateWithoutEvaluating(t *testing.T) {
	c := NewCalculator(nil)

	display := press(t, c, "5", "*", "3", "+", "2")
	assert.Equal(t, "5*3+2", display)

	_, evaluated := c.LastResult()
	assert.False(t, evaluated)
}

func TestEqualsReplacesBuffer(t *testing.T) {
	c := NewCalculator(nil)
	c.Type("5*3+2")

	result := c.Evaluate()
	require.False(t, result.IsError())
	assert.Equal(t, 17.0, result.Value)
	assert.Equal(t, "17", c.Display())
}

func TestResultChainsIntoNextExpression(t *testing.T) {
	c := NewCalculator(nil)
	c.Type("5/2")
	press(t, c, "=")
	assert.Equal(t, "2.5", c.Display())

	c.Type("*2")
	press(t, c, "enter")
	assert.Equal(t, "5", c.Display())
}

func TestErrorTextReplacesBuffer(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		kind     evaluator.ErrorKind
	}{
		{"5/0", "CANNOT DIVIDE BY ZERO", evaluator.DivisionByZero},
		{"5%0", "CANNOT DIVIDE BY ZERO", evaluator.DivisionByZero},
		{"5++3", "INVALID INPUT", evaluator.InvalidInput},
		{"", "INVALID INPUT", evaluator.InvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.expected+" "+tt.input, func(t *testing.T) {
			c := NewCalculator(nil)
			c.Type(tt.input)

			result := c.Evaluate()
			assert.Equal(t, tt.kind, result.Kind())
			assert.Equal(t, tt.expected, c.Display())
		})
	}
}

func TestUserCanRecoverAfterError(t *testing.T) {
	c := NewCalculator(nil)
	c.Type("1/0")
	c.Evaluate()
	require.Equal(t, "CANNOT DIVIDE BY ZERO", c.Display())

	press(t, c, "clear")
	c.Type("2+2")
	c.Evaluate()
	assert.Equal(t, "4", c.Display())
}

func TestDeleteAndClear(t *testing.T) {
	c := NewCalculator(nil)
	c.Type("123")

	assert.Equal(t, "12", press(t, c, "DEL"))
	assert.Equal(t, "1", press(t, c, "backspace"))
	assert.Equal(t, "", press(t, c, "delete"))
	assert.Equal(t, "", press(t, c, "delete"))

	c.Type("9+9")
	assert.Equal(t, "", press(t, c, "CLEAR"))
}

func TestAnyCharacterIsTyped(t *testing.T) {
	c := NewCalculator(nil)

	assert.Equal(t, "5a", c.Type("5a"))
	assert.Equal(t, evaluator.InvalidInput, c.Evaluate().Kind())
}

func TestUnknownKeyLeavesBufferUntouched(t *testing.T) {
	c := NewCalculator(nil)
	c.Type("12")

	display, err := c.Press("sqrt")
	assert.True(t, errors.Is(err, ErrUnknownKey))
	assert.Equal(t, "12", display)

	_, err = c.Press("")
	assert.True(t, errors.Is(err, ErrUnknownKey))
	assert.Equal(t, "12", c.Display())
}

func TestCalculatorsAreIndependent(t *testing.T) {
	a := NewCalculator(nil)
	b := NewCalculator(nil)

	a.Type("1+1")
	b.Type("9")

	assert.Equal(t, "1+1", a.Display())
	assert.Equal(t, "9", b.Display())
}

func TestShowingResult(t *testing.T) {
	c := NewCalculator(nil)
	c.Type("8/0")

	_, showing := c.ShowingResult()
	assert.False(t, showing)

	c.Evaluate()
	result, showing := c.ShowingResult()
	require.True(t, showing)
	assert.Equal(t, evaluator.DivisionByZero, result.Kind())

	press(t, c, "clear")
	_, showing = c.ShowingResult()
	assert.False(t, showing)
}
