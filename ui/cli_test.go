package ui

import (
	"bytes"
	"calc/service/calculator"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runConsole(t *testing.T, input string) (string, *calculator.Calculator) {
	t.Helper()
	color.NoColor = true

	calc := calculator.NewCalculator(nil)
	var out bytes.Buffer
	console := NewConsoleInterface(calc, strings.NewReader(input), &out)
	require.NoError(t, console.Run())
	return out.String(), calc
}

func TestConsoleEvaluatesLines(t *testing.T) {
	out, _ := runConsole(t, "5*3+2\n5/0\n5++3\n")

	assert.Contains(t, out, "= 17\n")
	assert.Contains(t, out, "CANNOT DIVIDE BY ZERO\n")
	assert.Contains(t, out, "INVALID INPUT\n")
}

func TestConsoleChainsFromLastResult(t *testing.T) {
	out, calc := runConsole(t, "5/2\n*2\n")

	assert.Contains(t, out, "= 2.5\n")
	assert.Contains(t, out, "= 5\n")
	assert.Equal(t, "5", calc.Display())
}

func TestConsoleStartsFreshExpression(t *testing.T) {
	_, calc := runConsole(t, "17\n2+2\n")
	assert.Equal(t, "4", calc.Display())
}

func TestConsoleDoesNotChainFromError(t *testing.T) {
	_, calc := runConsole(t, "1/0\n+3\n")
	assert.Equal(t, "3", calc.Display())
}

func TestConsoleCommands(t *testing.T) {
	t.Run("show and del", func(t *testing.T) {
		out, calc := runConsole(t, "12*3\n/del\n/show\n")
		assert.Contains(t, out, "= 36\n")
		assert.Contains(t, out, "3\n")
		assert.Equal(t, "3", calc.Display())
	})

	t.Run("clear", func(t *testing.T) {
		out, calc := runConsole(t, "9\n/clear\n/show\n")
		assert.Contains(t, out, "cleared")
		assert.Contains(t, out, "(empty)")
		assert.Equal(t, "", calc.Display())
	})

	t.Run("ast", func(t *testing.T) {
		out, _ := runConsole(t, "/ast 2+3*4\n")
		assert.Contains(t, out, "(2 + (3 * 4))\n")
	})

	t.Run("ast reports offset", func(t *testing.T) {
		out, _ := runConsole(t, "/ast 5+\n")
		assert.Contains(t, out, "INVALID INPUT at offset 2")
	})

	t.Run("unknown", func(t *testing.T) {
		out, _ := runConsole(t, "/vars\n")
		assert.Contains(t, out, "unknown command /vars")
	})

	t.Run("quit stops reading", func(t *testing.T) {
		_, calc := runConsole(t, "1+1\n/quit\n7*7\n")
		assert.Equal(t, "2", calc.Display())
	})
}
