package ui

import (
	"bufio"
	"calc/core/evaluator"
	"calc/service/calculator"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	promptColor = color.New(color.FgCyan)
	resultColor = color.New(color.FgGreen, color.Bold)
	errorColor  = color.New(color.FgRed, color.Bold)
	hintColor   = color.New(color.FgHiBlack)
)

// ConsoleInterface is a line-oriented front-end: every line is typed into
// the calculator and then "=" is pressed.
type ConsoleInterface struct {
	calc    *calculator.Calculator
	scanner *bufio.Scanner
	out     io.Writer
}

func NewConsoleInterface(calc *calculator.Calculator, in io.Reader, out io.Writer) *ConsoleInterface {
	return &ConsoleInterface{
		calc:    calc,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Run reads lines until EOF or /quit.
func (c *ConsoleInterface) Run() error {
	c.showWelcome()

	for {
		promptColor.Fprint(c.out, "calc> ")

		if !c.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(c.scanner.Text())
		if input == "" {
			continue
		}

		if input == "/quit" || input == "/exit" {
			break
		}

		c.processCommand(input)
	}

	fmt.Fprintln(c.out)
	return c.scanner.Err()
}

func (c *ConsoleInterface) showWelcome() {
	fmt.Fprintln(c.out, "Calculator. Type an expression and press Enter.")
	hintColor.Fprintln(c.out, "A line starting with an operator continues from the last result. /help for commands.")
}

func (c *ConsoleInterface) processCommand(input string) {
	switch {
	case input == "/help":
		c.showHelp()
		return
	case input == "/clear":
		c.calc.Press("clear")
		hintColor.Fprintln(c.out, "cleared")
		return
	case input == "/del":
		display, _ := c.calc.Press("delete")
		c.showDisplay(display)
		return
	case input == "/show":
		c.showDisplay(c.calc.Display())
		return
	case strings.HasPrefix(input, "/ast"):
		c.showTree(strings.TrimSpace(strings.TrimPrefix(input, "/ast")))
		return
	case strings.HasPrefix(input, "/"):
		errorColor.Fprintf(c.out, "unknown command %s\n", input)
		return
	}

	if !c.continues(input) {
		c.calc.Press("clear")
	}
	c.calc.Type(input)
	c.showResult(c.calc.Evaluate())
}

// continues reports whether input extends the result on display.
func (c *ConsoleInterface) continues(input string) bool {
	result, ok := c.calc.ShowingResult()
	if !ok || result.IsError() {
		return false
	}
	return strings.ContainsRune("+-*/%", rune(input[0]))
}

func (c *ConsoleInterface) showResult(result evaluator.Result) {
	if result.IsError() {
		errorColor.Fprintln(c.out, result.Text())
		return
	}
	resultColor.Fprintf(c.out, "= %s\n", result.Text())
}

func (c *ConsoleInterface) showDisplay(text string) {
	if text == "" {
		hintColor.Fprintln(c.out, "(empty)")
		return
	}
	fmt.Fprintln(c.out, text)
}

func (c *ConsoleInterface) showTree(expr string) {
	if expr == "" {
		expr = c.calc.Display()
	}

	node, err := evaluator.Parse(expr)
	if err != nil {
		var evalErr *evaluator.Error
		if errors.As(err, &evalErr) {
			errorColor.Fprintln(c.out, evalErr.Diagnostic())
			return
		}
		errorColor.Fprintln(c.out, err)
		return
	}
	fmt.Fprintln(c.out, node.String())
}

func (c *ConsoleInterface) showHelp() {
	fmt.Fprintln(c.out, "Operators: + - * / % and parentheses, unary minus.")
	fmt.Fprintln(c.out, "  5*3+2      evaluate")
	fmt.Fprintln(c.out, "  *2         continue from the last result")
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Commands:")
	fmt.Fprintln(c.out, "  /show        show the display")
	fmt.Fprintln(c.out, "  /del         delete the last character")
	fmt.Fprintln(c.out, "  /clear       clear the display")
	fmt.Fprintln(c.out, "  /ast [expr]  print the parsed tree")
	fmt.Fprintln(c.out, "  /help        this help")
	fmt.Fprintln(c.out, "  /quit        exit")
}
