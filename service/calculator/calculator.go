package calculator

import (
	"calc/core/buffer"
	"calc/core/evaluator"
	"calc/metrics"
	"calc/service/calculator/handler"
	"errors"
	"fmt"
	"log/slog"
)

var ErrUnknownKey = errors.New("unknown key")

// Calculator is one keypad: a buffer edited by keystrokes and resolved by
// the "=" key. It is not safe for concurrent use; callers serialize.
type Calculator struct {
	buffer   *buffer.InputBuffer
	equals   *handler.EqualsHandler
	handlers []handler.Handler
	logger   *slog.Logger

	// showing is set while the display holds an unedited result.
	showing bool
}

func NewCalculator(logger *slog.Logger) *Calculator {
	return NewCalculatorWithEvaluator(evaluator.NewEvaluator(), logger)
}

func NewCalculatorWithEvaluator(eval *evaluator.Evaluator, logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}

	calc := &Calculator{
		buffer: buffer.New(),
		logger: logger,
	}
	calc.registerHandlers(eval)

	return calc
}

func (c *Calculator) registerHandlers(eval *evaluator.Evaluator) {
	c.equals = handler.NewEqualsHandler(c.buffer, eval)

	// AppendHandler accepts any single character, so it goes last.
	c.handlers = append(c.handlers,
		handler.NewClearHandler(c.buffer),
		handler.NewDeleteHandler(c.buffer),
		c.equals,
		handler.NewAppendHandler(c.buffer),
	)
}

// Press applies one key and returns the new display text. Unknown named
// keys leave the buffer untouched.
func (c *Calculator) Press(key string) (string, error) {
	for _, h := range c.handlers {
		if !h.CanHandle(key) {
			continue
		}

		display, err := h.Handle(key)
		if err != nil {
			return c.buffer.Snapshot(), fmt.Errorf("%s key: %w", h.Kind(), err)
		}

		metrics.KeyPresses.WithLabelValues(h.Kind()).Inc()
		c.showing = h == c.equals
		if c.showing {
			c.recordResult()
		}
		return display, nil
	}

	metrics.KeyPresses.WithLabelValues("rejected").Inc()
	return c.buffer.Snapshot(), fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// Type presses every character of text in order.
func (c *Calculator) Type(text string) string {
	for _, r := range text {
		// single characters always have a handler
		c.Press(string(r))
	}
	return c.buffer.Snapshot()
}

// Evaluate presses "=" and returns the result it produced.
func (c *Calculator) Evaluate() evaluator.Result {
	c.Press("=")
	result, _ := c.equals.Last()
	return result
}

// Display is the text currently shown.
func (c *Calculator) Display() string {
	return c.buffer.Snapshot()
}

// LastResult reports the result of the most recent "=".
func (c *Calculator) LastResult() (evaluator.Result, bool) {
	return c.equals.Last()
}

// ShowingResult returns the result on display, if the last key was "=".
func (c *Calculator) ShowingResult() (evaluator.Result, bool) {
	if !c.showing {
		return evaluator.Result{}, false
	}
	return c.equals.Last()
}

func (c *Calculator) recordResult() {
	result, ok := c.equals.Last()
	if !ok {
		return
	}

	metrics.Evaluations.WithLabelValues(metrics.Outcome(result)).Inc()
	if result.IsError() {
		c.logger.Debug("evaluation failed",
			"component", "calculator",
			"error", result.Err.Diagnostic())
		return
	}
	c.logger.Debug("evaluated", "component", "calculator", "result", result.Text())
}
