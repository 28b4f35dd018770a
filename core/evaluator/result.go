package evaluator

import (
	"math"
	"strconv"
)

// Result is the outcome of one evaluation: a number or a classified error.
type Result struct {
	Value float64
	Err   *Error
}

func (r Result) IsError() bool {
	return r.Err != nil
}

// Kind returns the error kind, or 0 for a numeric result.
func (r Result) Kind() ErrorKind {
	if r.Err == nil {
		return 0
	}
	return r.Err.Kind
}

// Text renders the result the way it is shown in the display.
func (r Result) Text() string {
	if r.Err != nil {
		return r.Err.Kind.String()
	}
	return FormatNumber(r.Value)
}

func (r Result) String() string {
	return r.Text()
}

// FormatNumber renders v as the shortest decimal that round-trips, in plain
// positional notation: 17, 2.5, 0.0000001. Whole numbers carry no ".0" and
// there is never an exponent, so the text can be typed back in.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == 0:
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
