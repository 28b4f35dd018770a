package handler

import (
	"calc/core/buffer"
	"calc/core/evaluator"
)

// EqualsHandler evaluates the buffer once and replaces it with the
// rendered result, so further keys continue from the result.
type EqualsHandler struct {
	BaseHandler
	evaluator *evaluator.Evaluator
	last      *evaluator.Result
}

func NewEqualsHandler(buf *buffer.InputBuffer, eval *evaluator.Evaluator) *EqualsHandler {
	return &EqualsHandler{
		BaseHandler: BaseHandler{Buffer: buf},
		evaluator:   eval,
	}
}

func (h *EqualsHandler) Kind() string { return "equals" }

func (h *EqualsHandler) CanHandle(key string) bool {
	return key == "=" || matchesName(key, "enter", "return")
}

func (h *EqualsHandler) Handle(string) (string, error) {
	result := h.evaluator.Compute(h.Buffer.Snapshot())
	h.last = &result
	h.Buffer.Replace(result.Text())
	return h.Buffer.Snapshot(), nil
}

// Last returns the most recent result, if any evaluation has happened.
func (h *EqualsHandler) Last() (evaluator.Result, bool) {
	if h.last == nil {
		return evaluator.Result{}, false
	}
	return *h.last, true
}
