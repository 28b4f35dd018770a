package handler

import (
	"calc/core/buffer"
	"unicode/utf8"
)

// AppendHandler types any single character into the buffer, legal or not.
type AppendHandler struct {
	BaseHandler
}

func NewAppendHandler(buf *buffer.InputBuffer) *AppendHandler {
	return &AppendHandler{BaseHandler: BaseHandler{Buffer: buf}}
}

func (h *AppendHandler) Kind() string { return "append" }

func (h *AppendHandler) CanHandle(key string) bool {
	return utf8.RuneCountInString(key) == 1
}

func (h *AppendHandler) Handle(key string) (string, error) {
	r, _ := utf8.DecodeRuneInString(key)
	h.Buffer.Append(r)
	return h.Buffer.Snapshot(), nil
}
