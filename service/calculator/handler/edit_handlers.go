package handler

import "calc/core/buffer"

type ClearHandler struct {
	BaseHandler
}

func NewClearHandler(buf *buffer.InputBuffer) *ClearHandler {
	return &ClearHandler{BaseHandler: BaseHandler{Buffer: buf}}
}

func (h *ClearHandler) Kind() string { return "clear" }

func (h *ClearHandler) CanHandle(key string) bool {
	return matchesName(key, "clear", "ac", "esc")
}

func (h *ClearHandler) Handle(string) (string, error) {
	h.Buffer.Clear()
	return h.Buffer.Snapshot(), nil
}

type DeleteHandler struct {
	BaseHandler
}

func NewDeleteHandler(buf *buffer.InputBuffer) *DeleteHandler {
	return &DeleteHandler{BaseHandler: BaseHandler{Buffer: buf}}
}

func (h *DeleteHandler) Kind() string { return "delete" }

func (h *DeleteHandler) CanHandle(key string) bool {
	return matchesName(key, "delete", "del", "backspace")
}

func (h *DeleteHandler) Handle(string) (string, error) {
	h.Buffer.DeleteLast()
	return h.Buffer.Snapshot(), nil
}
