package handler

import (
	"calc/core/buffer"
	"strings"
)

// Handler reacts to one kind of keystroke. The first handler in a chain
// whose CanHandle reports true receives the key.
type Handler interface {
	Kind() string
	CanHandle(key string) bool
	Handle(key string) (string, error)
}

// BaseHandler gives handlers access to the buffer they edit.
type BaseHandler struct {
	Buffer *buffer.InputBuffer
}

// matchesName reports whether key is one of the named control keys.
// Names are multi-character so that every single character still types.
func matchesName(key string, names ...string) bool {
	for _, name := range names {
		if strings.EqualFold(key, name) {
			return true
		}
	}
	return false
}
