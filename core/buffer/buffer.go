package buffer

// InputBuffer holds the expression under construction. It accepts any
// character; validation happens when the text is evaluated. It is owned by
// a single actor and does no locking.
type InputBuffer struct {
	text []rune
}

func New() *InputBuffer {
	return &InputBuffer{}
}

// Append adds ch to the end of the buffer.
func (b *InputBuffer) Append(ch rune) {
	b.text = append(b.text, ch)
}

// AppendString adds every rune of s in order.
func (b *InputBuffer) AppendString(s string) {
	b.text = append(b.text, []rune(s)...)
}

// DeleteLast removes the last character. Empty buffers are left alone.
func (b *InputBuffer) DeleteLast() {
	if len(b.text) > 0 {
		b.text = b.text[:len(b.text)-1]
	}
}

func (b *InputBuffer) Clear() {
	b.text = b.text[:0]
}

// Snapshot returns the current contents by value.
func (b *InputBuffer) Snapshot() string {
	return string(b.text)
}

// Replace installs text as the new contents, e.g. a rendered result.
func (b *InputBuffer) Replace(text string) {
	b.text = []rune(text)
}

func (b *InputBuffer) Len() int {
	return len(b.text)
}

func (b *InputBuffer) Empty() bool {
	return len(b.text) == 0
}
