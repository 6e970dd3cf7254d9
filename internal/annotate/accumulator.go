package annotate

import "github.com/valyala/bytebufferpool"

// TextAccumulator collects the characters of one annotation reply line or field.
type TextAccumulator struct {
	buf bytebufferpool.ByteBuffer
}

func (a *TextAccumulator) Append(c byte) {
	_ = a.buf.WriteByte(c)
}

func (a *TextAccumulator) Clear() {
	a.buf.Reset()
}

func (a *TextAccumulator) Len() int {
	return a.buf.Len()
}

// Drop removes up to n trailing bytes.
func (a *TextAccumulator) Drop(n int) {
	if n > len(a.buf.B) { n = len(a.buf.B) }
	a.buf.B = a.buf.B[:len(a.buf.B)-n]
}

// Last returns the final byte, or 0 when empty.
func (a *TextAccumulator) Last() byte {
	if len(a.buf.B) == 0 { return 0 }
	return a.buf.B[len(a.buf.B)-1]
}

func (a *TextAccumulator) String() string {
	return a.buf.String()
}
