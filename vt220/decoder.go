package vt220

import "unicode/utf8"

// Encoding selects how the byte decoder maps raw bytes to characters.
type Encoding int

const (
	// EncodingLatin1 maps every byte 1:1 to U+0000..U+00FF. This is the
	// VT220's native single-byte model and the default.
	EncodingLatin1 Encoding = iota
	// EncodingUTF8 decodes multi-byte sequences, buffering incomplete
	// trailing bytes until more data arrives.
	EncodingUTF8
)

// decoder turns raw bytes into characters. It is a pure transform: it
// never drops a byte and never invokes the parser itself. Incomplete
// multi-byte input stays pending across calls.
type decoder struct {
	encoding Encoding
	pending  []byte
}

// decode appends the characters decoded from p to buf and returns it.
// With UTF-8 an ill-formed sequence decodes to U+FFFD; a truncated
// sequence at the end of p remains buffered.
func (d *decoder) decode(p []byte, buf []rune) []rune {
	if d.encoding == EncodingLatin1 {
		for _, b := range p {
			buf = append(buf, rune(b))
		}
		return buf
	}

	data := p
	if len(d.pending) > 0 {
		data = append(d.pending, p...)
		d.pending = nil
	}

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRune(data) && utf8.RuneStart(data[0]) {
				// Truncated sequence at the chunk boundary: keep it for
				// the next call.
				d.pending = append(d.pending, data...)
				return buf
			}
			buf = append(buf, utf8.RuneError)
			data = data[1:]
			continue
		}
		buf = append(buf, r)
		data = data[size:]
	}
	return buf
}
