package wire

import (
	"encoding/binary"
	"unicode/utf8"
)

const asciiMask = 0x8080808080808080

// ValidateUTF8 reports ErrInvalidUTF8 unless b is well-formed UTF-8.
//
// Overlong forms, UTF-16 surrogates (U+D800..U+DFFF) and code points above
// U+10FFFF are rejected. The scan skips eight ASCII bytes at a time.
func ValidateUTF8(b []byte) error {
	i, n := 0, len(b)
	for i < n {
		// ASCII fast path.
		for i+8 <= n && binary.LittleEndian.Uint64(b[i:])&asciiMask == 0 {
			i += 8
		}
		if i == n {
			return nil
		}
		c := b[i]
		if c < 0x80 {
			i++
			continue
		}

		switch {
		case c < 0xC2:
			// Stray continuation byte, or overlong two-byte lead (C0, C1).
			return ErrInvalidUTF8
		case c < 0xE0:
			if i+1 >= n || !continuation(b[i+1]) {
				return ErrInvalidUTF8
			}
			i += 2
		case c < 0xF0:
			if i+2 >= n || !continuation(b[i+1]) || !continuation(b[i+2]) {
				return ErrInvalidUTF8
			}
			if c == 0xE0 && b[i+1] < 0xA0 {
				return ErrInvalidUTF8 // overlong
			}
			if c == 0xED && b[i+1] >= 0xA0 {
				return ErrInvalidUTF8 // surrogate
			}
			i += 3
		case c < 0xF5:
			if i+3 >= n || !continuation(b[i+1]) || !continuation(b[i+2]) || !continuation(b[i+3]) {
				return ErrInvalidUTF8
			}
			if c == 0xF0 && b[i+1] < 0x90 {
				return ErrInvalidUTF8 // overlong
			}
			if c == 0xF4 && b[i+1] >= 0x90 {
				return ErrInvalidUTF8 // above U+10FFFF
			}
			i += 4
		default:
			return ErrInvalidUTF8
		}
	}
	return nil
}

func continuation(c byte) bool {
	return c&0xC0 == 0x80
}

// UTF8Length returns the number of bytes WriteString emits for s, excluding
// the length prefix, without building the encoded form.
//
// A valid string encodes to its own bytes. When invalid bytes are tolerated
// (Config.ReplaceInvalidUTF8) each one is written as U+FFFD, three bytes.
func UTF8Length(s string) int {
	n := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			i++
			n++
			continue
		}
		_, w := utf8.DecodeRuneInString(s[i:])
		if w == 1 {
			n += 3
		} else {
			n += w
		}
		i += w
	}
	return n
}

// UTF8LengthUTF16 returns the UTF-8 byte count of UTF-16 text: one byte per
// ASCII unit, two below U+0800, three for the rest of the BMP and four for a
// surrogate pair. An unpaired surrogate counts as U+FFFD.
func UTF8LengthUTF16(units []uint16) int {
	n := len(units)
	i := 0
	for i < len(units) && units[i] < 0x80 {
		i++
	}
	for ; i < len(units); i++ {
		u := units[i]
		switch {
		case u < 0x80:
		case u < 0x800:
			n++
		case u >= 0xD800 && u <= 0xDBFF && i+1 < len(units) && units[i+1] >= 0xDC00 && units[i+1] <= 0xDFFF:
			// Two units become one four-byte sequence.
			n += 2
			i++
		default:
			n += 2
		}
	}
	return n
}

// SizeString returns the encoded size of a string field, prefix included.
func SizeString(s string) int {
	n := UTF8Length(s)
	return SizeVarint(uint64(n)) + n
}
