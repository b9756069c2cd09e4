package wire

import "unsafe"

// unsafeStringBytes returns the bytes of s without copying. The result must
// not be modified.
func unsafeStringBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
