package rewrite

import (
	"bytes"
	"unicode/utf8"

	"github.com/arthur-debert/liscaf/pkg/types"
)

// DefaultWindow is how many leading bytes Classify inspects
const DefaultWindow = 8000

// Classify decides whether content is text or binary. Content is binary
// when its first window bytes contain a NUL or are not valid UTF-8. A rune
// cut in half by the window boundary is tolerated. A window of zero or
// less selects DefaultWindow.
func Classify(content []byte, window int) types.ContentClass {
	if window <= 0 {
		window = DefaultWindow
	}

	head := content
	truncated := false
	if len(head) > window {
		head = head[:window]
		truncated = true
	}

	if bytes.IndexByte(head, 0) >= 0 {
		return types.ClassBinary
	}
	if truncated {
		head = trimPartialRune(head)
	}
	if !utf8.Valid(head) {
		return types.ClassBinary
	}
	return types.ClassText
}

// trimPartialRune drops an incomplete multi-byte sequence at the end of b
func trimPartialRune(b []byte) []byte {
	// A UTF-8 sequence is at most 4 bytes, so look back at most 3.
	for i := 1; i <= utf8.UTFMax-1 && i <= len(b); i++ {
		c := b[len(b)-i]
		if c < utf8.RuneSelf {
			return b
		}
		if utf8.RuneStart(c) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}
			return b
		}
	}
	return b
}
