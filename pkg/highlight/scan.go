// Package highlight maps positions in pretty-printed JSON back to the member
// they belong to, so that search hits inside embedded image data can be
// left unhighlighted.
//
// Offsets are byte offsets into the text.
package highlight

import (
	"encoding/json"
)

// KeyAtOffset reports the key of the member whose string value contains
// offset. It scans backward for the value's opening quote, which must follow
// a colon, and then for the key string before the colon. ok is false when
// the text does not have that shape, for example when offset is inside a
// number, a key, or an array element.
func KeyAtOffset(text string, offset int) (string, bool) {
	if offset <= 0 || offset > len(text) {
		return "", false
	}

	open := lastUnescapedQuote(text, offset-1)
	if open < 0 {
		return "", false
	}
	colon := prevNonSpace(text, open-1)
	if colon < 0 || text[colon] != ':' {
		return "", false
	}
	keyEnd := prevNonSpace(text, colon-1)
	if keyEnd < 0 || text[keyEnd] != '"' || isEscaped(text, keyEnd) {
		return "", false
	}
	keyStart := lastUnescapedQuote(text, keyEnd-1)
	if keyStart < 0 {
		return "", false
	}

	raw := text[keyStart : keyEnd+1]
	var key string
	if err := json.Unmarshal([]byte(raw), &key); err != nil {
		return raw[1 : len(raw)-1], true
	}
	return key, true
}

// lastUnescapedQuote returns the index of the last '"' at or before from
// that is not escaped by a backslash, or -1.
func lastUnescapedQuote(text string, from int) int {
	for i := from; i >= 0; i-- {
		if text[i] == '"' && !isEscaped(text, i) {
			return i
		}
	}
	return -1
}

// isEscaped reports whether the byte at i is preceded by an odd number of
// backslashes.
func isEscaped(text string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && text[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

func prevNonSpace(text string, from int) int {
	for i := from; i >= 0; i-- {
		switch text[i] {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return i
		}
	}
	return -1
}
