// Package transcript strips terminal escape sequences and control
// characters from captured installer output.
//
// Transcripts reach the API through layers that re-encode control bytes, so
// the same escape can arrive as the raw byte, as caret notation ("^[" for
// ESC), or as caret notation with a JSON-added backslash ("\^["). All three
// are recognized and removed uniformly. Tabs, newlines, carriage returns and
// all non-ASCII text pass through untouched.
package transcript

import "strings"

// Form identifies the textual encoding of a recognized escape occurrence.
type Form int

const (
	// RawEscape is the ESC byte 0x1B.
	RawEscape Form = iota
	// CaretEscape is the two-character digraph "^[".
	CaretEscape
	// BackslashCaretEscape is "^[" with a leading backslash.
	BackslashCaretEscape
	// RawControl is a single byte in [0x00,0x1F] other than tab, LF, CR.
	RawControl
	// CaretControl is "^" followed by "@" or a letter A-Z ("^@" is NUL,
	// "^A" is 0x01, and so on).
	CaretControl
	// BackslashCaretControl is a caret control digraph with a leading
	// backslash.
	BackslashCaretControl
)

func (f Form) String() string {
	switch f {
	case RawEscape:
		return "raw-escape"
	case CaretEscape:
		return "caret-escape"
	case BackslashCaretEscape:
		return "backslash-caret-escape"
	case RawControl:
		return "raw-control"
	case CaretControl:
		return "caret-control"
	case BackslashCaretControl:
		return "backslash-caret-control"
	}
	return "unknown"
}

// Occurrence is one recognized escape span within a transcript. End is
// exclusive. For the escape forms the span includes any CSI suffix that
// follows the introducer.
type Occurrence struct {
	Start int
	End   int
	Form  Form
}

// isControlLetter reports whether c encodes a control code 0-26 in caret
// notation. "[" (ESC) is excluded here and handled as an escape introducer.
func isControlLetter(c byte) bool {
	return c == '@' || (c >= 'A' && c <= 'Z')
}

func isFinalLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// csiEnd returns the end offset of a CSI suffix starting at j: a "[",
// zero or more digits and semicolons, and exactly one final letter. When no
// complete suffix is present (including a "[" that runs off the end of the
// input before its final letter) it returns j unchanged, leaving the
// characters as literal content.
func csiEnd(s string, j int) int {
	if j >= len(s) || s[j] != '[' {
		return j
	}
	k := j + 1
	for k < len(s) && (s[k] == ';' || (s[k] >= '0' && s[k] <= '9')) {
		k++
	}
	if k < len(s) && isFinalLetter(s[k]) {
		return k + 1
	}
	return j
}

// matchAt reports the occurrence beginning at offset i, if any. The forms
// are textually disjoint except backslash-caret vs caret, where the longer
// backslash form wins by being tested from its own introducer byte.
func matchAt(s string, i int) (Occurrence, bool) {
	switch c := s[i]; {
	case c == '\\':
		if i+2 < len(s) && s[i+1] == '^' {
			if s[i+2] == '[' {
				return Occurrence{Start: i, End: csiEnd(s, i+3), Form: BackslashCaretEscape}, true
			}
			if isControlLetter(s[i+2]) {
				return Occurrence{Start: i, End: i + 3, Form: BackslashCaretControl}, true
			}
		}
	case c == '^':
		if i+1 < len(s) {
			if s[i+1] == '[' {
				return Occurrence{Start: i, End: csiEnd(s, i+2), Form: CaretEscape}, true
			}
			if isControlLetter(s[i+1]) {
				return Occurrence{Start: i, End: i + 2, Form: CaretControl}, true
			}
		}
	case c == 0x1B:
		return Occurrence{Start: i, End: csiEnd(s, i+1), Form: RawEscape}, true
	case c < 0x20 && c != '\t' && c != '\n' && c != '\r':
		return Occurrence{Start: i, End: i + 1, Form: RawControl}, true
	}
	return Occurrence{}, false
}

// Scan returns every escape occurrence in s, left to right. Occurrences
// never overlap; adjacent ones are reported independently.
func Scan(s string) []Occurrence {
	var occs []Occurrence
	for i := 0; i < len(s); {
		if occ, ok := matchAt(s, i); ok {
			occs = append(occs, occ)
			i = occ.End
			continue
		}
		i++
	}
	return occs
}

// stripOnce removes every occurrence found in a single left-to-right pass.
// Matching is byte-wise: every pattern byte is ASCII, so UTF-8 continuation
// bytes can never match and multi-byte runes are copied through intact.
func stripOnce(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	matched := false
	for i := 0; i < len(s); {
		if occ, ok := matchAt(s, i); ok {
			i = occ.End
			matched = true
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	if !matched {
		return s
	}
	return b.String()
}

// Sanitize returns s with every escape occurrence deleted. It is total over
// arbitrary input and never fails; malformed sequences lose only their
// introducer and leave the rest as literal text.
//
// Removing a span can juxtapose leftover characters into a new escape-like
// substring (a literal "^" ending up next to a stripped sequence's "["), so
// the pass repeats until a fixed point. That makes the result idempotent:
// Sanitize(Sanitize(s)) == Sanitize(s) for every s. Inputs without escapes
// return after one pass with no allocation.
func Sanitize(s string) string {
	for {
		out := stripOnce(s)
		if out == s {
			return out
		}
		s = out
	}
}

// SanitizePtr is Sanitize for optional strings: nil in, nil out. Callers
// holding nullable JSON fields use this so "no transcript" stays absent
// rather than becoming empty.
func SanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := Sanitize(*s)
	return &clean
}
