package match

import (
	"unicode"
	"unicode/utf8"
)

// Normalized holds the canonical form of a text along with a byte mapping
// back to the original string. Matching runs over the normalized form;
// snippets and offsets are reported against the original transcript, so
// every normalized byte remembers where it came from.
type Normalized struct {
	Text string

	starts []int // starts[i] = original byte offset where normalized byte i begins
	ends   []int // ends[i] = original byte offset just past the source of normalized byte i
}

// Normalize lower-cases the input, strips every character that is not a word
// character or whitespace, collapses whitespace runs to single spaces, and
// trims. The result carries the position mapping to the original text.
func Normalize(s string) *Normalized {
	n := &Normalized{
		starts: make([]int, 0, len(s)),
		ends:   make([]int, 0, len(s)),
	}

	buf := make([]byte, 0, len(s))
	emit := func(r rune, start, end int) {
		var tmp [utf8.UTFMax]byte
		size := utf8.EncodeRune(tmp[:], r)
		for i := 0; i < size; i++ {
			buf = append(buf, tmp[i])
			n.starts = append(n.starts, start)
			n.ends = append(n.ends, end)
		}
	}

	pendingSpace := -1 // original offset of the first whitespace in a pending run
	for i, r := range s {
		switch {
		case unicode.IsSpace(r):
			// Leading whitespace is trimmed; interior runs collapse to one space
			if len(buf) > 0 && pendingSpace < 0 {
				pendingSpace = i
			}
		case isWordRune(r):
			if pendingSpace >= 0 {
				emit(' ', pendingSpace, pendingSpace+1)
				pendingSpace = -1
			}
			emit(unicode.ToLower(r), i, i+utf8.RuneLen(r))
		default:
			// Punctuation and symbols are dropped entirely
		}
	}

	n.Text = string(buf)
	return n
}

// OriginalSpan maps a byte range of the normalized text back to the covering
// byte range of the original text. The range must be non-empty and in bounds.
func (n *Normalized) OriginalSpan(start, end int) (int, int) {
	if start < 0 || end <= start || end > len(n.Text) {
		return 0, 0
	}
	return n.starts[start], n.ends[end-1]
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
