package block

import "github.com/rivo/uniseg"

// Len returns the number of characters (grapheme clusters) in s.
func Len(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Clamp limits a character offset to [0, n].
func Clamp(offset, n int) int {
	if offset < 0 {
		return 0
	}
	if offset > n {
		return n
	}
	return offset
}

// byteOffset converts a character offset to a byte offset in s.
// Offsets past the end map to len(s).
func byteOffset(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	gr := uniseg.NewGraphemes(s)
	count := 0
	for gr.Next() {
		if count == offset {
			from, _ := gr.Positions()
			return from
		}
		count++
	}
	return len(s)
}

// Slice returns the characters of s in [start, end). Offsets are clamped
// and an inverted range yields the empty string.
func Slice(s string, start, end int) string {
	n := Len(s)
	start = Clamp(start, n)
	end = Clamp(end, n)
	if end <= start {
		return ""
	}
	return s[byteOffset(s, start):byteOffset(s, end)]
}

// Split divides s at a character offset. head+tail always equals s.
func Split(s string, offset int) (head, tail string) {
	at := byteOffset(s, Clamp(offset, Len(s)))
	return s[:at], s[at:]
}

// Width returns the display width of s in terminal cells.
func Width(s string) int {
	return uniseg.StringWidth(s)
}
