package delta

import (
	"unicode/utf8"

	"github.com/clipperhouse/uax29/graphemes"
)

// Grapheme is one user-perceived character segmented out of a document's
// text content: a single code point, or several combined (a combining
// accent, an emoji ZWJ sequence, and so on).
type Grapheme struct {
	Text     string
	StartPos int // code-point offset into PlainText
	CharLen  int // length in code points
}

// PlainText concatenates every text insert in the Delta, in order. Embed
// inserts contribute nothing: grapheme segmentation is a text-content
// concern, and embeds are opaque atoms outside of it.
func (d *Delta) PlainText() string {
	var out []byte
	for _, op := range d.ops {
		if op.Type == InsertType && !op.IsEmbed() {
			out = append(out, op.Str...)
		}
	}
	return string(out)
}

// Graphemes segments this Delta's PlainText into grapheme clusters using
// the Unicode UAX #29 algorithm. This is a convenience on top of the
// algebra, not part of it: the core operators slice at UTF-16 code-unit
// boundaries, leaving grapheme safety to the caller.
func (d *Delta) Graphemes() []Grapheme {
	content := d.PlainText()
	if content == "" {
		return nil
	}
	segments := graphemes.SegmentAllString(content)
	out := make([]Grapheme, len(segments))
	pos := 0
	for i, seg := range segments {
		n := utf8.RuneCountInString(seg)
		out[i] = Grapheme{Text: seg, StartPos: pos, CharLen: n}
		pos += n
	}
	return out
}

// GraphemeCount returns the number of grapheme clusters in PlainText.
func (d *Delta) GraphemeCount() int {
	return len(d.Graphemes())
}

// GraphemeSlice returns the text covered by grapheme cluster indices
// [start, end), safe against splitting a combining sequence or an emoji
// ZWJ sequence in half.
func (d *Delta) GraphemeSlice(start, end int) string {
	gs := d.Graphemes()
	if start < 0 || end > len(gs) || start > end {
		return ""
	}
	var out []byte
	for _, g := range gs[start:end] {
		out = append(out, g.Text...)
	}
	return string(out)
}
