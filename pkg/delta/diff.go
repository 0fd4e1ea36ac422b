package delta

import (
	"encoding/json"
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// embedSentinelBase anchors embed sentinels in the supplementary private
// use area (plane 15), a range that never overlaps a real code point a
// document's text could contain and that round-trips cleanly through
// diffmatchpatch's string-based API (unlike a bare UTF-16 surrogate
// half, which collapses to U+FFFD on conversion back to a string).
const embedSentinelBase = rune(0xF0000)

// Diff computes a minimal Delta that converts document a into document b.
// Both a and b must be documents (insert-only); otherwise
// ErrExpectedDocument is returned.
func Diff(a, b *Delta, reg *Registry) (*Delta, error) {
	if !a.IsDocument() || !b.IsDocument() {
		return nil, ErrExpectedDocument
	}
	if a.Equals(b) {
		return New(), nil
	}

	classes := make(map[string]rune)
	next := embedSentinelBase
	sentinels := make(map[rune]bool)
	textA := flattenDocument(a, classes, &next, sentinels)
	textB := flattenDocument(b, classes, &next, sentinels)

	dmp := diffmatchpatch.New()
	rawDiffs := dmp.DiffMain(textA, textB, false)
	rawDiffs = coalesceDiffs(rawDiffs)

	type posChunk struct {
		kind           byte // '=', '+', '-'
		n              int  // length in Delta unit-space
		aStart, bStart int
	}
	chunks := make([]posChunk, 0, len(rawDiffs))
	aPos, bPos := 0, 0
	for _, d := range rawDiffs {
		n := unitLength(d.Text, sentinels)
		if n == 0 {
			continue
		}
		var kind byte
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			kind = '='
		case diffmatchpatch.DiffInsert:
			kind = '+'
		case diffmatchpatch.DiffDelete:
			kind = '-'
		default:
			continue
		}
		chunks = append(chunks, posChunk{kind: kind, n: n, aStart: aPos, bStart: bPos})
		switch kind {
		case '=':
			aPos += n
			bPos += n
		case '-':
			aPos += n
		case '+':
			bPos += n
		}
	}

	// Merge an adjacent delete(1)+insert(1) (or insert(1)+delete(1)) pair
	// into a single embed retain when the registry can diff the two
	// embeds directly, instead of leaving them as an opaque swap.
	merged := make([]posChunk, 0, len(chunks))
	for i := 0; i < len(chunks); i++ {
		cur := chunks[i]
		if i+1 < len(chunks) && cur.n == 1 && chunks[i+1].n == 1 {
			next := chunks[i+1]
			var delC, insC posChunk
			switch {
			case cur.kind == '-' && next.kind == '+':
				delC, insC = cur, next
			case cur.kind == '+' && next.kind == '-':
				insC, delC = cur, next
			default:
				delC = posChunk{}
			}
			if delC.kind == '-' {
				aOps := a.Slice(delC.aStart, delC.aStart+1).Ops()
				bOps := b.Slice(insC.bStart, insC.bStart+1).Ops()
				if len(aOps) == 1 && len(bOps) == 1 && aOps[0].IsEmbed() && bOps[0].IsEmbed() {
					if _, ok := diffEmbeds(reg, aOps[0].Embed, bOps[0].Embed); ok {
						merged = append(merged, posChunk{kind: '~', n: 1, aStart: delC.aStart, bStart: insC.bStart})
						i++
						continue
					}
				}
			}
		}
		merged = append(merged, cur)
	}

	result := New()
	for _, c := range merged {
		switch c.kind {
		case '=':
			emitEqual(result, a.Slice(c.aStart, c.aStart+c.n), b.Slice(c.bStart, c.bStart+c.n))
		case '+':
			for _, op := range b.Slice(c.bStart, c.bStart+c.n).ops {
				result.Push(op)
			}
		case '-':
			result.Push(newDelete(c.n))
		case '~':
			opA := a.Slice(c.aStart, c.aStart+1).Ops()[0]
			opB := b.Slice(c.bStart, c.bStart+1).Ops()[0]
			embed, _ := diffEmbeds(reg, opA.Embed, opB.Embed)
			attrs := diffAttributes(opA.Attributes, opB.Attributes)
			result.Push(newRetainEmbed(embed, attrs))
		}
	}

	return result.Chop(), nil
}

// emitEqual walks two equal-length document slices together, splitting at
// either side's op boundaries so attribute diffs stay local.
func emitEqual(result, aSlice, bSlice *Delta) {
	itA := aSlice.Iterator()
	itB := bSlice.Iterator()
	for itA.HasNext() || itB.HasNext() {
		length := min(itA.PeekLength(), itB.PeekLength())
		opA := itA.Next(length)
		opB := itB.Next(length)
		attrs := diffAttributes(opA.Attributes, opB.Attributes)
		if opA.IsEmbed() || opB.IsEmbed() {
			embed := opA.Embed
			if embed == nil {
				embed = opB.Embed
			}
			result.Push(newRetainEmbed(embed.Clone(), attrs))
		} else {
			result.Push(newRetain(length, attrs))
		}
	}
}

// flattenDocument renders a document as a string suitable for
// diffmatchpatch: text inserts contribute their own runes; embed inserts
// contribute one sentinel rune per distinct (kind, payload) class, shared
// across both documents being diffed via the classes map so that equal
// embeds compare equal and distinct embeds compare distinct.
func flattenDocument(d *Delta, classes map[string]rune, next *rune, sentinels map[rune]bool) string {
	out := make([]rune, 0, d.Length())
	for _, op := range d.ops {
		if op.Type != InsertType {
			continue
		}
		if op.IsEmbed() {
			key := embedClassKey(op.Embed)
			r, ok := classes[key]
			if !ok {
				r = *next
				classes[key] = r
				sentinels[r] = true
				*next++
			}
			out = append(out, r)
		} else {
			out = append(out, []rune(op.Str)...)
		}
	}
	return string(out)
}

func embedClassKey(e Attributes) string {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf("%v", e)
	}
	return string(b)
}

// unitLength measures text in Delta unit-space: UTF-16 code units for
// ordinary runes, 1 for each embed sentinel (instead of the 2 units
// utf16Len would otherwise assign to a rune above U+FFFF).
func unitLength(text string, sentinels map[rune]bool) int {
	n := 0
	for _, r := range text {
		if sentinels[r] {
			n++
			continue
		}
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// coalesceDiffs merges adjacent diffmatchpatch chunks of the same type,
// since DiffMain's recursion can emit runs that a caller-side cleanup
// pass would normally merge (the teacher's own PatchManager calls
// DiffCleanupMerge explicitly for this reason).
func coalesceDiffs(diffs []diffmatchpatch.Diff) []diffmatchpatch.Diff {
	if len(diffs) == 0 {
		return diffs
	}
	out := make([]diffmatchpatch.Diff, 0, len(diffs))
	out = append(out, diffs[0])
	for _, d := range diffs[1:] {
		last := &out[len(out)-1]
		if last.Type == d.Type {
			last.Text += d.Text
			continue
		}
		out = append(out, d)
	}
	return out
}
