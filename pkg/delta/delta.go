package delta

// Delta is a canonical, ordered sequence of operations. The same structure
// represents both a document (every op an insert) and a change (any mix
// of insert/retain/delete) — see the GLOSSARY. Delta is a value object:
// every algebraic operator (Compose, Transform, Diff, Invert) returns a
// new Delta without mutating its receiver or arguments. The builder
// methods (Insert, Retain, Delete, Push, Chop) are the only mutators, and
// are meant to be used only while constructing a Delta before it is
// handed to the rest of the program.
type Delta struct {
	ops []Op
}

// New returns an empty Delta ready for building.
func New() *Delta {
	return &Delta{}
}

// Insert appends text with the given attributes. A null-valued attribute
// on an insert is equivalent to the attribute being absent and is
// stripped immediately.
func (d *Delta) Insert(text string, attrs Attributes) *Delta {
	if text == "" {
		return d
	}
	return d.Push(newInsertText(text, stripNullAttributes(attrs)))
}

// InsertEmbed appends a single-key embed payload with the given
// attributes.
func (d *Delta) InsertEmbed(embed Attributes, attrs Attributes) *Delta {
	if len(embed) == 0 {
		return d
	}
	return d.Push(newInsertEmbed(embed.Clone(), stripNullAttributes(attrs)))
}

// Retain appends a retain of n units with the given attributes. attrs may
// carry null values, meaning "unset this attribute".
func (d *Delta) Retain(n int, attrs Attributes) *Delta {
	if n <= 0 {
		return d
	}
	return d.Push(newRetain(n, attrs))
}

// RetainEmbed appends a retain over an embed payload, used to transform
// or compose embed-valued attributes.
func (d *Delta) RetainEmbed(embed Attributes, attrs Attributes) *Delta {
	if len(embed) == 0 {
		return d
	}
	return d.Push(newRetainEmbed(embed.Clone(), attrs))
}

// Delete appends a delete of n units.
func (d *Delta) Delete(n int) *Delta {
	if n <= 0 {
		return d
	}
	return d.Push(newDelete(n))
}

// Push appends op to the sequence, applying push-time normalization:
// zero-length ops are discarded, inserts are reordered ahead of a
// trailing delete, and adjacent compatible ops are merged.
func (d *Delta) Push(op Op) *Delta {
	if op.isZeroLength() {
		return d
	}
	if len(d.ops) == 0 {
		d.ops = append(d.ops, op)
		return d
	}

	lastIdx := len(d.ops) - 1
	last := d.ops[lastIdx]

	if op.Type == InsertType && last.Type == DeleteType {
		// Keep inserts ordered ahead of deletes at any position: pull
		// the trailing delete off, push op against whatever precedes
		// it, then restore the delete at the tail.
		d.ops = d.ops[:lastIdx]
		d.Push(op)
		d.ops = append(d.ops, last)
		return d
	}

	if canMergeOps(last, op) {
		d.ops[lastIdx] = mergeOps(last, op)
		return d
	}

	d.ops = append(d.ops, op)
	return d
}

// Chop removes a trailing bare retain (no attributes, not an embed): it
// is a no-op at the tail of a change.
func (d *Delta) Chop() *Delta {
	if n := len(d.ops); n > 0 {
		last := d.ops[n-1]
		if last.Type == RetainType && !last.IsEmbed() && len(last.Attributes) == 0 {
			d.ops = d.ops[:n-1]
		}
	}
	return d
}

// Ops returns a defensive copy of the underlying op sequence.
func (d *Delta) Ops() []Op {
	out := make([]Op, len(d.ops))
	copy(out, d.ops)
	return out
}

// Len returns the number of ops in the sequence.
func (d *Delta) Len() int {
	return len(d.ops)
}

// Length returns the sum of every op's length over the sequence.
func (d *Delta) Length() int {
	total := 0
	for _, op := range d.ops {
		total += op.Length()
	}
	return total
}

// ChangeLength returns the net document-length change this Delta would
// apply: total inserted length minus total deleted length.
func (d *Delta) ChangeLength() int {
	total := 0
	for _, op := range d.ops {
		switch op.Type {
		case InsertType:
			total += op.Length()
		case DeleteType:
			total -= op.Length()
		}
	}
	return total
}

// IsDocument reports whether every op is an insert, i.e. this Delta can
// stand in for a document rather than a change.
func (d *Delta) IsDocument() bool {
	for _, op := range d.ops {
		if op.Type != InsertType {
			return false
		}
	}
	return true
}

// IsNoop reports whether applying this Delta changes nothing: either it
// is empty, or it consists solely of bare retains.
func (d *Delta) IsNoop() bool {
	for _, op := range d.ops {
		if op.Type != RetainType || op.IsEmbed() || len(op.Attributes) > 0 {
			return false
		}
	}
	return true
}

// Iterator returns a fresh cursor over this Delta's ops.
func (d *Delta) Iterator() *Iterator {
	return NewIterator(d.ops)
}

// Slice returns the ops covering [start, end) in length-space, splitting
// inserts at UTF-16 code-unit boundaries and retains/deletes at integer
// boundaries; embeds are atomic.
func (d *Delta) Slice(start, end int) *Delta {
	if end <= 0 {
		end = d.Length()
	}
	result := New()
	it := d.Iterator()
	index := 0
	for it.HasNext() && index < end {
		var op Op
		if index < start {
			op = it.Next(start - index)
		} else {
			op = it.Next(end - index)
			result.Push(op)
		}
		index += op.Length()
	}
	return result
}

// Equals reports structural equality: same ops, in order, with
// order-independent attribute-map comparison.
func (d *Delta) Equals(other *Delta) bool {
	if other == nil {
		return d == nil || len(d.ops) == 0
	}
	if len(d.ops) != len(other.ops) {
		return false
	}
	for i := range d.ops {
		if !opsEqual(d.ops[i], other.ops[i]) {
			return false
		}
	}
	return true
}

func opsEqual(a, b Op) bool {
	if a.Type != b.Type {
		return false
	}
	if !attributesEqual(a.Attributes, b.Attributes) {
		return false
	}
	if a.IsEmbed() != b.IsEmbed() {
		return false
	}
	if a.IsEmbed() {
		return attributesEqual(a.Embed, b.Embed)
	}
	switch a.Type {
	case InsertType:
		return a.Str == b.Str
	case RetainType, DeleteType:
		return a.Len == b.Len
	}
	return true
}

// fromOps builds a Delta by pushing each op in order through the
// normalizer.
func fromOps(ops []Op) *Delta {
	d := New()
	for _, op := range ops {
		d.Push(op)
	}
	return d
}
