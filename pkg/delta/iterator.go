package delta

// Iterator is a one-pass, single-threaded cursor over a sequence of ops.
// It never exposes ops by reference for mutation: Next always returns a
// fresh Op value, splitting the underlying op on the fly when the caller
// requests less than its full remaining length.
type Iterator struct {
	ops    []Op
	index  int
	offset int // consumed length-units into ops[index]
}

// NewIterator returns an iterator positioned at the start of ops.
func NewIterator(ops []Op) *Iterator {
	return &Iterator{ops: ops}
}

// HasNext reports whether any real (non-sentinel) op remains.
func (it *Iterator) HasNext() bool {
	return it.index < len(it.ops)
}

// PeekLength returns the remaining length of the op under the cursor, or
// the infinite-retain sentinel length once the sequence is exhausted.
func (it *Iterator) PeekLength() int {
	if !it.HasNext() {
		return infiniteRetainLength
	}
	return it.ops[it.index].Length() - it.offset
}

// PeekType returns the variant of the op under the cursor, treating
// exhaustion as a retain (the sentinel's type).
func (it *Iterator) PeekType() OpType {
	if !it.HasNext() {
		return RetainType
	}
	return it.ops[it.index].Type
}

// PeekIsEmbed reports whether the op under the cursor carries an embed
// payload. Always false once exhausted.
func (it *Iterator) PeekIsEmbed() bool {
	return it.HasNext() && it.ops[it.index].IsEmbed()
}

// Next consumes up to n length-units from the cursor and returns them as
// a standalone Op, splitting the underlying op when n is smaller than its
// remaining length. n <= 0 means "take everything remaining in the
// current op". Embeds are atomic and are always returned whole regardless
// of n. Once the sequence is exhausted, Next returns a bare retain of
// length n (or the infinite sentinel length if n <= 0).
func (it *Iterator) Next(n int) Op {
	if !it.HasNext() {
		if n <= 0 {
			n = infiniteRetainLength
		}
		return newRetain(n, nil)
	}

	op := it.ops[it.index]
	remaining := op.Length() - it.offset
	if n <= 0 || n > remaining {
		n = remaining
	}

	if op.IsEmbed() {
		it.advance(op.Length())
		return op
	}

	switch op.Type {
	case InsertType:
		start := it.offset
		sliced := newInsertText(sliceUTF16Text(op.Str, start, start+n), op.Attributes)
		it.advance(n)
		return sliced
	case RetainType:
		result := newRetain(n, op.Attributes)
		it.advance(n)
		return result
	case DeleteType:
		result := newDelete(n)
		it.advance(n)
		return result
	default:
		it.advance(op.Length())
		return op
	}
}

func (it *Iterator) advance(n int) {
	it.offset += n
	if it.offset >= it.ops[it.index].Length() {
		it.index++
		it.offset = 0
	}
}

// Rest drains and returns every remaining op (including a split partial
// head).
func (it *Iterator) Rest() []Op {
	var out []Op
	for it.HasNext() {
		out = append(out, it.Next(0))
	}
	return out
}

func sliceUTF16Text(s string, start, end int) string {
	if start == 0 && end == utf16Len(s) {
		return s
	}
	u := utf16Encode(s)
	return utf16Decode(u[start:end])
}
