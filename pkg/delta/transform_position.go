package delta

// TransformPosition rebases a caret/cursor position against a change. A
// delete consumes index without advancing offset past it, since the
// position it deleted no longer exists to compare against.
func TransformPosition(change *Delta, index int, priority bool) int {
	offset := 0
	for _, op := range change.ops {
		if offset > index {
			break
		}
		l := op.Length()
		if op.Type == DeleteType {
			overlap := l
			if index-offset < overlap {
				overlap = index - offset
			}
			index -= overlap
			continue
		}
		if op.Type == InsertType && (offset < index || !priority) {
			index += l
		}
		offset += l
	}
	return index
}
