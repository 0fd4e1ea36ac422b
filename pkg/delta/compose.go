package delta

// Apply returns the document that results from applying change to doc. A
// document is itself a Delta of plain inserts, so this is exactly
// Compose(doc, change, reg): Quill's algebra doesn't need a distinct
// "apply" primitive, since composing a change onto a document is the
// same walk as composing two changes.
func Apply(doc, change *Delta, reg *Registry) *Delta {
	return Compose(doc, change, reg)
}

// Compose returns a single Delta equivalent to applying b on top of a.
// reg may be nil; it is only consulted when both sides of a retain/retain
// step carry embeds of the same kind.
func Compose(a, b *Delta, reg *Registry) *Delta {
	itA := a.Iterator()
	itB := b.Iterator()
	result := New()

	for itA.HasNext() || itB.HasNext() {
		if itB.PeekType() == InsertType {
			result.Push(itB.Next(0))
			continue
		}
		if itA.PeekType() == DeleteType {
			result.Push(itA.Next(0))
			continue
		}

		length := min(itA.PeekLength(), itB.PeekLength())
		opA := itA.Next(length)
		opB := itB.Next(length)
		requireFullConsumption(length, opA, opB)

		switch opB.Type {
		case RetainType:
			switch opA.Type {
			case RetainType:
				attrs := composeAttributes(opA.Attributes, opB.Attributes, true)
				switch {
				case opB.IsEmbed():
					embed := composeEmbeds(reg, opA.Embed, opB.Embed, true)
					result.Push(newRetainEmbed(embed, attrs))
				case opA.IsEmbed():
					result.Push(newRetainEmbed(opA.Embed.Clone(), attrs))
				default:
					result.Push(newRetain(length, attrs))
				}
			case InsertType:
				attrs := composeAttributes(opA.Attributes, opB.Attributes, false)
				if opA.IsEmbed() {
					result.Push(newInsertEmbed(opA.Embed.Clone(), attrs))
				} else {
					result.Push(newInsertText(opA.Str, attrs))
				}
			}
		case DeleteType:
			if opA.Type == RetainType {
				result.Push(newDelete(length))
			}
			// opA.Type == InsertType: insert cancelled by delete, emit nothing.
		}
	}

	return result.Chop()
}
