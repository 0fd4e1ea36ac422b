package delta

// Transform rebases b so it can be applied after a, preserving intent.
// priority breaks ties when both sides insert at the same position: true
// means a's insert is considered to have happened first.
func Transform(a, b *Delta, priority bool, reg *Registry) *Delta {
	itA := a.Iterator()
	itB := b.Iterator()
	result := New()

	for itA.HasNext() || itB.HasNext() {
		if itA.PeekType() == InsertType && (priority || itB.PeekType() != InsertType) {
			result.Push(newRetain(itA.Next(0).Length(), nil))
			continue
		}
		if itB.PeekType() == InsertType {
			result.Push(itB.Next(0))
			continue
		}

		length := min(itA.PeekLength(), itB.PeekLength())
		opA := itA.Next(length)
		opB := itB.Next(length)
		requireFullConsumption(length, opA, opB)

		if opA.Type == DeleteType {
			// a already removed this span; b's op over it is erased.
			continue
		}
		if opB.Type == DeleteType {
			result.Push(newDelete(length))
			continue
		}

		attrs := transformAttributes(opA.Attributes, opB.Attributes, priority)
		switch {
		case opA.IsEmbed() && opB.IsEmbed():
			embed := transformEmbeds(reg, opA.Embed, opB.Embed, priority)
			result.Push(newRetainEmbed(embed, attrs))
		case opB.IsEmbed():
			result.Push(newRetainEmbed(opB.Embed.Clone(), attrs))
		default:
			result.Push(newRetain(length, attrs))
		}
	}

	return result.Chop()
}
