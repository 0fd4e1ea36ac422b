package delta

// Invert computes a Delta that undoes change when applied to the
// document that results from applying change to base. base must be a
// document (insert-only) at least as long as change requires; otherwise
// ErrBaseTooShort is returned.
func Invert(change, base *Delta, reg *Registry) (*Delta, error) {
	result := New()
	baseIndex := 0
	baseLen := base.Length()

	for _, op := range change.ops {
		switch op.Type {
		case InsertType:
			result.Push(newDelete(op.Length()))

		case DeleteType:
			n := op.Length()
			if baseIndex+n > baseLen {
				return nil, ErrBaseTooShort
			}
			restored := base.Slice(baseIndex, baseIndex+n)
			for _, rop := range restored.ops {
				result.Push(rop)
			}
			baseIndex += n

		case RetainType:
			n := op.Length()
			if baseIndex+n > baseLen {
				return nil, ErrBaseTooShort
			}
			baseSlice := base.Slice(baseIndex, baseIndex+n)
			if op.IsEmbed() {
				var baseEmbed, baseAttrs Attributes
				if len(baseSlice.ops) > 0 {
					baseEmbed = baseSlice.ops[0].Embed
					baseAttrs = baseSlice.ops[0].Attributes
				}
				invertedEmbed := invertEmbeds(reg, op.Embed, baseEmbed)
				invertedAttrs := invertAttributes(op.Attributes, baseAttrs)
				result.Push(newRetainEmbed(invertedEmbed, invertedAttrs))
			} else {
				for _, bop := range baseSlice.ops {
					invertedAttrs := invertAttributes(op.Attributes, bop.Attributes)
					result.Push(newRetain(bop.Length(), invertedAttrs))
				}
			}
			baseIndex += n
		}
	}

	return result.Chop(), nil
}
