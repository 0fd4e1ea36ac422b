package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransform_ScenarioColorAttributePriority(t *testing.T) {
	a := New().Retain(4, Attributes{"bold": true})
	b := New().Retain(4, Attributes{"color": "red"})

	left := Transform(a, b, true, nil)
	right := Transform(b, a, false, nil)
	assert.True(t, Compose(a, left, nil).Equals(Compose(b, right, nil)))
}

func TestTransform_ScenarioConcurrentInsertsPriority(t *testing.T) {
	a := New().Insert("A", nil)
	b := New().Insert("B", nil)

	// b has priority: b's insert wins the tie, a's insert is pushed past it.
	aPrime := Transform(b, a, true, nil)
	bPrime := Transform(a, b, false, nil)
	assert.True(t, Compose(a, bPrime, nil).Equals(Compose(b, aPrime, nil)))
}

func TestTransform_DeleteByAErasesOverlappingRetainInB(t *testing.T) {
	a := New().Delete(2)
	b := New().Retain(2, Attributes{"bold": true})
	got := Transform(a, b, false, nil)
	assert.Equal(t, 0, got.Len())
}

func TestTransform_DeleteInBPassesThrough(t *testing.T) {
	a := New().Retain(2, nil)
	b := New().Delete(2)
	got := Transform(a, b, false, nil)
	want := New().Delete(2)
	assert.True(t, want.Equals(got))
}

func TestTransform_IsConsistentWithCompose(t *testing.T) {
	for i := 0; i < 30; i++ {
		doc := randomDocument(20)
		a := randomChange(doc.Length())
		b := randomChange(doc.Length())

		aPrime := Transform(b, a, true, nil)
		bPrime := Transform(a, b, false, nil)

		left := Apply(Apply(doc, a, nil), bPrime, nil)
		right := Apply(Apply(doc, b, nil), aPrime, nil)
		assert.True(t, left.Equals(right))
	}
}

func TestTransform_EmbedsUseRegistryHandler(t *testing.T) {
	reg := NewRegistry()
	reg.Register("counter", transformCounterHandler{})

	a := New().RetainEmbed(Attributes{"counter": 1}, nil)
	b := New().RetainEmbed(Attributes{"counter": 2}, nil)
	got := Transform(a, b, false, reg)
	op := got.Ops()[0]
	assert.True(t, op.IsEmbed())
}

type transformCounterHandler struct{}

func (transformCounterHandler) Compose(a, b interface{}, keepLeft bool) (interface{}, error) {
	av, _ := a.(float64)
	bv, _ := b.(float64)
	return av + bv, nil
}

func (transformCounterHandler) Transform(a, b interface{}, priority bool) (interface{}, error) {
	if priority {
		return a, nil
	}
	return b, nil
}

func (transformCounterHandler) Invert(a, base interface{}) (interface{}, error) {
	return base, nil
}
