package delta

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterHandler implements EmbedHandler for a numeric "counter" embed:
// composing two counters sums them, transforming keeps b unless priority
// favors a, and inverting subtracts back to base.
type counterHandler struct{}

func (counterHandler) Compose(a, b interface{}, keepNull bool) (interface{}, error) {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if !aok || !bok {
		return nil, errors.New("counter: non-numeric payload")
	}
	return af + bf, nil
}

func (counterHandler) Transform(a, b interface{}, priority bool) (interface{}, error) {
	if priority {
		return a, nil
	}
	return b, nil
}

func (counterHandler) Invert(change, base interface{}) (interface{}, error) {
	cf, cok := change.(float64)
	bf, bok := base.(float64)
	if !cok || !bok {
		return nil, errors.New("counter: non-numeric payload")
	}
	return bf - cf, nil
}

// TestRegisterEmbed_Idempotent registers two distinct handlers under
// independently generated kinds (uuid.NewString distinguishes them the way
// a caller registering embed kinds at startup would) and checks that
// re-registering a kind replaces rather than stacks its handler.
func TestRegisterEmbed_Idempotent(t *testing.T) {
	kindA := "counter-" + uuid.NewString()
	kindB := "counter-" + uuid.NewString()
	require.NotEqual(t, kindA, kindB)

	reg := NewRegistry()
	reg.Register(kindA, counterHandler{})
	reg.Register(kindB, counterHandler{})

	a := New().RetainEmbed(Attributes{kindA: 2.0}, nil)
	b := New().RetainEmbed(Attributes{kindA: 3.0}, nil)
	composed := Compose(a, b, reg)
	require.Equal(t, 1, composed.Len())
	assert.Equal(t, 5.0, composed.Ops()[0].Embed[kindA])

	// Re-registering kindA with a no-op handler replaces the summing one.
	reg.Register(kindA, passthroughHandler{})
	composed2 := Compose(a, b, reg)
	assert.Equal(t, 3.0, composed2.Ops()[0].Embed[kindA], "re-registration must replace, not stack, the handler")
}

// passthroughHandler always declines, forcing the default fallback
// semantics documented on EmbedHandler.
type passthroughHandler struct{}

func (passthroughHandler) Compose(a, b interface{}, keepNull bool) (interface{}, error) {
	return nil, errors.New("decline")
}
func (passthroughHandler) Transform(a, b interface{}, priority bool) (interface{}, error) {
	return nil, errors.New("decline")
}
func (passthroughHandler) Invert(change, base interface{}) (interface{}, error) {
	return nil, errors.New("decline")
}

func TestEmbedRegistry_ComposeDelegates(t *testing.T) {
	kind := "counter-" + uuid.NewString()
	reg := NewRegistry()
	reg.Register(kind, counterHandler{})

	a := New().RetainEmbed(Attributes{kind: 10.0}, nil)
	b := New().RetainEmbed(Attributes{kind: 1.0}, nil)
	got := Compose(a, b, reg)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, 11.0, got.Ops()[0].Embed[kind])
}

func TestEmbedRegistry_InvertDelegates(t *testing.T) {
	kind := "counter-" + uuid.NewString()
	reg := NewRegistry()
	reg.Register(kind, counterHandler{})

	base := New().InsertEmbed(Attributes{kind: 7.0}, nil)
	change := New().RetainEmbed(Attributes{kind: 10.0}, nil)
	inverted, err := Invert(change, base, reg)
	require.NoError(t, err)
	require.Equal(t, 1, inverted.Len())
	assert.Equal(t, -3.0, inverted.Ops()[0].Embed[kind])
}

func TestEmbedRegistry_NoHandlerFallsBackToOverwrite(t *testing.T) {
	a := New().RetainEmbed(Attributes{"image": "a.png"}, nil)
	b := New().RetainEmbed(Attributes{"image": "b.png"}, nil)
	got := Compose(a, b, nil)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "b.png", got.Ops()[0].Embed["image"])
}
