package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOp_LengthByVariant(t *testing.T) {
	assert.Equal(t, 5, newInsertText("hello", nil).Length())
	assert.Equal(t, 1, newInsertEmbed(Attributes{"image": "x"}, nil).Length())
	assert.Equal(t, 7, newRetain(7, nil).Length())
	assert.Equal(t, 1, newRetainEmbed(Attributes{"video": "x"}, nil).Length())
	assert.Equal(t, 3, newDelete(3).Length())
}

func TestOp_LengthCountsUTF16SurrogatePairAsTwo(t *testing.T) {
	op := newInsertText("a\U0001F600b", nil) // emoji is one astral code point, two UTF-16 units
	assert.Equal(t, 4, op.Length())
}

func TestUTF16EncodeDecodeRoundTrip(t *testing.T) {
	s := "hello \U0001F600 world"
	units := utf16Encode(s)
	assert.Equal(t, s, utf16Decode(units))
}

func TestCanMergeOps(t *testing.T) {
	a := newInsertText("abc", Attributes{"bold": true})
	b := newInsertText("def", Attributes{"bold": true})
	assert.True(t, canMergeOps(a, b))
	merged := mergeOps(a, b)
	assert.Equal(t, "abcdef", merged.Str)

	c := newInsertText("ghi", Attributes{"bold": false})
	assert.False(t, canMergeOps(a, c))
}

func TestCanMergeOps_EmbedsNeverMerge(t *testing.T) {
	a := newInsertEmbed(Attributes{"image": "1"}, nil)
	b := newInsertEmbed(Attributes{"image": "2"}, nil)
	assert.False(t, canMergeOps(a, b))
}

func TestIsZeroLength(t *testing.T) {
	assert.True(t, newInsertText("", nil).isZeroLength())
	assert.True(t, newRetain(0, nil).isZeroLength())
	assert.True(t, newDelete(0).isZeroLength())
	assert.False(t, newInsertEmbed(Attributes{"image": "x"}, nil).isZeroLength())
}

func TestRequireFullConsumption_AcceptsMatchingLengths(t *testing.T) {
	assert.NotPanics(t, func() {
		requireFullConsumption(3, newDelete(3), newRetain(3, nil))
	})
}

func TestRequireFullConsumption_PanicsOnMismatch(t *testing.T) {
	assert.PanicsWithValue(t, ErrInvariant, func() {
		requireFullConsumption(5, newDelete(3))
	})
}
