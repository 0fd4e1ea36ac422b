package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformPosition_InsertBeforeShiftsForward(t *testing.T) {
	change := New().Insert("abc", nil)
	assert.Equal(t, 8, TransformPosition(change, 5, false))
}

func TestTransformPosition_InsertAtIndexPriorityKeepsPut(t *testing.T) {
	change := New().Insert("abc", nil)
	assert.Equal(t, 0, TransformPosition(change, 0, true))
}

func TestTransformPosition_InsertAtIndexNoPriorityShifts(t *testing.T) {
	change := New().Insert("abc", nil)
	assert.Equal(t, 3, TransformPosition(change, 0, false))
}

func TestTransformPosition_DeleteBeforeShiftsBack(t *testing.T) {
	change := New().Delete(3)
	assert.Equal(t, 2, TransformPosition(change, 5, false))
}

func TestTransformPosition_DeleteSpanningIndexClampsToDeletionPoint(t *testing.T) {
	change := New().Delete(10)
	assert.Equal(t, 0, TransformPosition(change, 5, false))
}

func TestTransformPosition_RetainDoesNotShift(t *testing.T) {
	change := New().Retain(3, Attributes{"bold": true})
	assert.Equal(t, 5, TransformPosition(change, 5, false))
}

func TestTransformPosition_InsertAfterIndexDoesNotShift(t *testing.T) {
	change := New().Retain(10, nil).Insert("xyz", nil)
	assert.Equal(t, 5, TransformPosition(change, 5, false))
}
