package delta

import (
	"errors"
	"sync"
)

// ErrCannotUndo is returned by PerformUndo when the undo stack is empty.
var ErrCannotUndo = errors.New("delta: nothing to undo")

// ErrCannotRedo is returned by PerformRedo when the redo stack is empty.
var ErrCannotRedo = errors.New("delta: nothing to redo")

// ShouldBeComposedWith reports whether a and b look like two consecutive
// edits at the same spot that a caller building an undo history would
// rather store as one entry than two: back-to-back inserts, a delete
// immediately next to a previous delete (covering both the backspace and
// forward-delete directions), or two formatting changes over the same
// span.
func (a *Delta) ShouldBeComposedWith(b *Delta) bool {
	if a.IsNoop() || b.IsNoop() {
		return true
	}

	startA := getStartIndex(a)
	startB := getStartIndex(b)
	simpleA, okA := getSimpleOp(a)
	simpleB, okB := getSimpleOp(b)
	if !okA || !okB {
		return false
	}

	switch {
	case simpleA.Type == InsertType && simpleB.Type == InsertType:
		return startA+simpleA.Length() == startB
	case simpleA.Type == DeleteType && simpleB.Type == DeleteType:
		return startB+simpleB.Length() == startA || startA == startB
	case simpleA.Type == RetainType && simpleB.Type == RetainType &&
		!simpleA.IsEmbed() && !simpleB.IsEmbed() &&
		len(simpleA.Attributes) > 0 && len(simpleB.Attributes) > 0:
		return startA == startB && simpleA.Length() == simpleB.Length()
	}
	return false
}

func isBareRetain(op Op) bool {
	return op.Type == RetainType && !op.IsEmbed() && len(op.Attributes) == 0
}

func getStartIndex(d *Delta) int {
	if len(d.ops) > 0 && isBareRetain(d.ops[0]) {
		return d.ops[0].Length()
	}
	return 0
}

// getSimpleOp extracts the single meaningful op out of a change shaped
// like [retain?, op, retain?] — the common shape for a single local edit
// recorded for the undo stack.
func getSimpleOp(d *Delta) (Op, bool) {
	switch len(d.ops) {
	case 1:
		return d.ops[0], true
	case 2:
		if isBareRetain(d.ops[0]) {
			return d.ops[1], true
		}
		if isBareRetain(d.ops[1]) {
			return d.ops[0], true
		}
	case 3:
		if isBareRetain(d.ops[0]) && isBareRetain(d.ops[2]) {
			return d.ops[1], true
		}
	}
	return Op{}, false
}

// UndoManagerState is the undo manager's current mode.
type UndoManagerState int

const (
	// StateNormal is the default mode, outside of an undo or redo call.
	StateNormal UndoManagerState = iota
	// StateUndoing marks that a PerformUndo callback is in flight.
	StateUndoing
	// StateRedoing marks that a PerformRedo callback is in flight.
	StateRedoing
)

// UndoManager keeps undo/redo stacks of Deltas and rebases them against
// remote changes as they arrive, so local undo history stays consistent
// with a document that's being edited collaboratively.
type UndoManager struct {
	mu          sync.RWMutex
	reg         *Registry
	maxItems    int
	state       UndoManagerState
	dontCompose bool
	undoStack   []*Delta
	redoStack   []*Delta
}

// NewUndoManager returns an UndoManager keeping at most maxItems entries
// per stack (0 or negative defaults to 50). reg is consulted whenever a
// stack entry needs to be composed or transformed across an embed span;
// it may be nil.
func NewUndoManager(maxItems int, reg *Registry) *UndoManager {
	if maxItems <= 0 {
		maxItems = 50
	}
	return &UndoManager{reg: reg, maxItems: maxItems, state: StateNormal}
}

// Add records change onto the appropriate stack given the manager's
// current state. When compose is true and the previous undo entry
// satisfies ShouldBeComposedWith, the two are merged instead of stored
// separately.
func (um *UndoManager) Add(change *Delta, compose bool) {
	um.mu.Lock()
	defer um.mu.Unlock()

	switch um.state {
	case StateUndoing:
		um.redoStack = append(um.redoStack, change)
		um.dontCompose = true
	case StateRedoing:
		um.undoStack = append(um.undoStack, change)
		um.dontCompose = true
	default:
		if !um.dontCompose && compose && len(um.undoStack) > 0 {
			last := um.undoStack[len(um.undoStack)-1]
			if last.ShouldBeComposedWith(change) {
				um.undoStack[len(um.undoStack)-1] = Compose(last, change, um.reg)
			} else {
				um.undoStack = append(um.undoStack, change)
			}
		} else {
			um.undoStack = append(um.undoStack, change)
		}
		um.dontCompose = false
		um.redoStack = nil
	}
	if len(um.undoStack) > um.maxItems {
		um.undoStack = um.undoStack[1:]
	}
	if len(um.redoStack) > um.maxItems {
		um.redoStack = um.redoStack[1:]
	}
}

// Transform rebases both stacks against a remote change, and must be
// called before that change is applied to the shared document.
func (um *UndoManager) Transform(remote *Delta) {
	um.mu.Lock()
	defer um.mu.Unlock()
	um.undoStack = transformStack(um.undoStack, remote, um.reg)
	um.redoStack = transformStack(um.redoStack, remote, um.reg)
}

func transformStack(stack []*Delta, remote *Delta, reg *Registry) []*Delta {
	out := make([]*Delta, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		local := stack[i]
		// The already-applied local entry wins ties against the
		// not-yet-applied remote change when rebasing the stack;
		// remote loses ties when rebased forward for the next entry.
		localPrime := Transform(remote, local, false, reg)
		remote = Transform(local, remote, true, reg)
		if !localPrime.IsNoop() {
			out = append(out, localPrime)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// CanUndo reports whether the undo stack has an entry.
func (um *UndoManager) CanUndo() bool {
	um.mu.RLock()
	defer um.mu.RUnlock()
	return len(um.undoStack) > 0
}

// CanRedo reports whether the redo stack has an entry.
func (um *UndoManager) CanRedo() bool {
	um.mu.RLock()
	defer um.mu.RUnlock()
	return len(um.redoStack) > 0
}

// PerformUndo pops the latest undo entry and invokes fn with it. fn is
// expected to apply the change and, typically, push its inverse back
// onto the manager via Add. The lock is released before fn runs so a
// reentrant Add call doesn't deadlock.
func (um *UndoManager) PerformUndo(fn func(change *Delta)) error {
	um.mu.Lock()
	if len(um.undoStack) == 0 {
		um.mu.Unlock()
		return ErrCannotUndo
	}
	change := um.undoStack[len(um.undoStack)-1]
	um.undoStack = um.undoStack[:len(um.undoStack)-1]
	um.state = StateUndoing
	um.mu.Unlock()

	fn(change)

	um.mu.Lock()
	um.state = StateNormal
	um.mu.Unlock()
	return nil
}

// PerformRedo pops the latest redo entry and invokes fn with it.
func (um *UndoManager) PerformRedo(fn func(change *Delta)) error {
	um.mu.Lock()
	if len(um.redoStack) == 0 {
		um.mu.Unlock()
		return ErrCannotRedo
	}
	change := um.redoStack[len(um.redoStack)-1]
	um.redoStack = um.redoStack[:len(um.redoStack)-1]
	um.state = StateRedoing
	um.mu.Unlock()

	fn(change)

	um.mu.Lock()
	um.state = StateNormal
	um.mu.Unlock()
	return nil
}

// Clear empties both stacks.
func (um *UndoManager) Clear() {
	um.mu.Lock()
	defer um.mu.Unlock()
	um.undoStack = nil
	um.redoStack = nil
}
