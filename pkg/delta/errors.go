package delta

import "errors"

// ErrExpectedDocument is returned when an operator that requires a
// document (insert-only Delta) is given a Delta containing retain or
// delete ops.
var ErrExpectedDocument = errors.New("delta: expected a document (insert-only delta)")

// ErrBaseTooShort is returned by Invert when base does not contain enough
// content to cover every retain/delete in the change being inverted.
var ErrBaseTooShort = errors.New("delta: base document shorter than required by change")

// ErrMalformedOp is returned while decoding JSON that does not match the
// canonical op shape: unknown variant, both/neither of insert/retain/delete
// present, a non-positive length, or an embed object that does not have
// exactly one key.
var ErrMalformedOp = errors.New("delta: malformed operation")

// ErrInvariant reports a broken internal contract: Compose and Transform
// each panic with this value (see requireFullConsumption in op.go) if the
// lockstep iterator walk ever pulls a shorter op than the length it just
// promised via PeekLength. It should never surface for callers that only
// ever pass canonical deltas into the algebra.
var ErrInvariant = errors.New("delta: internal invariant violated")
