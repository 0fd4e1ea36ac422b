// Package delta implements the Quill Delta rich-text document model and
// its operational-transform algebra.
//
// A Delta is a compact, attribute-annotated sequence of operations that
// doubles as both a document (when every op is an insert) and a change
// to a document (any mix of insert, retain, and delete). The package
// provides the builder API for constructing Deltas, the four algebraic
// operators that manipulate them, and canonical JSON encoding.
//
// # Overview
//
// The algebra:
//   - Compose(a, b): apply change b on top of a, producing one Delta.
//   - Transform(a, b, priority): rebase b so it applies after a.
//   - TransformPosition(change, index, priority): rebase a cursor.
//   - Diff(a, b): the minimal change converting document a into b.
//   - Invert(change, base): the change that undoes change against base.
//
// # Basic Usage
//
//	d := delta.New().Insert("Hello", nil).Insert("World", delta.Attributes{"bold": true})
//
//	change := delta.New().Retain(5, nil).Insert(" there", nil)
//	applied := delta.Apply(d, change, nil)
//
//	encoded, _ := applied.MarshalJSON()
//
// # Thread Safety
//
// Every Delta returned by the algebra is a fresh value; none of the
// operators mutate their arguments, so Deltas may be freely shared
// across goroutines as read-only data once built. The builder methods
// (Insert, Retain, Delete, Push, Chop) do mutate their receiver and are
// meant to be used single-threaded while constructing a Delta, before
// it is handed off.
//
// # Performance
//
// Compose, Transform, and Invert run in O(len(a) + len(b)). Diff is
// O(N·D) in the worst case, where D is the edit distance, via the
// underlying Myers algorithm.
//
// # Etymology
//
// "Delta" follows Quill's own naming: the mathematical symbol for
// change, here carrying double duty as the representation of a
// document's content at rest.
package delta
