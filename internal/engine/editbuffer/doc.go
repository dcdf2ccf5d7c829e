// Package editbuffer implements the mutable edit buffer created on demand
// when the user begins editing. It offers the raw mutation primitives that
// undoable commands are built from (range replacement, paragraph split and
// merge, style application), plus absolute-offset conversion for search
// and IME interoperability.
//
// The buffer keeps the paragraph store synchronized per operation; Commit
// simply releases the buffer once an editing session ends.
package editbuffer
