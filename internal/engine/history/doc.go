// Package history implements the undo/redo stack: reversible edit commands
// recorded as they execute and replayed in LIFO order, with standard
// branch-discard semantics on the redo side.
package history
