// Package cursor implements the cursor and selection engine: logical
// (paragraph, offset) positions, selection anchors, and all navigation
// operations over the document.
//
// Every position produced by this package passes through clamping
// validation before becoming authoritative, so out-of-range input is
// corrected rather than rejected.
package cursor
