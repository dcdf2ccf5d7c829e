// Package paragraph implements the paragraph store: an ordered sequence of
// paragraphs, each holding plain text plus non-overlapping format runs,
// alignment, and attached markers and comments.
//
// The store is optimized for bulk load and incremental editing. Word and
// character counts are maintained as running totals adjusted per mutation,
// so count queries are O(1). All offsets in this package are rune offsets,
// not byte offsets.
package paragraph
