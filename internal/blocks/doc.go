// Package blocks turns article text into a stream of typed block nodes.
//
// The parser recognises a restricted markdown subset: ATX headings
// (levels 1-6), blockquotes, unordered and ordered list items, fenced
// code blocks, pipe tables and paragraphs with bold, italic, inline code
// and link runs. Every node records the physical source lines it spans so
// illustrations can be interleaved after the block that owns their line.
//
// Paragraphs builds the logical coordinate space used for illustration
// placement: a dense index over non-empty lines.
package blocks
