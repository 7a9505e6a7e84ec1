// Package render turns parsed blocks, realised illustrations and a theme
// style map into the two output targets:
//
//   - Export: one self-contained, inline-styled markup fragment for
//     rich-text paste hosts. Every declaration carries !important and
//     the body is wrapped in the themed container, cover and closing
//     marker.
//   - Preview: a tree of nodes with camelCase style maps and per
//     illustration actions (regenerate, edit, preview).
//
// Both targets are produced from the same element tree built by layout,
// so block shapes, list grouping and illustration interleaving cannot
// drift apart.
package render
