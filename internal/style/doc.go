// Package style parses inline CSS declaration strings into ordered
// property lists and serialises them back for the two render targets.
//
// The export target forces the override-priority marker (!important) on
// every declaration because rich-text hosts strip styles they consider
// default unless they are marked. The preview target never adds it.
//
// Themes are validated once, at load time, against the closed set of
// semantic roles (h1..h6, p, strong, em, code, a, blockquote, li, ul, ol,
// table, th, td, tr, pre, img, container).
package style
