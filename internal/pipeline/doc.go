// Package pipeline prepares raw article input for parsing.
//
// Input passes through two stages:
//   - Front matter extraction (YAML, TOML or JSON header) for per-article
//     settings such as title, illustration count and theme
//   - Text normalisation (line endings, byte order mark)
//
// Normalisation never adds or removes lines: physical line numbers of the
// normalised body are the coordinates illustrations are anchored to.
package pipeline
