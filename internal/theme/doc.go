// Package theme provides the catalog of document themes used to style
// exported and previewed articles.
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - themes compiled into the binary
//	    ├── FilesystemLoader  - themes from a directory on disk
//	    └── Resolver          - custom-first with embedded fallback
//
// Catalog wraps a Loader and applies the lookup rule used by the
// renderer: an unknown theme identifier falls back to DefaultName.
//
// # File Format
//
// A theme is a YAML file named {name}.yaml under themes/:
//
//	name: wechat-default
//	label: Default
//	styles:
//	  container: "background-color: #ffffff; padding: 20px"
//	  h1: "font-size: 24px; font-weight: bold"
//	  p: "line-height: 1.75"
//
// Style keys must belong to the closed role set in package style; any
// other key rejects the whole theme when it is loaded.
package theme
