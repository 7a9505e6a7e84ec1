package theme

// Loader loads themes by name.
// Implementations may read from embedded files, disk, or elsewhere.
type Loader interface {
	// LoadTheme returns ErrThemeNotFound when name does not exist and
	// ErrInvalidName when name is unsafe.
	LoadTheme(name string) (*Theme, error)

	// Names lists available themes in sorted order.
	Names() ([]string, error)
}
