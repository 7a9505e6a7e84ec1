// Package yamlutil isolates the YAML library behind a small decode and
// file API shared by configuration, themes and saved article state.
package yamlutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// MaxInputSize is the default decode limit (1MB). Callers decoding large
// documents such as saved state raise it per call with WithLimit.
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

type decodeOptions struct {
	strict bool
	limit  int
}

// DecodeOption configures Decode and ReadFile.
type DecodeOption func(*decodeOptions)

// Strict rejects unknown fields.
func Strict() DecodeOption {
	return func(o *decodeOptions) { o.strict = true }
}

// WithLimit overrides MaxInputSize for one call. Non-positive values are
// ignored.
func WithLimit(n int) DecodeOption {
	return func(o *decodeOptions) {
		if n > 0 {
			o.limit = n
		}
	}
}

// Decode parses data into v.
func Decode(data []byte, v any, opts ...DecodeOption) error {
	o := decodeOptions{limit: MaxInputSize}
	for _, opt := range opts {
		opt(&o)
	}

	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > o.limit {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), o.limit)
	}
	if v == nil {
		return ErrNilDestination
	}

	var yamlOpts []yaml.DecodeOption
	if o.strict {
		yamlOpts = append(yamlOpts, yaml.Strict())
	}
	if err := yaml.UnmarshalWithOptions(data, v, yamlOpts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Unmarshal is Decode without options.
func Unmarshal(data []byte, v any) error {
	return Decode(data, v)
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	return Decode(data, v, Strict())
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// ReadFile reads path and decodes it into v. The returned error wraps
// the os error so callers can test fs.ErrNotExist.
func ReadFile(path string, v any, opts ...DecodeOption) error {
	data, err := os.ReadFile(path) // #nosec G304 -- caller-provided path
	if err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return Decode(data, v, opts...)
}

// WriteFile encodes v and replaces path atomically through a temporary
// file in the same directory.
func WriteFile(path string, v any, perm os.FileMode) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("yamlutil: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
