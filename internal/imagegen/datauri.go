// Package imagegen encodes generated images as data URIs and provides an
// offline placeholder generator.
package imagegen

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/h2non/filetype"
)

// Data URI errors.
var (
	ErrNotImage       = errors.New("data is not a recognised image")
	ErrInvalidDataURI = errors.New("invalid data URI")
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

// DataURI sniffs the image format of data and returns a base64 data URI.
func DataURI(data []byte) (string, error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !filetype.IsImage(data) {
		return "", fmt.Errorf("%w (%d bytes)", ErrNotImage, len(data))
	}
	return dataPrefix + kind.MIME.Value + base64Marker + base64.StdEncoding.EncodeToString(data), nil
}

// Decode extracts the bytes of a base64 image data URI and returns them
// with the file extension of the sniffed format.
func Decode(uri string) (data []byte, ext string, err error) {
	rest, ok := strings.CutPrefix(uri, dataPrefix)
	if !ok {
		return nil, "", fmt.Errorf("%w: missing %q prefix", ErrInvalidDataURI, dataPrefix)
	}
	_, payload, ok := strings.Cut(rest, base64Marker)
	if !ok {
		return nil, "", fmt.Errorf("%w: not base64 encoded", ErrInvalidDataURI)
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !filetype.IsImage(data) {
		return nil, "", ErrNotImage
	}
	return data, kind.Extension, nil
}
