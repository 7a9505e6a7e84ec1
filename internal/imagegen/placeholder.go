package imagegen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	md2wx "github.com/alnah/go-md2wx"
)

// ErrInvalidAspectRatio is returned for ratios not in "W:H" form.
var ErrInvalidAspectRatio = errors.New("invalid aspect ratio")

// DefaultWidth is the placeholder width in pixels.
const DefaultWidth = 960

// maxRatioSide bounds each side of an aspect ratio.
const maxRatioSide = 32

var _ md2wx.ImageGenerator = (*Placeholder)(nil)

// Placeholder renders flat colour images without any network access.
// The same prompt and style always produce the same image.
type Placeholder struct {
	width  int
	logger *zap.Logger
}

// NewPlaceholder returns a Placeholder producing images width pixels
// wide. A non-positive width uses DefaultWidth; a nil logger is replaced
// by a no-op one.
func NewPlaceholder(width int, logger *zap.Logger) *Placeholder {
	if width <= 0 {
		width = DefaultWidth
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Placeholder{width: width, logger: logger}
}

// GenerateImage returns a PNG data URI sized to req.AspectRatio.
func (p *Placeholder) GenerateImage(ctx context.Context, req md2wx.ImageRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rw, rh, err := ParseAspectRatio(req.AspectRatio)
	if err != nil {
		return "", err
	}
	height := max(1, p.width*rh/rw)

	bg, fg := palette(req.Prompt + "\x00" + req.StyleDescriptor)
	img := imaging.New(p.width, height, bg)
	panel := imaging.New(p.width*2/3, max(1, height/3), fg)
	img = imaging.PasteCenter(img, panel)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestSpeed)); err != nil {
		return "", fmt.Errorf("encoding placeholder: %w", err)
	}

	p.logger.Debug("placeholder image rendered",
		zap.Int("width", p.width),
		zap.Int("height", height),
		zap.Int("bytes", buf.Len()))
	return DataURI(buf.Bytes())
}

// ParseAspectRatio parses "W:H". Empty selects 16:9.
func ParseAspectRatio(s string) (w, h int, err error) {
	if s == "" {
		return 16, 9, nil
	}
	ws, hs, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAspectRatio, s)
	}
	w, errW := strconv.Atoi(strings.TrimSpace(ws))
	h, errH := strconv.Atoi(strings.TrimSpace(hs))
	if errW != nil || errH != nil || w <= 0 || h <= 0 || w > maxRatioSide || h > maxRatioSide {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAspectRatio, s)
	}
	return w, h, nil
}

// palette derives a muted background and a lighter panel colour from key.
func palette(key string) (bg, fg color.NRGBA) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	sum := h.Sum32()

	r, g, b := uint8(sum>>16), uint8(sum>>8), uint8(sum)
	bg = color.NRGBA{R: 40 + r/3, G: 40 + g/3, B: 40 + b/3, A: 255}
	fg = color.NRGBA{R: 255 - r/4, G: 255 - g/4, B: 255 - b/4, A: 255}
	return bg, fg
}
