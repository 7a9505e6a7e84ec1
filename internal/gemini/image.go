package gemini

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	md2wx "github.com/alnah/go-md2wx"
	"github.com/alnah/go-md2wx/internal/imagegen"
)

// ErrNoImage is returned when a response carries no inline image.
var ErrNoImage = errors.New("response contains no image")

// GenerateImage renders one image and returns it as a data URI.
func (c *Client) GenerateImage(ctx context.Context, req md2wx.ImageRequest) (string, error) {
	aspect := req.AspectRatio
	if aspect == "" {
		aspect = md2wx.DefaultAspectRatio
	}
	cfg := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: aspect,
			ImageSize:   c.cfg.ImageSize,
		},
	}

	c.logger.Debug("requesting image",
		zap.String("model", c.cfg.ImageModel),
		zap.String("aspectRatio", aspect))

	resp, err := c.models.GenerateContent(ctx, c.cfg.ImageModel, genai.Text(imagePrompt(req, c.cfg.TextLanguage)), cfg)
	if err != nil {
		return "", classify(err)
	}

	data := firstInlineImage(resp)
	if data == nil {
		return "", ErrNoImage
	}
	uri, err := imagegen.DataURI(data)
	if err != nil {
		return "", fmt.Errorf("decoding generated image: %w", err)
	}
	return uri, nil
}

// imagePrompt combines the prompt, the style descriptor and the text
// language constraint.
func imagePrompt(req md2wx.ImageRequest, language string) string {
	return fmt.Sprintf("%s. %s. CRITICAL: Any text MUST be in %s. NO OTHER LANGUAGE. Cinematic photography, 8k.",
		req.Prompt, req.StyleDescriptor, language)
}

func firstInlineImage(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data
		}
	}
	return nil
}
