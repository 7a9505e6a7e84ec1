package md2wx

import (
	"fmt"
	"strings"
)

// ImageStyle names an illustration style from the built-in catalog.
type ImageStyle string

// Built-in image styles.
const (
	StyleModernTech3D    ImageStyle = "modern-tech-3d"
	StylePureAnime       ImageStyle = "pure-anime"
	StyleClayWorld       ImageStyle = "clay-world"
	StyleNeoEditorial    ImageStyle = "neo-editorial"
	StyleMinimalBauhaus  ImageStyle = "minimal-bauhaus"
	StyleEtherealFluid   ImageStyle = "ethereal-fluid"
	StyleRetroCollage    ImageStyle = "retro-collage"
	StylePixelArt        ImageStyle = "pixel-art"
	StyleRisograph       ImageStyle = "risograph"
	StylePaperCutout     ImageStyle = "paper-cutout"
	StyleLofiDoodle      ImageStyle = "lofi-doodle"
	StyleWhiteboard      ImageStyle = "whiteboard"
	StyleMultiPanelManga ImageStyle = "multi-panel-manga"
	StyleGlassmorphism   ImageStyle = "glassmorphism"

	// StyleCustom uses the caller's own descriptor.
	StyleCustom ImageStyle = "custom"
)

// DefaultImageStyle is used when no style is configured.
const DefaultImageStyle = StyleModernTech3D

var styleDescriptors = map[ImageStyle]string{
	StyleModernTech3D:    "Minimalist 3D render, geometric shapes, floating spheres and cubes, frosted glass and matte ceramic materials, subsurface scattering, Soft gradient lighting, clean studio background, isometric view, tech palette.",
	StylePureAnime:       "Japanese anime manga style frame, digital illustration, clean line art, intricate background art details, cel shading, cinematic feel, beautiful detailed scenery.",
	StyleClayWorld:       "Claymorphism style, smooth plasticine texture, soft rounded shapes, handmade feel with slight visible fingerprints and imperfections, stop-motion animation aesthetic.",
	StyleNeoEditorial:    "Flat vector art style with overall subtle grainy textures, Stylized characters with exaggerated artistic proportions, Metaphorical storytelling, limited retro color palette.",
	StyleMinimalBauhaus:  "Black ink lines on textured aged beige paper. Abstract geometric forms, Bauhaus design influence, Monochromatic with typically one single primary color accent.",
	StyleEtherealFluid:   "Organic fluid shapes, smooth gradients, translucent layers, soft blurred glass effect, Ethereal light leaks, dreamy atmosphere, calming bokeh lights.",
	StyleRetroCollage:    "Mixed media collage style, Vintage black and white photography cutouts mixed with colorful modern geometric shapes, pop art elements, torn paper edges.",
	StylePixelArt:        "Detailed 16-bit pixel art style, sharp village pixels, retro video game aesthetic, isometric miniature world view, vibrant arcade colors.",
	StyleRisograph:       "Risograph printing effect, heavy coarse grain texture, stippling shading, Imperfect alignment of color layers (misprint effect), limited ink palette.",
	StylePaperCutout:     "Paper cutout art style, diorama effect, Multiple layers of colored paper with distinct real cast shadows, soft overhead lighting.",
	StyleLofiDoodle:      "Loose pencil sketch or black marker doodle style, Rough wobbly lines, minimalist sketchy shading, notebook paper texture, authentic vibe.",
	StyleWhiteboard:      "Dry-erase marker drawing style on a whiteboard, Thick slightly textured marker lines, standard marker colors (black, blue, red), glossy white board surface with reflections.",
	StyleMultiPanelManga: "A comic strip layout with multiple panels (sequential grid) illustrating the subject. Black and white manga drawing style, ink lines, halftone screen tones for shading, thick grid borders, speech bubbles, dynamic onomatopoeia.",
	StyleGlassmorphism:   "Glassmorphism UI style, abstract frosted glass elements with soft glowing white edges, strong background blur, light refraction, vibrant neon gradient background, modern high-tech aesthetic.",
}

// ImageStyles returns the built-in styles in catalog order, custom last.
func ImageStyles() []ImageStyle {
	return []ImageStyle{
		StyleModernTech3D, StylePureAnime, StyleClayWorld, StyleNeoEditorial,
		StyleMinimalBauhaus, StyleEtherealFluid, StyleRetroCollage, StylePixelArt,
		StyleRisograph, StylePaperCutout, StyleLofiDoodle, StyleWhiteboard,
		StyleMultiPanelManga, StyleGlassmorphism, StyleCustom,
	}
}

// ParseImageStyle accepts a style name in any case. Empty selects the
// default style.
func ParseImageStyle(s string) (ImageStyle, error) {
	name := ImageStyle(strings.ToLower(strings.TrimSpace(s)))
	if name == "" {
		return DefaultImageStyle, nil
	}
	if name == StyleCustom {
		return name, nil
	}
	if _, ok := styleDescriptors[name]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidImageStyle, s)
	}
	return name, nil
}

// Descriptor returns the text sent to the image generator for this
// style. A custom style requires a non-empty custom descriptor.
func (s ImageStyle) Descriptor(custom string) (string, error) {
	if s == StyleCustom {
		custom = strings.TrimSpace(custom)
		if custom == "" {
			return "", fmt.Errorf("%w: custom style requires a description", ErrInvalidImageStyle)
		}
		return custom, nil
	}
	if s == "" {
		s = DefaultImageStyle
	}
	desc, ok := styleDescriptors[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidImageStyle, string(s))
	}
	return desc, nil
}
