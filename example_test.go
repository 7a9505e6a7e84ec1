package md2wx_test

import (
	"context"
	"fmt"
	"strings"

	md2wx "github.com/alnah/go-md2wx"
)

// stripes is a stand-in image generator that returns a fixed data URI.
type stripes struct{}

func (stripes) GenerateImage(ctx context.Context, req md2wx.ImageRequest) (string, error) {
	return "data:image/png;base64,iVBORw0KGgo=", nil
}

// Example demonstrates a full run with even spacing followed by export.
func Example() {
	conv, err := md2wx.NewConverter(
		md2wx.WithImageGenerator(stripes{}),
		md2wx.WithProgress(func(st md2wx.Status) { fmt.Println(st) }),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	state := md2wx.NewArticle("Minimalism", "First idea.\n\nSecond idea.\n\nThird idea.").
		WithCount(2).
		WithStrategy(md2wx.StrategyEvenSpacing)

	state, err = conv.Generate(context.Background(), state)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	out, err := conv.Export(state)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(strings.Count(out, "<img"), "images")
	// Output:
	// analyzing content
	// generating cover
	// illustration 1/2
	// illustration 2/2
	// ready
	// 3 images
}

// Example_preview shows the actions attached to a previewed illustration.
func Example_preview() {
	conv, err := md2wx.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	state := md2wx.NewArticle("Notes", "Only line.").WithIllustration(md2wx.Illustration{
		ID: "img-0", Line: 0, URI: "data:image/png;base64,AAAA", Prompt: "a lighthouse",
	})

	page, err := conv.Preview(state)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, n := range page.Nodes {
		if n.Illustration != nil {
			fmt.Println(n.Illustration.ID, n.Illustration.Actions)
		}
	}
	// Output: img-0 [regenerate edit preview]
}
