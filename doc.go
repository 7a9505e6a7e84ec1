// Package md2wx turns a markdown article into an illustrated,
// inline-styled fragment ready to paste into a rich-text publishing
// editor.
//
// An article moves through a single ArticleState value. Each user action
// or upstream completion produces a new state rather than mutating the
// old one:
//
//	conv, err := md2wx.NewConverter(
//		md2wx.WithAnalyzer(analyzer),
//		md2wx.WithImageGenerator(images),
//	)
//	if err != nil {
//		return err
//	}
//
//	state := md2wx.NewArticle("My title", markdown)
//	state, err = conv.Generate(ctx, state)
//	if err != nil {
//		return err
//	}
//
//	fragment, err := conv.Export(state)
//
// Generation runs strictly in sequence: content analysis, then the cover,
// then one illustration at a time. A failed analysis falls back to even
// spacing; a failed image aborts the run. Regenerate replaces a single
// illustration or cover and rejects overlapping requests with
// ErrRegenerationInFlight.
//
// Export produces the static fragment with every declaration marked
// !important. Preview produces a node tree for interactive front ends,
// with regenerate, edit and preview actions attached to each
// illustration.
package md2wx
