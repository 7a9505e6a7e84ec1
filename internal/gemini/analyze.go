package gemini

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"google.golang.org/genai"

	md2wx "github.com/alnah/go-md2wx"
)

// ErrMalformedResponse is returned when the analysis payload is not a
// JSON array.
var ErrMalformedResponse = errors.New("malformed analysis response")

// streamExcerpt is how many characters of each paragraph the model sees.
const streamExcerpt = 30

// analysisSchema constrains the model to an array of suggestions.
var analysisSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"index":           {Type: genai.TypeInteger},
			"suggestedPrompt": {Type: genai.TypeString},
			"reason":          {Type: genai.TypeString},
		},
		Required: []string{"index", "suggestedPrompt", "reason"},
	},
}

// Analyze asks the analysis model where illustrations belong. Entries
// with a non-integer or out-of-range index, or without a prompt, are
// dropped rather than failing the call.
func (c *Client) Analyze(ctx context.Context, req md2wx.AnalysisRequest) ([]md2wx.Suggestion, error) {
	paras := req.Paragraphs
	if paras == nil {
		paras = md2wx.NewArticle(req.Title, req.Content).Paragraphs()
	}
	if len(paras) == 0 {
		return nil, fmt.Errorf("%w: no paragraphs", md2wx.ErrAnalysis)
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisSchema,
		ThinkingConfig:   &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(c.cfg.ThinkingBudget)},
	}

	c.logger.Debug("requesting analysis",
		zap.String("model", c.cfg.AnalysisModel),
		zap.Int("paragraphs", len(paras)),
		zap.Int("count", req.Count))

	resp, err := c.models.GenerateContent(ctx, c.cfg.AnalysisModel, genai.Text(analysisPrompt(req.Title, paras, req.Count)), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", md2wx.ErrAnalysis, classify(err))
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: empty response", md2wx.ErrAnalysis)
	}

	suggestions, skipped, err := parseSuggestions(resp.Text(), len(paras))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", md2wx.ErrAnalysis, err)
	}
	if skipped > 0 {
		c.logger.Debug("analysis entries skipped", zap.Int("skipped", skipped))
	}
	return suggestions, nil
}

// analysisPrompt lays out the article as a paragraph stream the model
// answers against. Progress is the share of paragraphs up to and
// including each one.
func analysisPrompt(title string, paras []md2wx.Paragraph, count int) string {
	total := len(paras)

	var b strings.Builder
	fmt.Fprintf(&b, "Task: plan evenly distributed illustrations for a WeChat official account article.\n\n")
	fmt.Fprintf(&b, "Article facts:\n")
	fmt.Fprintf(&b, "- Title: %s\n", title)
	fmt.Fprintf(&b, "- Required illustrations: %d\n", count)
	fmt.Fprintf(&b, "- Total paragraphs: %d\n\n", total)
	fmt.Fprintf(&b, "Distribution rules:\n")
	fmt.Fprintf(&b, "The article is split into %d equal zones by paragraph count. Pick one paragraph per zone.\n", count)
	fmt.Fprintf(&b, "The last illustration MUST be placed within the final 3 paragraphs.\n\n")
	fmt.Fprintf(&b, "Paragraph stream:\n")
	for _, p := range paras {
		progress := int(math.Round(float64(p.LogicalIndex+1) / float64(total) * 100))
		fmt.Fprintf(&b, "[ID:%d | progress:%d%%] %s...\n", p.LogicalIndex, progress, truncate(p.Text, streamExcerpt))
	}
	fmt.Fprintf(&b, "\nReturn %d JSON objects with:\n", count)
	fmt.Fprintf(&b, "- index (paragraph ID)\n")
	fmt.Fprintf(&b, "- suggestedPrompt (English)\n")
	fmt.Fprintf(&b, "- reason\n")
	return b.String()
}

// parseSuggestions reads the suggestion array leniently. It fails only
// when the payload is not a JSON array.
func parseSuggestions(payload string, total int) (out []md2wx.Suggestion, skipped int, err error) {
	payload = stripFence(payload)
	if !gjson.Valid(payload) {
		return nil, 0, fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
	}
	result := gjson.Parse(payload)
	if !result.IsArray() {
		return nil, 0, fmt.Errorf("%w: expected array, got %s", ErrMalformedResponse, result.Type)
	}

	out = []md2wx.Suggestion{}
	result.ForEach(func(_, item gjson.Result) bool {
		idx := item.Get("index")
		prompt := strings.TrimSpace(item.Get("suggestedPrompt").String())
		if idx.Type != gjson.Number || idx.Num != math.Trunc(idx.Num) || prompt == "" {
			skipped++
			return true
		}
		index := int(idx.Num)
		if index < 0 || index >= total {
			skipped++
			return true
		}
		out = append(out, md2wx.Suggestion{
			Index:     index,
			Prompt:    prompt,
			Rationale: item.Get("reason").String(),
		})
		return true
	})
	return out, skipped, nil
}

// stripFence removes a surrounding ```json fence some models add.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
