package pipeline

import (
	"context"
	"regexp"
	"strings"
)

var (
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// firstHeading matches a level-1 heading line.
	firstHeading = regexp.MustCompile(`(?m)^[ \t]*# (.+?)[ \t#]*$`)
)

const byteOrderMark = "\ufeff"

// Preprocessor defines the contract for article text normalisation.
type Preprocessor interface {
	Preprocess(ctx context.Context, content string) string
}

// TextPreprocessor normalises line endings and strips a leading byte
// order mark.
type TextPreprocessor struct{}

// Preprocess returns content unchanged when ctx is already cancelled.
func (TextPreprocessor) Preprocess(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	content = strings.TrimPrefix(content, byteOrderMark)
	return normalizeLineEndings(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// FirstHeading returns the text of the first level-1 heading outside
// fenced code, or "".
func FirstHeading(content string) string {
	inCode := false
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}
		if m := firstHeading.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// Compile-time interface check.
var _ Preprocessor = TextPreprocessor{}
