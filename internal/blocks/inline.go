package blocks

import "strings"

// inlineMatcher tries to match one construct at the start of s and
// returns the run and the number of bytes consumed.
type inlineMatcher func(s string) (Run, int, bool)

// inlineMatchers are tried in priority order at every position.
var inlineMatchers = []inlineMatcher{
	matchDelimited("**", RunStrong),
	matchDelimited("*", RunEm),
	matchDelimited("`", RunCode),
	matchLink,
}

// ParseInline splits paragraph text into runs in a single left-to-right
// pass. Matched spans are consumed whole, so markers inside a bold span
// are never re-read as italic.
func ParseInline(s string) []Run {
	var runs []Run
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			runs = append(runs, Run{Kind: RunText, Text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(s); {
		matched := false
		for _, match := range inlineMatchers {
			if run, n, ok := match(s[i:]); ok {
				flush()
				runs = append(runs, run)
				i += n
				matched = true
				break
			}
		}
		if !matched {
			text.WriteByte(s[i])
			i++
		}
	}
	flush()
	return runs
}

// matchDelimited matches marker + shortest content + marker.
func matchDelimited(marker string, kind RunKind) inlineMatcher {
	return func(s string) (Run, int, bool) {
		if !strings.HasPrefix(s, marker) {
			return Run{}, 0, false
		}
		end := strings.Index(s[len(marker):], marker)
		if end == -1 {
			return Run{}, 0, false
		}
		content := s[len(marker) : len(marker)+end]
		return Run{Kind: kind, Text: content}, len(marker)*2 + end, true
	}
}

// matchLink matches [text](url).
func matchLink(s string) (Run, int, bool) {
	if !strings.HasPrefix(s, "[") {
		return Run{}, 0, false
	}
	mid := strings.Index(s[1:], "](")
	if mid == -1 {
		return Run{}, 0, false
	}
	text := s[1 : 1+mid]
	rest := s[1+mid+2:]
	end := strings.Index(rest, ")")
	if end == -1 {
		return Run{}, 0, false
	}
	url := rest[:end]
	return Run{Kind: RunLink, Text: text, URL: url}, 1 + mid + 2 + end + 1, true
}
