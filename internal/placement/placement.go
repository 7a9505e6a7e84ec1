// Package placement decides where illustrations sit in an article.
//
// It works in the logical coordinate space of non-empty lines (see
// blocks.Paragraphs) and translates every decision back to a physical
// line for the renderer. Results are strictly increasing in physical
// line, and hold exactly the requested count whenever the article has at
// least that many paragraphs.
package placement

import (
	"fmt"
	"math"

	"github.com/alnah/go-md2wx/internal/blocks"
)

// Mode selects the placement strategy.
type Mode int

// Placement modes.
const (
	ModeAssisted Mode = iota
	ModeEvenSpacing
)

// tailWindow is how many trailing paragraphs may hold the final
// illustration in assisted mode.
const tailWindow = 3

// excerptLength is the number of characters kept from the anchoring
// paragraph.
const excerptLength = 20

// Suggestion is an upstream hint: a paragraph and a prompt for it.
type Suggestion struct {
	LogicalIndex int
	Prompt       string
	Rationale    string
}

// Assignment is a final placement decision.
type Assignment struct {
	PhysicalLine int
	LogicalIndex int
	Prompt       string
	Rationale    string
	Excerpt      string
}

// Request holds the scheduler inputs.
type Request struct {
	Title       string
	Paragraphs  []blocks.Paragraph
	Count       int
	Mode        Mode
	Suggestions []Suggestion // nil means no hints are available
}

// Schedule computes the ordered assignments for req.
// Even spacing is used when hints are absent, when the caller asks for
// it, or when there are no more paragraphs than requested illustrations.
func Schedule(req Request) []Assignment {
	if req.Count <= 0 || len(req.Paragraphs) == 0 {
		return nil
	}
	if req.Suggestions == nil || req.Mode == ModeEvenSpacing || len(req.Paragraphs) <= req.Count {
		return EvenSpacing(req.Title, req.Paragraphs, req.Count)
	}
	return assisted(req)
}

// assisted partitions [0, P) into Count zones of equal real width and
// picks one paragraph per zone: the first hint inside the zone, or the
// zone midpoint biased one step later when no hint qualifies.
func assisted(req Request) []Assignment {
	total := len(req.Paragraphs)
	count := req.Count
	zoneWidth := float64(total) / float64(count)

	picker := newPicker(req.Paragraphs, count)
	for i := 0; i < count; i++ {
		start := float64(i) * zoneWidth
		end := float64(i+1) * zoneWidth
		last := i == count-1

		if s, ok := firstInZone(req.Suggestions, total, start, end, last); ok {
			picker.add(i, s.LogicalIndex, s.Prompt, s.Rationale)
			continue
		}

		if last {
			picker.add(i, total-1, fallbackPrompt(req.Title), "tail fill")
			continue
		}
		target := int(math.Floor(start+zoneWidth*0.5)) + 1
		picker.add(i, min(target, total-1), fallbackPrompt(req.Title), fmt.Sprintf("zone fill: zone %d", i+1))
	}
	return picker.result
}

// firstInZone returns the first hint whose index lies in [start, end).
// The final zone is open-ended upward but only accepts hints within the
// last tailWindow paragraphs. Out-of-range indexes are ignored.
func firstInZone(suggestions []Suggestion, total int, start, end float64, last bool) (Suggestion, bool) {
	if last {
		start = math.Max(start, float64(total-tailWindow))
	}
	for _, s := range suggestions {
		if s.LogicalIndex < 0 || s.LogicalIndex >= total {
			continue
		}
		idx := float64(s.LogicalIndex)
		if idx < start {
			continue
		}
		if !last && idx >= end {
			continue
		}
		return s, true
	}
	return Suggestion{}, false
}

// EvenSpacing places illustrations at floor(P*i/count), shifted one step
// later for every zone but the first when P > count, with the final one
// forced onto the last paragraph. It depends only on (P, count).
func EvenSpacing(title string, paragraphs []blocks.Paragraph, count int) []Assignment {
	total := len(paragraphs)
	if count <= 0 || total == 0 {
		return nil
	}

	picker := newPicker(paragraphs, count)
	for i := 0; i < count; i++ {
		target := total * i / count
		if i > 0 && total > count {
			target++
		}
		if i == count-1 {
			target = total - 1
		}
		picker.add(i, min(target, total-1), evenPrompt(title, i), "even spacing")
	}
	return picker.result
}

// picker enforces strict monotonicity across consecutive zone picks.
type picker struct {
	paragraphs []blocks.Paragraph
	count      int
	prev       int
	result     []Assignment
}

func newPicker(paragraphs []blocks.Paragraph, count int) *picker {
	return &picker{
		paragraphs: paragraphs,
		count:      count,
		prev:       -1,
		result:     make([]Assignment, 0, min(count, len(paragraphs))),
	}
}

// add records the pick for zone. A pick not strictly after the previous
// one is bumped to previous+1. Picks are also capped so the remaining
// zones still have a paragraph each; when the article is shorter than
// the requested count a pick with no room left is dropped.
func (p *picker) add(zone, index int, prompt, rationale string) {
	total := len(p.paragraphs)
	remaining := p.count - 1 - zone
	if ceiling := total - 1 - remaining; index > ceiling {
		index = ceiling
	}
	if index <= p.prev {
		index = p.prev + 1
	}
	if index >= total || index < 0 {
		return
	}

	para := p.paragraphs[index]
	p.result = append(p.result, Assignment{
		PhysicalLine: para.PhysicalLine,
		LogicalIndex: para.LogicalIndex,
		Prompt:       prompt,
		Rationale:    rationale,
		Excerpt:      para.Excerpt(excerptLength),
	})
	p.prev = index
}

func fallbackPrompt(title string) string {
	return fmt.Sprintf("Cinematic editorial visual for %q, abstract concept representation.", title)
}

func evenPrompt(title string, i int) string {
	return fmt.Sprintf("Minimalist visualization for %q section %d", title, i+1)
}
