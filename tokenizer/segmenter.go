package tokenizer

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// SegmentKind tags a Segment as an ordinary BPE-eligible run or a
// verbatim special-token match (spec §3).
type SegmentKind int

// Segment kinds.
const (
	Ordinary SegmentKind = iota
	Special
)

// Segment is a tagged byte span of the input text (spec §3). Specials
// carry their rank directly; ordinaries defer to the BPE core.
type Segment struct {
	Kind  SegmentKind
	Bytes string // text[Start:End]
	Start int    // byte offset into the original text
	End   int    // byte offset into the original text, exclusive
	Rank  Rank   // valid only when Kind == Special
}

// Segmenter enumerates the pre-tokenization boundaries of an ordinary
// (special-token-free) run of text, per spec §4.B/§4.D.
type Segmenter interface {
	// Split returns, in order, the byte-offset [start,end) boundaries of
	// every pre-token in s. Boundaries are contiguous and gap-free: the
	// first starts at 0, the last ends at len(s).
	Split(s string) [][2]int
}

// regexSegmenter implements Segmenter by matching the compiled
// alternation rune-by-rune (regexp2 reports match offsets in runes, not
// bytes) and translating rune spans back to byte spans.
type regexSegmenter struct {
	re *regexp2.Regexp
}

// NewRegexSegmenter builds a Segmenter from a compiled pre-tokenization
// pattern (spec §4.B).
func NewRegexSegmenter(re *regexp2.Regexp) Segmenter {
	return &regexSegmenter{re: re}
}

func (g *regexSegmenter) Split(s string) [][2]int {
	if s == "" {
		return nil
	}

	// Build a rune-index -> byte-offset table once, so match indices
	// (which regexp2 reports in runes) translate to the byte offsets
	// the rest of the pipeline (trim modes, per-id source spans) needs.
	byteOffsets := make([]int, 0, len(s)+1)
	for i := range s {
		byteOffsets = append(byteOffsets, i)
	}
	byteOffsets = append(byteOffsets, len(s))
	lastRune := len(byteOffsets) - 1

	spans := make([][2]int, 0, lastRune/3+1)
	cursorRune := 0

	m, _ := g.re.FindStringMatch(s)
	for m != nil {
		start, length := m.Index, m.Length
		if start > cursorRune {
			// The alternation left a gap; every pre-tokenization pattern
			// in spec §4.B is exhaustive over runes (whitespace, letter,
			// number, and "everything else" alternatives jointly cover
			// every character), so this should not happen. Fall back to
			// one ordinary span covering the whole gap to guarantee coverage.
			spans = append(spans, [2]int{byteOffsets[cursorRune], byteOffsets[start]})
			cursorRune = start
		}
		end := start + length
		if end <= cursorRune {
			// Zero-width or non-advancing match; force one rune of
			// progress rather than looping forever.
			end = cursorRune + 1
		}
		spans = append(spans, [2]int{byteOffsets[cursorRune], byteOffsets[end]})
		cursorRune = end
		m, _ = g.re.FindNextMatch(m)
	}
	if cursorRune < lastRune {
		spans = append(spans, [2]int{byteOffsets[cursorRune], byteOffsets[lastRune]})
	}
	return spans
}

// SpecialLiteral is one entry of the sorted special-token table used for
// longest-match literal scanning (spec §4.B/§4.D/§9: specials are never
// matched by regex). Exported so the root façade can hold a sorted table
// across calls instead of re-sorting per Encode.
type SpecialLiteral struct {
	Text string
	Rank Rank
}

// SortedSpecials returns the specials table sorted by descending byte
// length, then lexicographically, enforcing longest-match-first per
// spec §3.
func SortedSpecials(specials map[string]Rank) []SpecialLiteral {
	out := make([]SpecialLiteral, 0, len(specials))
	for lit, r := range specials {
		out = append(out, SpecialLiteral{Text: lit, Rank: r})
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			a, b := out[j-1], out[j]
			if len(a.Text) > len(b.Text) || (len(a.Text) == len(b.Text) && a.Text <= b.Text) {
				break
			}
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// findNextSpecial scans text[from:] for the earliest occurrence of any
// literal in allowed (spec §4.D step 1): lowest byte position wins; ties
// at the same position are broken by longest literal. specials must
// already be sorted by SortedSpecials.
func findNextSpecial(text string, from int, specials []SpecialLiteral, allowed map[string]struct{}) (lit SpecialLiteral, start int, found bool) {
	if len(allowed) == 0 {
		return SpecialLiteral{}, 0, false
	}
	bestStart := -1
	bestLen := -1
	for _, sl := range specials {
		if _, ok := allowed[sl.Text]; !ok {
			continue
		}
		idx := strings.Index(text[from:], sl.Text)
		if idx < 0 {
			continue
		}
		abs := from + idx
		if bestStart == -1 || abs < bestStart || (abs == bestStart && len(sl.Text) > bestLen) {
			bestStart = abs
			bestLen = len(sl.Text)
			lit = sl
		}
	}
	if bestStart == -1 {
		return SpecialLiteral{}, 0, false
	}
	return lit, bestStart, true
}

// Segments implements the full splitting procedure of spec §4.D: it
// interleaves literal special-token matches (restricted to allowed) with
// ordinary pre-tokenization runs produced by seg.
func Segments(text string, seg Segmenter, specials []SpecialLiteral, allowed map[string]struct{}) []Segment {
	var out []Segment
	c := 0
	for c < len(text) {
		lit, start, found := findNextSpecial(text, c, specials, allowed)
		ordinaryEnd := len(text)
		if found {
			ordinaryEnd = start
		}
		if ordinaryEnd > c {
			for _, sp := range seg.Split(text[c:ordinaryEnd]) {
				out = append(out, Segment{
					Kind:  Ordinary,
					Bytes: text[c+sp[0] : c+sp[1]],
					Start: c + sp[0],
					End:   c + sp[1],
				})
			}
		}
		if !found {
			break
		}
		end := start + len(lit.Text)
		out = append(out, Segment{
			Kind:  Special,
			Bytes: lit.Text,
			Start: start,
			End:   end,
			Rank:  lit.Rank,
		})
		c = end
	}
	return out
}
