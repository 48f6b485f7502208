package tiktoken

import (
	"fmt"

	"github.com/go-tiktoken/tiktoken-go/tokenizer"
)

// Rank is the token identifier type; re-exported so callers rarely need to
// import the tokenizer subpackage directly.
type Rank = tokenizer.Rank

// EncodeResult is the return type of the trim modes: the emitted ids plus
// the input substring whose encoding equals those ids (spec §3, §4.E).
type EncodeResult struct {
	TokenIDs []Rank
	Text     string
}

// Encoding composes a vocabulary, a compiled pre-tokenization pattern, and
// a special-token table into the public encode/decode surface (spec §4.E).
// It is immutable after construction and safe to share across goroutines.
type Encoding struct {
	name          tokenizer.EncoderName
	vocab         *tokenizer.Vocabulary
	seg           tokenizer.Segmenter
	specials      map[string]Rank
	specialByRank map[Rank]string
	sorted        []tokenizer.SpecialLiteral
}

func newEncoding(name tokenizer.EncoderName, vocab *tokenizer.Vocabulary, seg tokenizer.Segmenter, specials map[string]Rank) *Encoding {
	byRank := make(map[Rank]string, len(specials))
	for lit, r := range specials {
		byRank[r] = lit
	}
	return &Encoding{
		name:          name,
		vocab:         vocab,
		seg:           seg,
		specials:      specials,
		specialByRank: byRank,
		sorted:        tokenizer.SortedSpecials(specials),
	}
}

// Name returns the encoder identity this Encoding was built from ("" for
// an Encoding built from a caller-supplied custom pattern).
func (e *Encoding) Name() tokenizer.EncoderName { return e.name }

// VocabularySize reports the number of ordinary (non-special) entries in
// the underlying vocabulary.
func (e *Encoding) VocabularySize() int { return e.vocab.Len() }

// SpecialTokens returns a copy of this Encoding's special-token table.
func (e *Encoding) SpecialTokens() map[string]Rank {
	out := make(map[string]Rank, len(e.specials))
	for k, v := range e.specials {
		out[k] = v
	}
	return out
}

// AllSpecialTokens returns every special-token literal this Encoding
// knows about, suitable as the allowedSpecials argument to Encode when the
// caller wants the `applyAllSpecial=true` behavior of spec §4.D/§6.
func (e *Encoding) AllSpecialTokens() []string {
	out := make([]string, 0, len(e.specials))
	for lit := range e.specials {
		out = append(out, lit)
	}
	return out
}

func allowedSet(allowedSpecials []string) map[string]struct{} {
	if len(allowedSpecials) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(allowedSpecials))
	for _, s := range allowedSpecials {
		set[s] = struct{}{}
	}
	return set
}

// encodeCore implements spec §4.E's Encode plus the per-id source-span
// tracking §4.E's trim modes need: spans[i] is the [start,end) byte range
// in text that produced ids[i].
func (e *Encoding) encodeCore(text string, allowed map[string]struct{}) (ids []Rank, spans [][2]int, err error) {
	segs := tokenizer.Segments(text, e.seg, e.sorted, allowed)
	for _, seg := range segs {
		if seg.Kind == tokenizer.Special {
			ids = append(ids, seg.Rank)
			spans = append(spans, [2]int{seg.Start, seg.End})
			continue
		}
		pieceRanks, starts, err := tokenizer.BytePairEncode(seg.Bytes, e.vocab)
		if err != nil {
			return nil, nil, err
		}
		for i, r := range pieceRanks {
			ids = append(ids, r)
			spans = append(spans, [2]int{seg.Start + starts[i], seg.Start + starts[i+1]})
		}
	}
	return ids, spans, nil
}

// Encode implements spec §4.E/§6: allowedSpecials names the literals the
// segmenter is allowed to recognize; a nil or empty slice is
// `applyAllSpecial=false` (spec §4.D) — every special-looking substring is
// tokenized as ordinary text.
func (e *Encoding) Encode(text string, allowedSpecials []string) ([]Rank, error) {
	ids, _, err := e.encodeCore(text, allowedSet(allowedSpecials))
	return ids, err
}

// EncodeOrdinary is Encode with an empty allow-list (spec §4.E).
func (e *Encoding) EncodeOrdinary(text string) ([]Rank, error) {
	ids, _, err := e.encodeCore(text, nil)
	return ids, err
}

// Count returns len(Encode(text, allowedSpecials)) without retaining the
// id slice, for prompt-budget checks that only need the token count.
func (e *Encoding) Count(text string, allowedSpecials []string) (int, error) {
	ids, err := e.Encode(text, allowedSpecials)
	return len(ids), err
}

// Decode implements spec §4.E: concatenate the byte sequence for each id
// (ordinary rank or special literal) and UTF-8 decode the result.
func (e *Encoding) Decode(ids []Rank) (string, error) {
	var buf []byte
	for _, id := range ids {
		if lit, ok := e.specialByRank[id]; ok {
			buf = append(buf, lit...)
			continue
		}
		if !e.vocab.AppendBytes(&buf, id) {
			return "", fmt.Errorf("%w: rank %d", ErrVocabIncomplete, id)
		}
	}
	return string(buf), nil
}

// EncodeTrimSuffix implements spec §4.E: encode text, then keep only the
// first maxTokens ids, reporting the input prefix whose encoding equals
// them.
func (e *Encoding) EncodeTrimSuffix(text string, allowedSpecials []string, maxTokens int) (EncodeResult, error) {
	if maxTokens < 0 {
		return EncodeResult{}, errArgument("maxTokens must be >= 0, got %d", maxTokens)
	}
	ids, spans, err := e.encodeCore(text, allowedSet(allowedSpecials))
	if err != nil {
		return EncodeResult{}, err
	}
	if maxTokens == 0 {
		return EncodeResult{TokenIDs: []Rank{}, Text: ""}, nil
	}
	if len(ids) <= maxTokens {
		return EncodeResult{TokenIDs: ids, Text: text}, nil
	}
	cut := spans[maxTokens][0]
	return EncodeResult{TokenIDs: ids[:maxTokens], Text: text[:cut]}, nil
}

// EncodeTrimPrefix is symmetric to EncodeTrimSuffix: it discards ids from
// the head and reports the input suffix starting where the first kept id
// begins.
func (e *Encoding) EncodeTrimPrefix(text string, allowedSpecials []string, maxTokens int) (EncodeResult, error) {
	if maxTokens < 0 {
		return EncodeResult{}, errArgument("maxTokens must be >= 0, got %d", maxTokens)
	}
	ids, spans, err := e.encodeCore(text, allowedSet(allowedSpecials))
	if err != nil {
		return EncodeResult{}, err
	}
	if maxTokens == 0 {
		return EncodeResult{TokenIDs: []Rank{}, Text: ""}, nil
	}
	if len(ids) <= maxTokens {
		return EncodeResult{TokenIDs: ids, Text: text}, nil
	}
	keepFrom := len(ids) - maxTokens
	cut := spans[keepFrom][0]
	return EncodeResult{TokenIDs: ids[keepFrom:], Text: text[cut:]}, nil
}
