package tiktoken

import (
	"fmt"
	"strings"

	"github.com/go-tiktoken/tiktoken-go/tokenizer"
)

// EncoderName identifies one of the five supported vocabularies.
type EncoderName = tokenizer.EncoderName

// Re-exported encoder name constants, for callers who don't want to
// import the tokenizer subpackage directly.
const (
	GPT2       = tokenizer.EncoderGPT2
	R50kBase   = tokenizer.EncoderR50kBase
	P50kBase   = tokenizer.EncoderP50kBase
	P50kEdit   = tokenizer.EncoderP50kEdit
	Cl100kBase = tokenizer.EncoderCl100kBase
)

// modelToEncoder is the authoritative exact-match subset of spec §6.
var modelToEncoder = map[string]tokenizer.EncoderName{
	"gpt-4":                 Cl100kBase,
	"gpt-3.5-turbo":         Cl100kBase,
	"text-davinci-003":      P50kBase,
	"text-davinci-002":      P50kBase,
	"code-davinci-002":      P50kBase,
	"code-davinci-001":      P50kBase,
	"code-cushman-002":      P50kBase,
	"code-cushman-001":      P50kBase,
	"davinci-codex":         P50kBase,
	"cushman-codex":         P50kBase,
	"text-davinci-edit-001": P50kEdit,
	"code-davinci-edit-001": P50kEdit,
	"davinci":               R50kBase,
	"curie":                 R50kBase,
	"babbage":               R50kBase,
	"ada":                   R50kBase,
	"text-davinci-001":      R50kBase,
	"text-curie-001":        R50kBase,
	"text-babbage-001":      R50kBase,
	"text-ada-001":          R50kBase,
	"gpt2":                  GPT2,
}

// modelPrefixToEncoder handles the `*`-suffixed entries of spec §6,
// checked after an exact-match miss, mirroring
// richardpark-msft-waza__builder.go's two-tier lookup.
var modelPrefixToEncoder = []struct {
	Prefix  string
	Encoder tokenizer.EncoderName
}{
	{"gpt-4-", Cl100kBase},
	{"gpt-3.5-turbo-", Cl100kBase},
	{"text-similarity-", R50kBase},
	{"text-search-", R50kBase},
	{"code-search-", R50kBase},
}

func encoderForModel(modelName string) (tokenizer.EncoderName, bool) {
	if enc, ok := modelToEncoder[modelName]; ok {
		return enc, true
	}
	for _, entry := range modelPrefixToEncoder {
		if strings.HasPrefix(modelName, entry.Prefix) {
			return entry.Encoder, true
		}
	}
	return "", false
}

// CreateByEncoderName loads name's vocabulary and composes it with that
// encoder's pattern and default specials (spec §4.F).
func CreateByEncoderName(name tokenizer.EncoderName) (*Encoding, error) {
	return CreateByEncoderNameWithSpecials(name, nil)
}

// CreateByEncoderNameWithSpecials is CreateByEncoderName plus caller
// specials merged over the encoder's defaults (spec §4.F: "caller ranks
// override defaults on key collision").
func CreateByEncoderNameWithSpecials(name tokenizer.EncoderName, extraSpecials map[string]Rank) (*Encoding, error) {
	base := tokenizer.DefaultSpecials(name)
	if base == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoder, name)
	}
	vocab, err := tokenizer.LoadVocabularyForEncoder(name)
	if err != nil {
		return nil, err
	}
	seg, err := tokenizer.NewSegmenterForEncoder(name)
	if err != nil {
		return nil, err
	}
	return newEncoding(name, vocab, seg, tokenizer.MergeSpecials(base, extraSpecials)), nil
}

// CreateByModelName maps modelName to an encoder via the table in spec
// §6, then behaves as CreateByEncoderNameWithSpecials.
func CreateByModelName(modelName string, extraSpecials map[string]Rank) (*Encoding, error) {
	name, ok := encoderForModel(modelName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, modelName)
	}
	return CreateByEncoderNameWithSpecials(name, extraSpecials)
}

// NewCustomEncoding builds an Encoding from a caller-supplied vocabulary
// and pre-tokenization pattern rather than one of the five builtin
// encoders, for callers extending the registry per spec §4.B's note that
// a bad custom pattern surfaces as ErrPatternCompile.
func NewCustomEncoding(pattern string, vocab *tokenizer.Vocabulary, specials map[string]Rank) (*Encoding, error) {
	seg, err := tokenizer.NewSegmenterForPattern(pattern)
	if err != nil {
		return nil, err
	}
	return newEncoding("", vocab, seg, specials), nil
}
