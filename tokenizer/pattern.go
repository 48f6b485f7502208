package tokenizer

import (
	"errors"
	"fmt"

	"github.com/dlclark/regexp2"
)

// ErrPatternCompile is returned when a pre-tokenization pattern fails to
// compile.
var ErrPatternCompile = errors.New("tokenizer: pattern compile")

// EncoderName identifies one of the tiktoken-family vocabularies this
// package interoperates with.
type EncoderName string

// Supported encoder names (spec §1, §6).
const (
	EncoderGPT2       EncoderName = "gpt2"
	EncoderR50kBase   EncoderName = "r50k_base"
	EncoderP50kBase   EncoderName = "p50k_base"
	EncoderP50kEdit   EncoderName = "p50k_edit"
	EncoderCl100kBase EncoderName = "cl100k_base"
)

// The two pre-tokenization alternations named in spec §4.B. Both must be
// matched left-to-right with alternation bias (first alternative that
// matches wins), not POSIX longest-match — which is exactly what
// regexp2's backtracking engine provides and Go's stdlib regexp (RE2)
// does not.
const (
	patternLegacy = `'s|'t|'re|'ve|'m|'ll|'d| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+(?!\S)|\s+`
	patternCl100k = `(?i:'s|'t|'re|'ve|'m|'ll|'d)|[^\r\n\p{L}\p{N}]?\p{L}+|\p{N}{1,3}| ?[^\s\p{L}\p{N}]+[\r\n]*|\s*[\r\n]+|\s+(?!\S)|\s+`
)

// PatternFor returns the canonical pre-tokenization pattern string for a
// supported encoder name.
func PatternFor(name EncoderName) (string, error) {
	switch name {
	case EncoderGPT2, EncoderR50kBase, EncoderP50kBase, EncoderP50kEdit:
		return patternLegacy, nil
	case EncoderCl100kBase:
		return patternCl100k, nil
	default:
		return "", fmt.Errorf("tokenizer: unknown encoder %q", name)
	}
}

// CompilePattern compiles a pre-tokenization pattern with the options the
// two builtin patterns require (Unicode property classes, zero-width
// lookahead, no special handling of newlines). Custom patterns supplied
// by a caller go through the same path, so a bad pattern surfaces as
// ErrPatternCompile exactly as spec §7 requires.
func CompilePattern(pat string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pat, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPatternCompile, err)
	}
	// regexp2 is a backtracking engine (like PCRE/.NET), which is what
	// gives us alternation-bias matching and the `(?!\S)` lookahead and
	// `(?i:...)` ASCII case-insensitive group the cl100k pattern needs;
	// Go's stdlib regexp (RE2) can express neither.
	re.MatchTimeout = 0
	return re, nil
}
