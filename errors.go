package tiktoken

import (
	"errors"
	"fmt"

	"github.com/go-tiktoken/tiktoken-go/tokenizer"
)

// Sentinel errors (spec §7). Builder and load failures wrap the
// tokenizer package's sentinels directly rather than redefining them, so
// errors.Is works across the package boundary.
var (
	ErrLoadCorrupt     = tokenizer.ErrLoadCorrupt
	ErrPatternCompile  = tokenizer.ErrPatternCompile
	ErrVocabIncomplete = tokenizer.ErrVocabIncomplete
	ErrUnknownEncoder  = errors.New("tiktoken: unknown encoder")
	ErrUnknownModel    = errors.New("tiktoken: unknown model")
)

// errArgument reports a caller-contract violation (e.g. a negative
// maxTokens) rather than a data-integrity failure, so it deliberately does
// not wrap any of the sentinels above (spec §7).
func errArgument(format string, args ...any) error {
	return fmt.Errorf("tiktoken: "+format, args...)
}
