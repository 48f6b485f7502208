package tokenizer

// Public thin wrappers to keep the package boundary small: the root
// package composes Vocabulary, a compiled pattern, and a Segmenter
// without reaching past this file into compilation internals.

// NewSegmenterForEncoder compiles the canonical pre-tokenization pattern
// for name (spec §4.B) and wraps it in a Segmenter.
func NewSegmenterForEncoder(name EncoderName) (Segmenter, error) {
	pat, err := PatternFor(name)
	if err != nil {
		return nil, err
	}
	re, err := CompilePattern(pat)
	if err != nil {
		return nil, err
	}
	return NewRegexSegmenter(re), nil
}

// NewSegmenterForPattern compiles an arbitrary pre-tokenization pattern,
// for builder callers that supply a custom one.
func NewSegmenterForPattern(pattern string) (Segmenter, error) {
	re, err := CompilePattern(pattern)
	if err != nil {
		return nil, err
	}
	return NewRegexSegmenter(re), nil
}
