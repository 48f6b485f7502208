// Package tiktoken implements a byte-pair encoding tokenizer interoperable
// with the "tiktoken" family of vocabularies used by the GPT-2, GPT-3, and
// GPT-4 model lineages: gpt2, r50k_base, p50k_base, p50k_edit, and
// cl100k_base.
//
// An Encoding is built once, from a builtin encoder name or a model name,
// and is safe to share across goroutines for the lifetime of the process.
// The tokenizer subpackage holds the lower-level collaborators (vocabulary
// loading, pattern compilation, segmentation, BPE merging); this package
// composes them into the public Encode/Decode/EncodeTrimSuffix/
// EncodeTrimPrefix surface.
package tiktoken
