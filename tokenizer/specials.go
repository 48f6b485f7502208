package tokenizer

// Default special tokens for each supported encoder (spec §4.F, §6).
// Values for cl100k_base are grounded bit-exactly on
// other_examples/ardanlabs-ai-training__encoding.go's embedded
// cl100k_base.tiktoken registry. The p50k_edit FIM ranks are not present
// anywhere in the retrieved corpus; they are filled in from the
// well-known upstream tiktoken registry (dense, disjoint, and
// immediately following p50k_base's 50281 ranks (0-50280), consistent
// with the bijection invariant of spec §3) — see DESIGN.md's Open
// Question log.
const (
	EndOfText   = "<|endoftext|>"
	FimPrefix   = "<|fim_prefix|>"
	FimMiddle   = "<|fim_middle|>"
	FimSuffix   = "<|fim_suffix|>"
	EndOfPrompt = "<|endofprompt|>"
)

// DefaultSpecials returns the default special-token table for name, or
// nil if name is not one of the five supported encoders.
func DefaultSpecials(name EncoderName) map[string]Rank {
	switch name {
	case EncoderGPT2, EncoderR50kBase, EncoderP50kBase:
		return map[string]Rank{EndOfText: 50256}
	case EncoderP50kEdit:
		return map[string]Rank{
			EndOfText: 50256,
			FimPrefix: 50281,
			FimMiddle: 50282,
			FimSuffix: 50283,
		}
	case EncoderCl100kBase:
		return map[string]Rank{
			EndOfText:   100257,
			FimPrefix:   100258,
			FimMiddle:   100259,
			FimSuffix:   100260,
			EndOfPrompt: 100276,
		}
	default:
		return nil
	}
}

// MergeSpecials returns a new map containing base's entries overwritten
// by extra's (spec §4.F: "caller ranks override defaults on key
// collision").
func MergeSpecials(base, extra map[string]Rank) map[string]Rank {
	out := make(map[string]Rank, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
