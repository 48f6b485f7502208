package tokenizer

import (
	"bufio"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Rank is the dense, non-negative integer identifier tiktoken assigns to a
// byte sequence. It also serves as the token id.
type Rank = uint32

// ErrLoadCorrupt is returned when a vocabulary file contains a malformed
// line, a duplicate byte sequence, or a duplicate rank.
var ErrLoadCorrupt = errors.New("tokenizer: corrupt vocabulary")

// Vocabulary is the bijective byte-sequence <-> rank mapping described in
// spec §3. It is immutable after construction and safe to share across
// goroutines.
type Vocabulary struct {
	encode map[string]Rank
	dec    tokenStore
	size   int
}

// Len reports the number of ordinary (non-special) entries in the
// vocabulary.
func (v *Vocabulary) Len() int { return v.size }

// Rank looks up the rank assigned to the exact byte sequence b.
func (v *Vocabulary) Rank(b []byte) (Rank, bool) {
	r, ok := v.encode[string(b)]
	return r, ok
}

// RankString is the string-keyed variant of Rank, avoiding an allocation
// when the caller already holds the bytes as a string (Go's compiler
// elides the conversion for map lookups of this shape).
func (v *Vocabulary) RankString(s string) (Rank, bool) {
	r, ok := v.encode[s]
	return r, ok
}

// Bytes returns the byte sequence that decodes to rank r.
func (v *Vocabulary) Bytes(r Rank) ([]byte, bool) {
	var buf []byte
	if !v.dec.AppendInto(&buf, r) {
		return nil, false
	}
	return buf, true
}

// AppendBytes appends the byte sequence for rank r to dst, avoiding an
// intermediate allocation. It reports whether r was present.
func (v *Vocabulary) AppendBytes(dst *[]byte, r Rank) bool {
	return v.dec.AppendInto(dst, r)
}

// LoadVocabulary parses the newline-delimited `base64(token) SP rank`
// format from spec §4.A / §6. Lines are processed in order; a duplicate
// byte sequence or duplicate rank is a fatal ErrLoadCorrupt.
func LoadVocabulary(r io.Reader) (*Vocabulary, error) {
	encode := make(map[string]Rank, 1<<16)
	seenRank := make(map[Rank]struct{}, 1<<16)
	var byRank [][]byte

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		sp := strings.IndexByte(line, ' ')
		if sp <= 0 {
			return nil, fmt.Errorf("%w: line %d: missing separator", ErrLoadCorrupt, lineNo)
		}
		tokBytes, err := base64.StdEncoding.DecodeString(line[:sp])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: base64: %v", ErrLoadCorrupt, lineNo, err)
		}
		rank64, err := strconv.ParseUint(line[sp+1:], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: rank: %v", ErrLoadCorrupt, lineNo, err)
		}
		rank := Rank(rank64)
		key := string(tokBytes)
		if _, dup := encode[key]; dup {
			return nil, fmt.Errorf("%w: line %d: duplicate token", ErrLoadCorrupt, lineNo)
		}
		if _, dup := seenRank[rank]; dup {
			return nil, fmt.Errorf("%w: line %d: duplicate rank %d", ErrLoadCorrupt, lineNo, rank)
		}
		encode[key] = rank
		seenRank[rank] = struct{}{}
		for len(byRank) <= int(rank) {
			byRank = append(byRank, nil)
		}
		byRank[rank] = tokBytes
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadCorrupt, err)
	}

	// byRank is already dense and rank-unique at this point (seenRank
	// rejected duplicates above), so the store implementations below
	// build directly off it instead of re-deriving that guarantee.
	dec, err := newTokenStore(byRank)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadCorrupt, err)
	}
	return &Vocabulary{encode: encode, dec: dec, size: len(encode)}, nil
}
