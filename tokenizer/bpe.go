package tokenizer

import (
	"errors"
	"fmt"
	"sync"
)

// ErrVocabIncomplete is returned when the BPE core needs a rank for a
// single byte that is absent from the vocabulary — spec §4.C step 1 and
// §7 both note this "should be impossible with a correct vocabulary" but
// guard it anyway, since it is the one way a corrupt or truncated
// vocabulary would surface during encoding rather than during load.
var ErrVocabIncomplete = errors.New("tokenizer: vocabulary incomplete")

const infRank = ^Rank(0)

type part struct {
	start int
	rank  Rank
}

var (
	partsPool = sync.Pool{New: func() any { b := make([]part, 0, 64); return &b }}
	ranksPool = sync.Pool{New: func() any { b := make([]Rank, 0, 32); return &b }}
)

func acquireParts(capHint int) (*[]part, func()) {
	p := partsPool.Get().(*[]part)
	if cap(*p) < capHint {
		buf := make([]part, 0, capHint)
		p = &buf
	} else {
		*p = (*p)[:0]
	}
	release := func() {
		if cap(*p) > 1<<12 {
			return
		}
		*p = (*p)[:0]
		partsPool.Put(p)
	}
	return p, release
}

func acquireRanks(capHint int) (*[]Rank, func()) {
	p := ranksPool.Get().(*[]Rank)
	if cap(*p) < capHint {
		buf := make([]Rank, 0, capHint)
		p = &buf
	} else {
		*p = (*p)[:0]
	}
	release := func() {
		if cap(*p) > 1<<12 {
			return
		}
		*p = (*p)[:0]
		ranksPool.Put(p)
	}
	return p, release
}

// BytePairEncode implements spec §4.C: it merges piece (an arbitrary
// byte sequence, held as a Go string) into an ordered sequence of ranks
// using v's ranked pairs, with the leftmost tie-break on equal ranks.
//
// starts has len(ranks)+1 entries: starts[i] is the offset within piece
// where the byte span of ranks[i] begins, and starts[len(ranks)] ==
// len(piece). Callers combine this with a segment's byte offset in the
// original text to recover the per-id source spans EncodeTrimSuffix and
// EncodeTrimPrefix need (spec §4.E).
func BytePairEncode(piece string, v *Vocabulary) (ranks []Rank, starts []int, err error) {
	if len(piece) <= 1 {
		if len(piece) == 0 {
			return nil, []int{0}, nil
		}
		r, ok := v.RankString(piece)
		if !ok {
			return nil, nil, fmt.Errorf("%w: byte 0x%02x not in vocabulary", ErrVocabIncomplete, piece[0])
		}
		return []Rank{r}, []int{0, 1}, nil
	}
	if r, ok := v.RankString(piece); ok {
		return []Rank{r}, []int{0, len(piece)}, nil
	}

	partsPtr, releaseParts := bytePairMerge(piece, v)
	defer releaseParts()
	parts := *partsPtr

	ranksPtr, releaseRanks := acquireRanks(len(parts))
	defer releaseRanks()
	out := (*ranksPtr)[:0]
	starts = make([]int, 0, len(parts))
	for i := 0; i+1 < len(parts); i++ {
		r, ok := v.RankString(piece[parts[i].start:parts[i+1].start])
		if !ok {
			return nil, nil, fmt.Errorf("%w: merged span not in vocabulary", ErrVocabIncomplete)
		}
		out = append(out, r)
		starts = append(starts, parts[i].start)
	}
	starts = append(starts, len(piece))

	ranks = make([]Rank, len(out))
	copy(ranks, out)
	return ranks, starts, nil
}

// pairRank recomputes the rank of merging the part at i with its successor
// after some other merge has already happened elsewhere in parts. It looks
// three boundaries ahead rather than two: two boundaries ahead would still
// point at the neighbor that the in-flight merge is about to remove.
func pairRank(piece string, parts []part, i int, v *Vocabulary) Rank {
	if i+3 >= len(parts) {
		return infRank
	}
	if r, ok := v.RankString(piece[parts[i].start:parts[i+3].start]); ok {
		return r
	}
	return infRank
}

// bytePairMerge runs the iterative lowest-rank, leftmost-tie-break merge
// loop of spec §4.C steps 3-4 and returns the resulting parts list along
// with a release func for the pooled backing array.
func bytePairMerge(piece string, v *Vocabulary) (*[]part, func()) {
	partsPtr, release := acquireParts(len(piece) + 2)
	parts := (*partsPtr)[:0]

	for i := 0; i < len(piece)-1; i++ {
		r, ok := v.RankString(piece[i : i+2])
		if !ok {
			r = infRank
		}
		parts = append(parts, part{start: i, rank: r})
	}
	parts = append(parts, part{start: len(piece) - 1, rank: infRank})
	parts = append(parts, part{start: len(piece), rank: infRank})

	for {
		minRank, minIdx := infRank, -1
		for i := 0; i < len(parts)-1; i++ {
			if parts[i].rank < minRank {
				minRank, minIdx = parts[i].rank, i
			}
		}
		if minIdx == -1 {
			break
		}
		i := minIdx
		if i > 0 {
			parts[i-1].rank = pairRank(piece, parts, i-1, v)
		}
		parts[i].rank = pairRank(piece, parts, i, v)
		parts = append(parts[:i+1], parts[i+2:]...)
	}

	*partsPtr = parts
	return partsPtr, release
}
