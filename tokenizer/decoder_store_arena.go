//go:build goexperiment.arenas

package tokenizer

import "arena"

// Arena-backed token store. All storage lives in a dedicated arena.
// AppendInto copies from the arena blob into the destination to avoid
// leaking arena-backed slices to the heap.
type arenaStore struct {
	a    *arena.Arena
	blob []byte
	off  []Rank
}

// newTokenStore lays byRank out as one contiguous blob plus an offset
// table. byRank[r] already holds the exact bytes for rank r, so this is a
// single pass over it: no second scan to find which pair belongs to
// rank i, because there are no pairs left to scan.
func newTokenStore(byRank [][]byte) (tokenStore, error) {
	a := arena.NewArena()
	size := len(byRank)
	total := 0
	for _, b := range byRank {
		total += len(b)
	}
	blob := arena.MakeSlice[byte](a, total, total)
	off := arena.MakeSlice[Rank](a, size+1, size+1)
	pos := 0
	for i, b := range byRank {
		off[i] = Rank(pos)
		if len(b) > 0 {
			copy(blob[pos:pos+len(b)], b)
			pos += len(b)
		}
	}
	off[size] = Rank(pos)
	return &arenaStore{a: a, blob: blob, off: off}, nil
}

func (s *arenaStore) AppendInto(dst *[]byte, id Rank) bool {
	if int(id) >= len(s.off)-1 {
		return false
	}
	a := s.off[id]
	b := s.off[id+1]
	if a == b {
		return false
	}
	*dst = append(*dst, s.blob[a:b]...)
	return true
}

func (s *arenaStore) Close() { s.a.Free() }
