//go:build !goexperiment.arenas

package tokenizer

// Heap-backed token store using a dense slice indexed by rank.
// This is the default implementation and serves as the fallback when
// arenas are not enabled.

type heapStore struct {
	arr [][]byte // direct references to token byte slices, indexed by rank
}

// newTokenStore takes byRank as-is: LoadVocabulary already built it
// densely and rank-unique, so there is nothing left to deduplicate.
func newTokenStore(byRank [][]byte) (tokenStore, error) {
	return &heapStore{arr: byRank}, nil
}

func (s *heapStore) AppendInto(dst *[]byte, id Rank) bool {
	if int(id) >= len(s.arr) {
		return false
	}
	b := s.arr[id]
	if b == nil {
		return false
	}
	*dst = append(*dst, b...)
	return true
}

func (s *heapStore) Close() {}
