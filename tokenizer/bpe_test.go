package tokenizer

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"testing"
)

// buildWordVocabulary mirrors buildBenchVocabulary's approach but with a
// small, hand-picked merge chain so every step of bytePairMerge can be
// traced by hand: all 256 bytes, plus the nested merges needed to collapse
// "Hello" into a single token.
func buildWordVocabulary(t testing.TB) *Vocabulary {
	t.Helper()
	lines := make([]string, 0, 256+4)
	for i := 0; i < 256; i++ {
		lines = append(lines, base64.StdEncoding.EncodeToString([]byte{byte(i)})+" "+strconv.Itoa(i))
	}
	merges := []struct {
		text string
		rank int
	}{
		{"He", 1000}, {"Hel", 1001}, {"Hell", 1002}, {"Hello", 1003},
	}
	for _, m := range merges {
		lines = append(lines, base64.StdEncoding.EncodeToString([]byte(m.text))+" "+strconv.Itoa(m.rank))
	}
	v, err := LoadVocabulary(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	if err != nil {
		t.Fatalf("LoadVocabulary: %v", err)
	}
	return v
}

func TestBytePairEncodeEmptyPiece(t *testing.T) {
	v := buildWordVocabulary(t)
	ranks, starts, err := BytePairEncode("", v)
	if err != nil {
		t.Fatalf("BytePairEncode: %v", err)
	}
	if len(ranks) != 0 || !(len(starts) == 1 && starts[0] == 0) {
		t.Fatalf("got ranks=%v starts=%v, want empty ranks and starts=[0]", ranks, starts)
	}
}

func TestBytePairEncodeSingleByte(t *testing.T) {
	v := buildWordVocabulary(t)
	ranks, starts, err := BytePairEncode("x", v)
	if err != nil {
		t.Fatalf("BytePairEncode: %v", err)
	}
	if len(ranks) != 1 || ranks[0] != Rank('x') {
		t.Fatalf("got %v, want [%d]", ranks, Rank('x'))
	}
	if len(starts) != 2 || starts[0] != 0 || starts[1] != 1 {
		t.Fatalf("got starts=%v, want [0 1]", starts)
	}
}

func TestBytePairEncodeWholeStringFastPath(t *testing.T) {
	v := buildWordVocabulary(t)
	ranks, starts, err := BytePairEncode("Hello", v)
	if err != nil {
		t.Fatalf("BytePairEncode: %v", err)
	}
	if len(ranks) != 1 || ranks[0] != 1003 {
		t.Fatalf("got %v, want [1003]", ranks)
	}
	if len(starts) != 2 || starts[0] != 0 || starts[1] != 5 {
		t.Fatalf("got starts=%v, want [0 5]", starts)
	}
}

// TestBytePairEncodeCascadingMerge exercises a piece that isn't itself a
// vocabulary entry, forcing bytePairMerge through several rounds: He -> Hel
// -> Hell -> Hello, leaving a lone trailing byte unmerged because "Hellos"
// has no vocabulary entry.
func TestBytePairEncodeCascadingMerge(t *testing.T) {
	v := buildWordVocabulary(t)
	ranks, starts, err := BytePairEncode("Hellos", v)
	if err != nil {
		t.Fatalf("BytePairEncode: %v", err)
	}
	want := []Rank{1003, Rank('s')}
	if len(ranks) != len(want) || ranks[0] != want[0] || ranks[1] != want[1] {
		t.Fatalf("got %v, want %v", ranks, want)
	}
	wantStarts := []int{0, 5, 6}
	if len(starts) != len(wantStarts) {
		t.Fatalf("got starts=%v, want %v", starts, wantStarts)
	}
	for i := range wantStarts {
		if starts[i] != wantStarts[i] {
			t.Fatalf("got starts=%v, want %v", starts, wantStarts)
		}
	}
}

func TestBytePairEncodeUnknownByteIsVocabIncomplete(t *testing.T) {
	// A vocabulary missing single-byte entries can't encode anything.
	v, err := LoadVocabulary(strings.NewReader(base64.StdEncoding.EncodeToString([]byte("a")) + " 0\n"))
	if err != nil {
		t.Fatalf("LoadVocabulary: %v", err)
	}
	_, _, err = BytePairEncode("b", v)
	if !errors.Is(err, ErrVocabIncomplete) {
		t.Fatalf("expected ErrVocabIncomplete, got %v", err)
	}
}

func TestBytePairEncodeLeftmostTieBreak(t *testing.T) {
	// "aaaa" with only "aa" merged: every adjacent pair ties at the same
	// rank, so the leftmost pair must win each round, leaving a single
	// trailing "aa" rather than an odd byte out.
	lines := []string{
		base64.StdEncoding.EncodeToString([]byte("a")) + " 0",
		base64.StdEncoding.EncodeToString([]byte("aa")) + " 1",
	}
	v, err := LoadVocabulary(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	if err != nil {
		t.Fatalf("LoadVocabulary: %v", err)
	}
	ranks, _, err := BytePairEncode("aaaa", v)
	if err != nil {
		t.Fatalf("BytePairEncode: %v", err)
	}
	want := []Rank{1, 1}
	if len(ranks) != len(want) || ranks[0] != want[0] || ranks[1] != want[1] {
		t.Fatalf("got %v, want %v", ranks, want)
	}
}
