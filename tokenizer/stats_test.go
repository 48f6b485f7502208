package tokenizer

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestStatsComputesLengthHistogram(t *testing.T) {
	lines := []string{
		base64.StdEncoding.EncodeToString([]byte("a")) + " 0",
		base64.StdEncoding.EncodeToString([]byte("b")) + " 1",
		base64.StdEncoding.EncodeToString([]byte("ab")) + " 2",
		base64.StdEncoding.EncodeToString([]byte("abc")) + " 3",
	}
	v, err := LoadVocabulary(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	if err != nil {
		t.Fatalf("LoadVocabulary: %v", err)
	}
	st := Stats(v)
	if st.TokenCount != 4 {
		t.Fatalf("TokenCount = %d, want 4", st.TokenCount)
	}
	if st.MinTokenLen != 1 {
		t.Fatalf("MinTokenLen = %d, want 1", st.MinTokenLen)
	}
	if st.MaxTokenLen != 3 {
		t.Fatalf("MaxTokenLen = %d, want 3", st.MaxTokenLen)
	}
	want := map[int]int{1: 2, 2: 1, 3: 1}
	for length, count := range want {
		if st.LengthHistogram[length] != count {
			t.Fatalf("LengthHistogram[%d] = %d, want %d", length, st.LengthHistogram[length], count)
		}
	}
}

func TestStatsSingleTokenVocabulary(t *testing.T) {
	v, err := LoadVocabulary(strings.NewReader(base64.StdEncoding.EncodeToString([]byte("x")) + " 0\n"))
	if err != nil {
		t.Fatalf("LoadVocabulary: %v", err)
	}
	st := Stats(v)
	if st.TokenCount != 1 || st.MinTokenLen != 1 || st.MaxTokenLen != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}
