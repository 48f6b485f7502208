package tokenizer

import (
	"encoding/base64"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
)

var (
	benchVocabOnce sync.Once
	benchVocab     *Vocabulary
	benchVocabErr  error
)

// buildBenchVocabulary synthesizes a small but realistic merge table: all
// 256 bytes, then a handful of common English bigrams/trigrams merged in
// frequency order, enough to exercise several rounds of bytePairMerge
// without needing a real downloaded .tiktoken file in this benchmark.
func buildBenchVocabulary() (*Vocabulary, error) {
	merges := []string{
		"th", "he", "in", "er", "an", "re", "on", "at", "en", "nd",
		"ti", "es", "or", "te", "of", "ed", "is", "it", "al", "ar",
		"st", "to", "nt", "ng", "se", "ha", "as", "ou", "io", "le",
		"the", "and", "ing", "ion", "ent", "for", "tio", "her", "hat",
		" the", " and", " for", " to", " of", " in", " is",
	}
	lines := make([]string, 0, 256+len(merges))
	for i := 0; i < 256; i++ {
		lines = append(lines, base64.StdEncoding.EncodeToString([]byte{byte(i)})+" "+strconv.Itoa(i))
	}
	rank := 256
	for _, m := range merges {
		lines = append(lines, base64.StdEncoding.EncodeToString([]byte(m))+" "+strconv.Itoa(rank))
		rank++
	}
	sort.Strings(lines[:256]) // order doesn't matter for correctness, kept tidy
	return LoadVocabulary(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func loadBenchVocabulary(b *testing.B) *Vocabulary {
	benchVocabOnce.Do(func() {
		benchVocab, benchVocabErr = buildBenchVocabulary()
	})
	if benchVocabErr != nil {
		b.Fatalf("build bench vocabulary: %v", benchVocabErr)
	}
	return benchVocab
}

func BenchmarkEncodePiece_Short(b *testing.B) {
	v := loadBenchVocabulary(b)
	piece := "weather"
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		toks, _, err := BytePairEncode(piece, v)
		if err != nil || len(toks) == 0 {
			b.Fatalf("expected tokens, err=%v", err)
		}
	}
}

func BenchmarkEncodePiece_Medium(b *testing.B) {
	v := loadBenchVocabulary(b)
	piece := "San Francisco weather forecast for the next five days with precipitation chances"
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		toks, _, err := BytePairEncode(piece, v)
		if err != nil || len(toks) == 0 {
			b.Fatalf("expected tokens, err=%v", err)
		}
	}
}

func BenchmarkEncodePiece_Large(b *testing.B) {
	v := loadBenchVocabulary(b)
	base := "Summarise the full itinerary including breakfast, museum visits, hikes, dinner plans, and transit notes. "
	piece := strings.Repeat(base, 8)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		toks, _, err := BytePairEncode(piece, v)
		if err != nil || len(toks) == 0 {
			b.Fatalf("expected tokens, err=%v", err)
		}
	}
}

func BenchmarkBytePairMerge(b *testing.B) {
	v := loadBenchVocabulary(b)
	piece := strings.Repeat("tool schema requires validation ", 6)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		partsPtr, release := bytePairMerge(piece, v)
		if len(*partsPtr) == 0 {
			b.Fatal("expected parts")
		}
		release()
	}
}
