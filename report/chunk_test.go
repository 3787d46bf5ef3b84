package report

import (
	"strings"
	"testing"
)

func TestChunksCountAndSize(t *testing.T) {
	tests := []struct {
		length int
		size   int
		want   int
	}{
		{0, 1000, 0},
		{1, 1000, 1},
		{999, 1000, 1},
		{1000, 1000, 1},
		{1001, 1000, 2},
		{2500, 1000, 3},
		{5000, 1000, 5},
		{10, 3, 4},
	}

	for _, tt := range tests {
		s := strings.Repeat("x", tt.length)
		chunks := Chunks(s, tt.size)
		if len(chunks) != tt.want {
			t.Errorf("Chunks(len %d, size %d) produced %d chunks, want %d",
				tt.length, tt.size, len(chunks), tt.want)
		}
		for i, c := range chunks {
			if len(c) > tt.size {
				t.Errorf("chunk %d has length %d, exceeds size %d", i, len(c), tt.size)
			}
		}
	}
}

func TestChunksRoundTrip(t *testing.T) {
	input := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 60)
	chunks := Chunks(input, 1000)

	if got := strings.Join(chunks, ""); got != input {
		t.Error("concatenated chunks do not reproduce the input")
	}
}

func TestChunksDefaultSize(t *testing.T) {
	input := strings.Repeat("a", DefaultChunkSize+1)
	chunks := Chunks(input, 0)
	if len(chunks) != 2 {
		t.Errorf("Chunks with size 0 should use DefaultChunkSize, got %d chunks", len(chunks))
	}
}
