package ingestion

import (
	"strings"
	"testing"
)

func TestChunker_ChunkText(t *testing.T) {
	chunker := NewChunker(10, 3)
	text := strings.Repeat("abcdefghij", 3)

	chunks := chunker.ChunkText(text)

	if len(chunks) == 0 {
		t.Fatal("Expected chunks for non-empty text")
	}
	for i, chunk := range chunks {
		if chunk.Index != i {
			t.Errorf("Chunk %d carries index %d", i, chunk.Index)
		}
		if len(chunk.Content) > 10 {
			t.Errorf("Chunk %d exceeds the chunk size: %d", i, len(chunk.Content))
		}
		if chunk.Content != text[chunk.Start:chunk.End] {
			t.Errorf("Chunk %d content does not match its offsets", i)
		}
	}

	// Consecutive chunks overlap by the configured amount.
	if chunks[1].Start != chunks[0].End-3 {
		t.Errorf("Expected 3-byte overlap, got start %d after end %d", chunks[1].Start, chunks[0].End)
	}
}

func TestChunker_ShortText(t *testing.T) {
	chunker := NewChunker(500, 100)

	chunks := chunker.ChunkText("short document")

	if len(chunks) != 1 {
		t.Fatalf("Expected a single chunk, got %d", len(chunks))
	}
	if chunks[0].Content != "short document" {
		t.Errorf("Unexpected chunk content %q", chunks[0].Content)
	}
}

func TestChunker_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{"zero size", 0, 0},
		{"negative overlap", 10, -1},
		{"overlap equals size", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunker := NewChunker(tt.size, tt.overlap)
			if chunks := chunker.ChunkText("some text"); len(chunks) != 0 {
				t.Errorf("Expected no chunks for invalid config, got %d", len(chunks))
			}
		})
	}
}
