package evidence

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/finassist/policy-agent/internal/embedding/mocks"
)

const (
	passageA = "Credit applications are evaluated based on bureau reports and income."
	passageB = "Third-party providers must adhere to issuer data privacy standards."
	passageC = "Most credit decisions are automated and reviewed for compliance."
)

func TestStore_SearchRanksByDistance(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := mocks.NewMockEmbedder(ctrl)

	store := NewStore("policy", embedder, zerolog.Nop())
	store.Add(Document{ID: "far", Content: passageA}, []float32{10, 0})
	store.Add(Document{ID: "near", Content: passageB}, []float32{1, 0})
	store.Add(Document{ID: "middle", Content: passageC}, []float32{5, 0})

	embedder.EXPECT().Embed(gomock.Any(), "query").Return([]float32{0, 0}, nil)

	matches := store.Search(context.Background(), "query", 2)

	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].Document.ID != "near" || matches[1].Document.ID != "middle" {
		t.Errorf("Unexpected ranking: %s, %s", matches[0].Document.ID, matches[1].Document.ID)
	}
	if matches[0].Score >= matches[1].Score {
		t.Errorf("Scores not ascending: %v then %v", matches[0].Score, matches[1].Score)
	}
}

func TestStore_SearchBreaksTiesByInsertionOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := mocks.NewMockEmbedder(ctrl)

	store := NewStore("policy", embedder, zerolog.Nop())
	store.Add(Document{ID: "first", Content: passageA}, []float32{1, 0})
	store.Add(Document{ID: "second", Content: passageB}, []float32{0, 1})

	embedder.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{0, 0}, nil).Times(2)

	for i := 0; i < 2; i++ {
		matches := store.Search(context.Background(), "query", 2)
		if len(matches) != 2 {
			t.Fatalf("Expected 2 matches, got %d", len(matches))
		}
		if matches[0].Document.ID != "first" {
			t.Errorf("Tie must resolve to insertion order, got %s first", matches[0].Document.ID)
		}
	}
}

func TestStore_SearchEmptyIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := mocks.NewMockEmbedder(ctrl)

	store := NewStore("policy", embedder, zerolog.Nop())

	if matches := store.Search(context.Background(), "query", 3); matches != nil {
		t.Errorf("Expected nil result from an empty index, got %v", matches)
	}
}

func TestStore_SearchDegradesOnEmbedFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := mocks.NewMockEmbedder(ctrl)

	store := NewStore("policy", embedder, zerolog.Nop())
	store.Add(Document{ID: "a", Content: passageA}, []float32{1, 0})

	embedder.EXPECT().Embed(gomock.Any(), "query").Return(nil, errors.New("throttled"))
	embedder.EXPECT().Dimension().Return(2)

	matches := store.Search(context.Background(), "query", 1)
	if len(matches) != 1 {
		t.Fatalf("Expected a degraded result, got %d matches", len(matches))
	}
}

func TestStore_SearchDeduplicatesResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := mocks.NewMockEmbedder(ctrl)

	store := NewStore("policy", embedder, zerolog.Nop())
	store.Add(Document{ID: "a", Content: passageA}, []float32{1, 0})
	store.Add(Document{ID: "b", Content: passageA + "!"}, []float32{2, 0})
	store.Add(Document{ID: "c", Content: passageB}, []float32{3, 0})

	embedder.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{0, 0}, nil)

	matches := store.Search(context.Background(), "query", 3)

	if len(matches) != 2 {
		t.Fatalf("Expected duplicates removed, got %d matches", len(matches))
	}
	if matches[0].Document.ID != "a" || matches[1].Document.ID != "c" {
		t.Errorf("Unexpected surviving documents: %s, %s", matches[0].Document.ID, matches[1].Document.ID)
	}
}

func TestStore_IngestFailureKeepsAlignment(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := mocks.NewMockEmbedder(ctrl)

	store := NewStore("policy", embedder, zerolog.Nop())

	embedder.EXPECT().Embed(gomock.Any(), passageA).Return(nil, errors.New("throttled"))

	if err := store.Ingest(context.Background(), Document{ID: "a", Content: passageA}); err == nil {
		t.Fatal("Expected ingest to surface the embedding error")
	}
	if store.Len() != 0 {
		t.Errorf("Failed ingest must not grow the index, got %d documents", store.Len())
	}
}
