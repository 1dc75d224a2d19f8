package evidence

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/finassist/policy-agent/internal/embedding"
)

// Document is one retrievable passage of a corpus.
type Document struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

// Match is a search hit. Score is the squared Euclidean distance between the
// query vector and the document vector, so lower means more similar.
type Match struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}

// Store is an in-memory vector index over one corpus. The vector slice and
// the document slice are positionally aligned: vectors[i] always belongs to
// documents[i], and both grow together under one lock.
type Store struct {
	name     string
	embedder embedding.Embedder
	logger   zerolog.Logger

	mu        sync.RWMutex
	documents []Document
	vectors   [][]float32
}

func NewStore(name string, embedder embedding.Embedder, logger zerolog.Logger) *Store {
	return &Store{
		name:     name,
		embedder: embedder,
		logger:   logger,
	}
}

func (s *Store) Name() string {
	return s.name
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// Add appends a document together with its precomputed vector.
func (s *Store) Add(doc Document, vector []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append(s.documents, doc)
	s.vectors = append(s.vectors, vector)
}

// Ingest embeds and appends a document. On embedding failure nothing is
// appended, keeping the two slices aligned.
func (s *Store) Ingest(ctx context.Context, doc Document) error {
	vector, err := s.embedder.Embed(ctx, doc.Content)
	if err != nil {
		return err
	}
	s.Add(doc, vector)
	return nil
}

// Search embeds the query and returns the top-k nearest documents by squared
// Euclidean distance, with near-duplicate passages removed. Ties in distance
// resolve to insertion order. An empty index yields an empty result, not an
// error.
func (s *Store) Search(ctx context.Context, query string, k int) []Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.documents) == 0 {
		s.logger.Warn().Str("store", s.name).Msg("Evidence store is empty")
		return nil
	}
	if k <= 0 {
		return nil
	}

	queryVector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		// Degrade rather than fail: a random vector still returns
		// something, just with no relevance guarantee.
		s.logger.Warn().
			Err(err).
			Str("store", s.name).
			Msg("Query embedding failed, degrading to a random vector")
		queryVector = randomVector(s.embedder.Dimension())
	}

	type candidate struct {
		index    int
		distance float64
	}

	candidates := make([]candidate, len(s.vectors))
	for i, vector := range s.vectors {
		candidates[i] = candidate{index: i, distance: squaredDistance(queryVector, vector)}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].index < candidates[j].index
	})

	if k > len(candidates) {
		k = len(candidates)
	}

	matches := make([]Match, 0, k)
	for _, c := range candidates[:k] {
		matches = append(matches, Match{
			Document: s.documents[c.index],
			Score:    c.distance,
		})
	}

	return Dedupe(matches)
}

func squaredDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

func randomVector(dimension int) []float32 {
	if dimension <= 0 {
		dimension = embedding.DefaultDimension
	}
	vector := make([]float32, dimension)
	for i := range vector {
		vector[i] = rand.Float32()
	}
	return vector
}
