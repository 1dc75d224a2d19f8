package database

import "time"

type Document struct {
	Id        string
	Title     string
	Corpus    string
	Source    string
	CreatedAt time.Time
}

// Chunk is one stored passage with its embedding. Chunks of a document are
// ordered by Index within the document.
type Chunk struct {
	Id         string
	DocumentID string
	Corpus     string
	Index      int
	Content    string
	Source     string
	Embedding  []float32
}
