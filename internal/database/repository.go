package database

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog/log"
)

// InsertDocument stores a document row and its chunks in one transaction, so
// a partially embedded document never reaches the corpus.
func (db *DB) InsertDocument(ctx context.Context, doc Document, chunks []Chunk) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO documents (id, title, corpus, source) VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(ctx, query, doc.Id, doc.Title, doc.Corpus, doc.Source); err != nil {
		return fmt.Errorf("failed to insert document %s: %w", doc.Id, err)
	}

	chunkQuery := `
		INSERT INTO document_chunks (id, document_id, corpus, chunk_index, content, source, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, chunk := range chunks {
		embedding := pgvector.NewVector(chunk.Embedding)
		if _, err := tx.Exec(ctx, chunkQuery,
			chunk.Id, doc.Id, doc.Corpus, chunk.Index, chunk.Content, chunk.Source, embedding); err != nil {
			return fmt.Errorf("failed to insert chunk %d of document %s: %w", chunk.Index, doc.Id, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit document %s: %w", doc.Id, err)
	}

	log.Info().
		Str("doc_id", doc.Id).
		Str("corpus", doc.Corpus).
		Int("chunks", len(chunks)).
		Msg("Document stored")

	return nil
}

func (db *DB) DeleteDocument(ctx context.Context, docId string) error {
	query := `DELETE FROM documents WHERE id = $1`

	result, err := db.Pool.Exec(ctx, query, docId)
	if err != nil {
		return fmt.Errorf("failed to delete document id: %s, error: %w", docId, err)
	}

	if result.RowsAffected() == 0 {
		log.Warn().Str("doc_id", docId).Msg("Document not found")
	} else {
		log.Info().Str("doc_id", docId).Msg("Document deleted")
	}

	return nil
}

// TODO: Add pagination
func (db *DB) GetAllDocs(ctx context.Context, corpus string) ([]Document, error) {
	query := `SELECT id, title, corpus, source, created_at FROM documents WHERE corpus = $1`

	rows, err := db.Pool.Query(ctx, query, corpus)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch documents: %w", err)
	}
	defer rows.Close()

	var documents []Document
	for rows.Next() {
		var document Document
		if err := rows.Scan(&document.Id, &document.Title, &document.Corpus, &document.Source, &document.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, document)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return documents, nil
}

// LoadCorpus returns every chunk of one corpus in document order then chunk
// order, so repeated loads rebuild an identical index.
func (db *DB) LoadCorpus(ctx context.Context, corpus string) ([]Chunk, error) {
	query := `
		SELECT id, document_id, corpus, chunk_index, content, source, embedding
		FROM document_chunks
		WHERE corpus = $1
		ORDER BY document_id ASC, chunk_index ASC`

	rows, err := db.Pool.Query(ctx, query, corpus)
	if err != nil {
		return nil, fmt.Errorf("unable to load corpus %s: %w", corpus, err)
	}
	defer rows.Close()

	var chunks []Chunk
	for rows.Next() {
		var chunk Chunk
		var embedding pgvector.Vector

		if err := rows.Scan(&chunk.Id, &chunk.DocumentID, &chunk.Corpus, &chunk.Index, &chunk.Content, &chunk.Source, &embedding); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		chunk.Embedding = embedding.Slice()

		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return chunks, nil
}
