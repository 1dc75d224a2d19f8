package ingestion

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/finassist/policy-agent/internal/database"
	"github.com/finassist/policy-agent/internal/embedding"
)

// Pipeline turns source material into embedded corpus chunks. Every document
// is stored transactionally: an embedding failure drops the whole document
// rather than leaving a partially indexed one.
type Pipeline struct {
	parser   *Parser
	chunker  *Chunker
	fetcher  *Fetcher
	embedder embedding.Embedder
	db       *database.DB
}

func NewPipeline(
	parser *Parser,
	chunker *Chunker,
	fetcher *Fetcher,
	embedder embedding.Embedder,
	db *database.DB,
) *Pipeline {
	return &Pipeline{
		parser:   parser,
		chunker:  chunker,
		fetcher:  fetcher,
		embedder: embedder,
		db:       db,
	}
}

// IngestTextFile chunks, embeds, and stores one .txt document into a corpus.
func (p *Pipeline) IngestTextFile(ctx context.Context, filePath, corpus string) error {
	log.Info().Str("file", filePath).Str("corpus", corpus).Msg("Starting ingestion")

	doc, err := p.parser.ParseFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to parse file: %w", err)
	}
	log.Info().Str("doc_id", doc.ID).Str("title", doc.Title).Msg("Document parsed")

	return p.store(ctx, doc, corpus)
}

// IngestURL fetches a web page, extracts its text, and stores it.
func (p *Pipeline) IngestURL(ctx context.Context, url, corpus string) error {
	log.Info().Str("url", url).Str("corpus", corpus).Msg("Starting ingestion")

	doc, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to fetch page: %w", err)
	}
	log.Info().Str("doc_id", doc.ID).Str("title", doc.Title).Msg("Page fetched")

	return p.store(ctx, doc, corpus)
}

// IngestFAQFile stores each question/answer pair of a JSON FAQ file as its
// own passage. Entries are small enough that chunking would only split
// answers mid-sentence.
func (p *Pipeline) IngestFAQFile(ctx context.Context, filePath, corpus string) error {
	log.Info().Str("file", filePath).Str("corpus", corpus).Msg("Starting FAQ ingestion")

	entries, err := p.parser.ParseFAQ(filePath)
	if err != nil {
		return fmt.Errorf("failed to parse FAQ file: %w", err)
	}

	contents := make([]string, len(entries))
	for i, entry := range entries {
		contents[i] = fmt.Sprintf("Q: %s\nA: %s", entry.Question, entry.Answer)
	}

	embeddings, err := p.embedder.EmbedBatch(ctx, contents)
	if err != nil {
		return fmt.Errorf("failed to embed FAQ entries: %w", err)
	}

	doc := database.Document{
		Id:     uuid.New().String(),
		Title:  filePath,
		Corpus: corpus,
		Source: filePath,
	}

	chunks := make([]database.Chunk, len(entries))
	for i := range entries {
		chunks[i] = database.Chunk{
			Id:         uuid.New().String(),
			DocumentID: doc.Id,
			Corpus:     corpus,
			Index:      i,
			Content:    contents[i],
			Source:     doc.Source,
			Embedding:  embeddings[i],
		}
	}

	if err := p.db.InsertDocument(ctx, doc, chunks); err != nil {
		return fmt.Errorf("failed to store FAQ document: %w", err)
	}

	log.Info().Str("doc_id", doc.Id).Int("entries", len(entries)).Msg("FAQ ingestion complete")
	return nil
}

func (p *Pipeline) store(ctx context.Context, doc *Document, corpus string) error {
	pieces := p.chunker.ChunkText(doc.Content)
	if len(pieces) == 0 {
		return fmt.Errorf("document %s produced no chunks", doc.ID)
	}
	log.Info().Int("chunk_count", len(pieces)).Msg("Document chunked")

	contents := make([]string, len(pieces))
	for i, piece := range pieces {
		contents[i] = piece.Content
	}

	embeddings, err := p.embedder.EmbedBatch(ctx, contents)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}

	record := database.Document{
		Id:     doc.ID,
		Title:  doc.Title,
		Corpus: corpus,
		Source: doc.Source,
	}

	chunks := make([]database.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = database.Chunk{
			Id:         uuid.New().String(),
			DocumentID: doc.ID,
			Corpus:     corpus,
			Index:      piece.Index,
			Content:    piece.Content,
			Source:     doc.Source,
			Embedding:  embeddings[i],
		}
	}

	if err := p.db.InsertDocument(ctx, record, chunks); err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}

	log.Info().
		Str("doc_id", doc.ID).
		Int("chunks", len(chunks)).
		Msg("Ingestion complete")

	return nil
}
