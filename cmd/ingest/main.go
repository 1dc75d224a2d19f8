package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/finassist/policy-agent/internal/bedrock"
	"github.com/finassist/policy-agent/internal/database"
	"github.com/finassist/policy-agent/internal/embedding"
	"github.com/finassist/policy-agent/internal/ingestion"
	"github.com/finassist/policy-agent/internal/setup"
	"github.com/finassist/policy-agent/internal/setup/logger"
)

func main() {
	insertDoc := flag.Bool("insert-doc", false, "Ingest a local .txt document")
	insertFAQ := flag.Bool("insert-faq", false, "Ingest a .json FAQ file")
	insertURL := flag.Bool("insert-url", false, "Ingest a web page")
	filePath := flag.String("file", "", "Path to the document")
	pageURL := flag.String("url", "", "URL of the page to ingest")
	corpus := flag.String("corpus", setup.CorpusPolicy, "Target corpus (policy or faq)")
	chunkSize := flag.Int("chunk-size", 500, "Chunk size")
	chunkOverlap := flag.Int("chunk-overlap", 100, "Chunk overlap")

	deleteDoc := flag.Bool("delete-doc", false, "Delete a document by id")
	documentID := flag.String("doc-id", "", "Document id to delete")

	listDocs := flag.Bool("list-docs", false, "List documents of a corpus")

	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	cfg := setup.FromEnv()
	log.Logger = logger.New(cfg.LogLevel)

	ctx := context.Background()

	db, err := database.NewWithBackoff(ctx, database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}, 3)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	log.Info().Msg("Database connected")

	clients, err := bedrock.LoadClients(ctx, cfg.AWSRegion)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load AWS clients")
	}

	embedder := embedding.NewTitanEmbedder(clients.Runtime, cfg.EmbedModelID, cfg.EmbedDim)
	pipeline := ingestion.NewPipeline(
		ingestion.NewParser(),
		ingestion.NewChunker(*chunkSize, *chunkOverlap),
		ingestion.NewFetcher(),
		embedder,
		db,
	)

	switch {
	case *deleteDoc:
		if err := db.DeleteDocument(ctx, *documentID); err != nil {
			log.Fatal().Err(err).Msg("Failed to delete document")
		}
	case *listDocs:
		docs, err := db.GetAllDocs(ctx, *corpus)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to list documents")
		}
		for _, doc := range docs {
			log.Info().
				Str("id", doc.Id).
				Str("title", doc.Title).
				Str("source", doc.Source).
				Msg("Document")
		}
	case *insertDoc:
		if err := pipeline.IngestTextFile(ctx, *filePath, *corpus); err != nil {
			log.Fatal().Err(err).Msg("Ingestion failed")
		}
	case *insertFAQ:
		if err := pipeline.IngestFAQFile(ctx, *filePath, *corpus); err != nil {
			log.Fatal().Err(err).Msg("FAQ ingestion failed")
		}
	case *insertURL:
		if err := pipeline.IngestURL(ctx, *pageURL, *corpus); err != nil {
			log.Fatal().Err(err).Msg("URL ingestion failed")
		}
	default:
		log.Fatal().Msg("No command given: use -insert-doc, -insert-faq, -insert-url, -delete-doc, or -list-docs")
	}
}
