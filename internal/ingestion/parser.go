package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Document struct {
	ID      string
	Title   string
	Content string
	Source  string
}

// FAQEntry is one question/answer pair from a JSON FAQ file.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads a plain-text policy document.
func (p *Parser) ParseFile(path string) (*Document, error) {
	path = strings.TrimSpace(path)

	ext := filepath.Ext(path)
	if ext != ".txt" {
		return nil, fmt.Errorf("unsupported file type %s (expected .txt)", ext)
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if len(bytes) == 0 {
		return nil, fmt.Errorf("file %s is empty", path)
	}

	filename := filepath.Base(path)

	return &Document{
		ID:      uuid.New().String(),
		Title:   strings.TrimSuffix(filename, ext),
		Content: string(bytes),
		Source:  filename,
	}, nil
}

// ParseFAQ reads a JSON array of question/answer pairs. Each entry becomes
// its own retrievable passage, so FAQ files skip the chunker.
func (p *Parser) ParseFAQ(path string) ([]FAQEntry, error) {
	path = strings.TrimSpace(path)

	if ext := filepath.Ext(path); ext != ".json" {
		return nil, fmt.Errorf("unsupported file type %s (expected .json)", ext)
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var entries []FAQEntry
	if err := json.Unmarshal(bytes, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode FAQ file %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("FAQ file %s has no entries", path)
	}

	return entries, nil
}
