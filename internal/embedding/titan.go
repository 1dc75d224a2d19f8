package embedding

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const DefaultDimension = 1024

type TitanEmbedder struct {
	client    *bedrockruntime.Client
	modelID   string
	dimension int
}

func NewTitanEmbedder(client *bedrockruntime.Client, modelID string, dimension int) *TitanEmbedder {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &TitanEmbedder{
		client:    client,
		modelID:   modelID,
		dimension: dimension,
	}
}

func (e *TitanEmbedder) Dimension() int {
	return e.dimension
}

// Titan request/response format
type titanEmbedRequest struct {
	InputText string `json:"inputText"`
}

type titanEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (e *TitanEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(titanEmbedRequest{InputText: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal titan request: %w", err)
	}

	output, err := e.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &e.modelID,
		Body:        body,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke embeddings model: %w", err)
	}

	var response titanEmbedResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal titan response: %w", err)
	}

	return e.fitDimension(response.Embedding), nil
}

func (e *TitanEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for i, text := range texts {
		vector, err := e.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed text %d: %w", i, err)
		}
		vectors = append(vectors, vector)
	}
	return vectors, nil
}

// fitDimension truncates or zero-pads so every stored vector has the same
// length regardless of model output size.
func (e *TitanEmbedder) fitDimension(vector []float32) []float32 {
	if len(vector) == e.dimension {
		return vector
	}
	if len(vector) > e.dimension {
		return vector[:e.dimension]
	}

	padded := make([]float32, e.dimension)
	copy(padded, vector)
	return padded
}
