package llm

type CompletionRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

type CompletionResponse struct {
	Content    string
	StopReason string
}

// StreamFunc receives text increments as the model emits them. Returning an
// error aborts the stream.
type StreamFunc func(chunk string) error
