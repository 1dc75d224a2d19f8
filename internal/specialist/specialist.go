package specialist

import "context"

// Specialist is one query-type-specific answering strategy. The set of
// implementations is closed and selected by the deterministic classifier.
type Specialist interface {
	Answer(ctx context.Context, query string) (string, error)
}

// Streamer is implemented by specialists that can produce their answer as
// increments. The returned string is the full concatenated answer.
type Streamer interface {
	AnswerStream(ctx context.Context, query string, emit func(chunk string) error) (string, error)
}
