package service

import "context"

// ChatMessage is one message in a model conversation.
type ChatMessage struct {
	Role    string // "system", "user" or "assistant".
	Content string
}

// ChatModel is the contract for the external language model. The core treats
// it purely as a producer of an incremental text stream: onDelta is invoked
// for each chunk in order, and StreamCompletion returns once the stream ends.
// An error from onDelta aborts the stream and is returned as-is, so callers
// can cancel from inside the callback.
type ChatModel interface {
	StreamCompletion(ctx context.Context, messages []ChatMessage, onDelta func(delta string) error) error
}
