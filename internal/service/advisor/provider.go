package advisor

import "context"

// Provider is a chat-completion backend. Implementations take a system and a
// user prompt and return the raw completion text. Ping is a cheap liveness
// check used for status reporting only.
type Provider interface {
	Name() string
	Chat(ctx context.Context, system, user string) (string, error)
	Ping(ctx context.Context) error
}
