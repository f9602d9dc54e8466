package ai

import "context"

// Client interprets a rendered analysis report and returns a JSON string.
type Client interface {
	Interpret(ctx context.Context, report string) (string, error)
}
