package types

import "context"

// Executor is the contract between the cache and the real search engine.
// It is invoked on a cache miss to produce the result that will be cached.
// The cache treats it as a black box: it only measures how long the call
// took and stores whatever it returns.
type Executor interface {
	Execute(ctx context.Context, query string) (any, error)
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(ctx context.Context, query string) (any, error)

func (f ExecutorFunc) Execute(ctx context.Context, query string) (any, error) {
	return f(ctx, query)
}
