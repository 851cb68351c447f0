package crypto

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// defaultRand is the random source used when no other is configured.
var defaultRand io.Reader = rand.Reader

// Engine dispatches text operations to the scheme selected by a format tag.
//
// An Engine holds configuration only. Keys are loaded from the KeySource on
// every call and wiped afterwards, so an Engine is safe for concurrent use.
type Engine struct {
	keys        KeySource
	rand        io.Reader
	concurrency int
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source for nonces and key generation.
func WithRand(r io.Reader) Option {
	return func(e *Engine) {
		e.rand = r
	}
}

// WithConcurrency sets the number of inputs SignAll processes at once.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.concurrency = n
		}
	}
}

// NewEngine creates an Engine that reads key material from keys.
func NewEngine(keys KeySource, opts ...Option) (*Engine, error) {
	if keys == nil {
		return nil, errors.New("key source cannot be nil")
	}
	e := &Engine{
		keys:        keys,
		rand:        defaultRand,
		concurrency: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// operationLogger returns the context logger tagged with a fresh op id.
func operationLogger(ctx context.Context, op string, format fmt.Stringer) zerolog.Logger {
	return zerolog.Ctx(ctx).With().
		Str("op", op).
		Str("op_id", uuid.NewString()).
		Str("format", format.String()).
		Logger()
}

// readInput reads all of r. The engine never sees partial input.
func readInput(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, errors.New("input reader cannot be nil")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}
