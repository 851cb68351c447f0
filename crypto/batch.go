package crypto

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// NamedInput is one input of a batch. Name identifies it in the result.
type NamedInput struct {
	Name   string
	Reader io.Reader
}

// NamedSignature is the wire-form signature of the input with the same Name.
type NamedSignature struct {
	Name      string
	Signature string
}

// SignAll signs every input with the key at keyID.
//
// Up to the engine's concurrency limit run at once. Results are in input
// order. The first failure cancels the inputs that have not started and is
// returned with the failing input's name.
func (e *Engine) SignAll(ctx context.Context, keyID string, format SignFormat, inputs []NamedInput) ([]NamedSignature, error) {
	results := make([]NamedSignature, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sig, err := e.Sign(gctx, keyID, in.Reader, format)
			if err != nil {
				return fmt.Errorf("%s: %w", in.Name, err)
			}
			results[i] = NamedSignature{Name: in.Name, Signature: sig}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BytesInput wraps an in-memory message as a NamedInput.
func BytesInput(name string, data []byte) NamedInput {
	return NamedInput{Name: name, Reader: bytes.NewReader(data)}
}
