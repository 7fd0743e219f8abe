// Package batch processes many feature documents concurrently with
// deterministic output ordering. One unit of work per document is tagged
// with its input position and results are gathered back into that order;
// a failing document is captured as a per-item error and never aborts its
// siblings.
package batch

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Item is one unit of work with its outcome.
type Item[T any, R any] struct {
	Input  T
	Result R
	Err    error
}

// ProcessFunc processes a single input.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool is a bounded worker pool.
type Pool[T any, R any] struct {
	workers int
	process ProcessFunc[T, R]
}

// NewPool creates a pool with the given concurrency, minimum one worker.
func NewPool[T any, R any](workers int, fn ProcessFunc[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{workers: workers, process: fn}
}

// Execute runs all inputs through the pool. The returned slice has one
// entry per input, in input order, regardless of completion order. Inputs
// the workers never reached before cancellation carry the context error.
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) []Item[T, R] {
	results := make([]Item[T, R], len(inputs))
	processed := make([]bool, len(inputs))
	indexCh := make(chan int, len(inputs))

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-indexCh:
					if !ok {
						return
					}
					result, err := p.process(ctx, inputs[idx])
					results[idx] = Item[T, R]{Input: inputs[idx], Result: result, Err: err}
					processed[idx] = true
					if err != nil {
						log.Warn().Err(err).Int("index", idx).Msg("batch item failed")
					}
				}
			}
		}()
	}

	for i := range inputs {
		indexCh <- i
	}
	close(indexCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		for i := range results {
			if !processed[i] {
				results[i] = Item[T, R]{Input: inputs[i], Err: err}
			}
		}
	}
	return results
}
