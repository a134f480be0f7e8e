// Package testutil holds helpers shared by package tests.
package testutil

import (
	"sync"

	"golang.org/x/sync/errgroup"

	dErrors "prover/pkg/domain-errors"
)

// ConcurrentResult collects the outcomes of RunConcurrent.
type ConcurrentResult struct {
	Successes int
	Failures  []error
}

// WithCode counts failures carrying any of the given domain codes.
func (r *ConcurrentResult) WithCode(codes ...dErrors.Code) int {
	n := 0
	for _, err := range r.Failures {
		for _, code := range codes {
			if dErrors.HasCode(err, code) {
				n++
				break
			}
		}
	}
	return n
}

// Total returns the number of calls made.
func (r *ConcurrentResult) Total() int {
	return r.Successes + len(r.Failures)
}

// RunConcurrent calls fn from n goroutines released together and waits for all of them.
func RunConcurrent(n int, fn func(idx int) error) *ConcurrentResult {
	var (
		mu     sync.Mutex
		result ConcurrentResult
		g      errgroup.Group
	)
	start := make(chan struct{})
	for i := range n {
		g.Go(func() error {
			<-start
			err := fn(i)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures = append(result.Failures, err)
			} else {
				result.Successes++
			}
			return nil
		})
	}
	close(start)
	_ = g.Wait()
	return &result
}
