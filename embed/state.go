package embed

import (
	"context"
	"sync"
)

// State is the embed data as seen by a rendering layer. Data is nil until
// the fetch started by Watch resolves; callers render a loading state until
// then and can wait on Done.
type State struct {
	mu     sync.RWMutex
	data   *EmbedResponse
	err    error
	closed bool

	cancel context.CancelFunc
	done   chan struct{}
}

// Watch issues one GetEmbed in the background and returns immediately.
// Close tears the state down; a response arriving after Close is dropped.
func Watch(ctx context.Context, c *Client) *State {
	ctx, cancel := context.WithCancel(ctx)
	s := &State{cancel: cancel, done: make(chan struct{})}
	go s.run(ctx, c)
	return s
}

func (s *State) run(ctx context.Context, c *Client) {
	defer close(s.done)
	resp, err := c.GetEmbed(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if err != nil {
		s.err = err
		return
	}
	s.data = &resp
}

// Data returns the resolved embed data, or nil while loading, after a
// failure, or once Close has been called.
func (s *State) Data() *EmbedResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Err returns the fetch error, if any. Nothing is retried.
func (s *State) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Done is closed once the fetch has finished, successfully or not.
func (s *State) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the fetch finishes or ctx ends.
func (s *State) Wait(ctx context.Context) (*EmbedResponse, error) {
	select {
	case <-s.done:
		return s.Data(), s.Err()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close tears the state down: the data is cleared and a response that
// arrives later is dropped.
func (s *State) Close() {
	s.mu.Lock()
	s.closed = true
	s.data = nil
	s.mu.Unlock()
	s.cancel()
}
