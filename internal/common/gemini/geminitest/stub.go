// internal/common/gemini/geminitest/stub.go

// Package geminitest provides a canned gemini.Model for tests.
package geminitest

import (
	"context"
	"sync"

	"cloud-api-console/internal/common/gemini"
)

// Stub returns a fixed response or error and records every request it sees.
type Stub struct {
	Text      string
	Citations []gemini.Citation
	Err       error
	// Respond, when set, overrides Text, Citations and Err.
	Respond func(ctx context.Context, req *gemini.Request) (*gemini.Response, error)

	mu       sync.Mutex
	requests []*gemini.Request
}

// NewText returns a stub answering with text.
func NewText(text string, citations ...gemini.Citation) *Stub {
	return &Stub{Text: text, Citations: citations}
}

// NewError returns a stub failing with err.
func NewError(err error) *Stub {
	return &Stub{Err: err}
}

func (s *Stub) Generate(ctx context.Context, req *gemini.Request) (*gemini.Response, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.Respond != nil {
		return s.Respond(ctx, req)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return &gemini.Response{Text: s.Text, Citations: s.Citations}, nil
}

// Requests returns the recorded requests in call order.
func (s *Stub) Requests() []*gemini.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*gemini.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, or nil.
func (s *Stub) LastRequest() *gemini.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

// Calls returns the number of Generate calls.
func (s *Stub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}
