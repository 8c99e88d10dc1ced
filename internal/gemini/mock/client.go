// Package mock provides a gemini.Client test double.
package mock

import (
	"context"

	"github.com/bhumilabs/bhumi/internal/gemini"
)

// MockClient satisfies gemini.Client for testing. It records the last request
// so tests can assert on prompt composition.
type MockClient struct {
	ConfiguredVal bool
	GenerateFunc  func(ctx context.Context, req gemini.GenerateRequest) (*gemini.GenerateResult, error)

	Requests []gemini.GenerateRequest
}

func (m *MockClient) Configured() bool { return m.ConfiguredVal }

func (m *MockClient) Generate(ctx context.Context, req gemini.GenerateRequest) (*gemini.GenerateResult, error) {
	m.Requests = append(m.Requests, req)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return &gemini.GenerateResult{Text: "{}"}, nil
}

// LastRequest returns the most recent request, or nil if none were made.
func (m *MockClient) LastRequest() *gemini.GenerateRequest {
	if len(m.Requests) == 0 {
		return nil
	}
	return &m.Requests[len(m.Requests)-1]
}

// NewMockClient returns a configured client that replies with the given text.
func NewMockClient(text string) *MockClient {
	return &MockClient{
		ConfiguredVal: true,
		GenerateFunc: func(_ context.Context, _ gemini.GenerateRequest) (*gemini.GenerateResult, error) {
			return &gemini.GenerateResult{Text: text}, nil
		},
	}
}

// NewFailingClient returns a configured client that always returns the given error.
func NewFailingClient(err error) *MockClient {
	return &MockClient{
		ConfiguredVal: true,
		GenerateFunc: func(_ context.Context, _ gemini.GenerateRequest) (*gemini.GenerateResult, error) {
			return nil, err
		},
	}
}

// NewUnconfiguredClient returns a client with no API key: every call fails
// with gemini.ErrMissingAPIKey before any work happens.
func NewUnconfiguredClient() *MockClient {
	return &MockClient{
		ConfiguredVal: false,
		GenerateFunc: func(_ context.Context, _ gemini.GenerateRequest) (*gemini.GenerateResult, error) {
			return nil, gemini.ErrMissingAPIKey
		},
	}
}

// Compile-time check that MockClient implements Client.
var _ gemini.Client = (*MockClient)(nil)
