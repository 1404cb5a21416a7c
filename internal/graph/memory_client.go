package graph

import (
	"context"
	"maps"
	"sync"
)

// Responder computes the result of a query executed against a MemoryClient.
type Responder func(cypher string, params map[string]any) (Result, error)

// MemoryClient is an in-memory implementation of the Client interface used for
// unit testing code that talks to the graph without a running database. Each
// executed query is recorded; results come from the configured responder.
type MemoryClient struct {
	mu           sync.Mutex
	calls        []ExecutedQuery
	respond      Responder
	err          error
	connectivity error
	closed       bool
}

// ExecutedQuery captures a cypher statement and parameters executed against the graph.
type ExecutedQuery struct {
	Write  bool
	Query  string
	Params map[string]any
}

// NewMemoryClient instantiates the in-memory client. Without a responder every
// query returns an empty result.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{}
}

// WithResponder installs fn to answer subsequent queries.
func (m *MemoryClient) WithResponder(fn Responder) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.respond = fn
	return m
}

// WithError configures the client to return the provided error for subsequent calls.
func (m *MemoryClient) WithError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return the supplied error.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

func (m *MemoryClient) ExecuteWrite(_ context.Context, cypher string, params map[string]any) (Result, error) {
	return m.execute(true, cypher, params)
}

func (m *MemoryClient) ExecuteRead(_ context.Context, cypher string, params map[string]any) (Result, error) {
	return m.execute(false, cypher, params)
}

func (m *MemoryClient) execute(write bool, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return Result{}, m.err
	}

	m.calls = append(m.calls, ExecutedQuery{
		Write:  write,
		Query:  cypher,
		Params: maps.Clone(params),
	})

	if m.respond == nil {
		return Result{}, nil
	}
	return m.respond(cypher, params)
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MemoryClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// WriteCalls returns a snapshot of executed write queries.
func (m *MemoryClient) WriteCalls() []ExecutedQuery {
	return m.filter(true)
}

// ReadCalls returns a snapshot of executed read queries.
func (m *MemoryClient) ReadCalls() []ExecutedQuery {
	return m.filter(false)
}

func (m *MemoryClient) filter(write bool) []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ExecutedQuery
	for _, call := range m.calls {
		if call.Write == write {
			out = append(out, call)
		}
	}
	return out
}
