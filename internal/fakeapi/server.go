package fakeapi

import (
	"net/http/httptest"
	"testing"
)

// NewTestServer starts a fake partner API for the duration of the test.
func NewTestServer(tb testing.TB, apiKey, partnerID string, opts ...Option) (*httptest.Server, *InMemoryStore) {
	tb.Helper()
	store := NewInMemoryStore()
	srv := httptest.NewServer(New(store, apiKey, partnerID, opts...).Router())
	tb.Cleanup(srv.Close)
	return srv, store
}
