package services

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langdocs/assistant/models"
	"github.com/langdocs/assistant/store"
)

// memStore is an in-memory VectorStore for exercising the indexing flow.
type memStore struct {
	docs            map[string]store.Document
	deletedServices []string
	lastQueryK      int
	lastService     string
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string]store.Document)}
}

func (m *memStore) Add(ctx context.Context, docs []store.Document) error {
	for _, doc := range docs {
		m.docs[doc.ID] = doc
	}
	return nil
}

func (m *memStore) Query(ctx context.Context, embedding []float32, k int, service string) ([]store.Document, error) {
	m.lastQueryK = k
	m.lastService = service
	var out []store.Document
	for _, doc := range m.docs {
		if service != "" && doc.Service != service {
			continue
		}
		if len(out) == k {
			break
		}
		out = append(out, doc)
	}
	return out, nil
}

func (m *memStore) Count(ctx context.Context) (int, error) {
	return len(m.docs), nil
}

func (m *memStore) DeleteService(ctx context.Context, service string) error {
	m.deletedServices = append(m.deletedServices, service)
	for id, doc := range m.docs {
		if doc.Service == service {
			delete(m.docs, id)
		}
	}
	return nil
}

func (m *memStore) DeleteSource(ctx context.Context, sourceURL string) error {
	for id, doc := range m.docs {
		if doc.SourceURL == sourceURL {
			delete(m.docs, id)
		}
	}
	return nil
}

func (m *memStore) Close() error { return nil }

// stubEmbedder returns a constant vector for every input.
type stubEmbedder struct {
	calls int
	fail  bool
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.fail {
		return nil, errors.New("embedding backend down")
	}
	s.calls++
	return []float32{1, 0, 0}, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if s.fail {
		return nil, errors.New("embedding backend down")
	}
	s.calls++
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

// failingTransport keeps the loader off the network entirely.
type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("no network in tests")
}

func offlineLoader() *DocumentLoader {
	return NewDocumentLoader(&http.Client{Transport: failingTransport{}}, 1000, 200)
}

func TestIndexServicesFallsBackToSamples(t *testing.T) {
	st := newMemStore()
	indexer := NewIndexingService(st, &stubEmbedder{}, offlineLoader(), "")

	count, services, err := indexer.IndexServices(context.Background(), []string{models.ServiceLangChain})
	require.NoError(t, err)
	assert.Equal(t, []string{models.ServiceLangChain}, services)
	assert.Greater(t, count, 0)
	assert.Len(t, st.docs, count)
	assert.Contains(t, st.deletedServices, models.ServiceLangChain)

	for _, doc := range st.docs {
		assert.Equal(t, models.ServiceLangChain, doc.Service)
		assert.NotEmpty(t, doc.ID)
		assert.Equal(t, []float32{1, 0, 0}, doc.Embedding)
	}
}

func TestIndexServicesDefaultsToAll(t *testing.T) {
	st := newMemStore()
	indexer := NewIndexingService(st, &stubEmbedder{}, offlineLoader(), "")

	_, services, err := indexer.IndexServices(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, models.AllServices(), services)

	seen := make(map[string]bool)
	for _, doc := range st.docs {
		seen[doc.Service] = true
	}
	for _, service := range models.AllServices() {
		assert.True(t, seen[service], "expected chunks for %s", service)
	}
}

func TestIndexServicesRejectsUnknownService(t *testing.T) {
	indexer := NewIndexingService(newMemStore(), &stubEmbedder{}, offlineLoader(), "")

	_, _, err := indexer.IndexServices(context.Background(), []string{"pinecone"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pinecone")
}

func TestIndexServicesPropagatesEmbeddingFailure(t *testing.T) {
	indexer := NewIndexingService(newMemStore(), &stubEmbedder{fail: true}, offlineLoader(), "")

	_, _, err := indexer.IndexServices(context.Background(), []string{models.ServiceLangGraph})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding backend down")
}

func TestIndexLocalDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# Notes\n\nLangGraph checkpoints persist state between runs."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("Plain text about retrievers."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.json"), []byte(`{"skip": true}`), 0o644))

	st := newMemStore()
	indexer := NewIndexingService(st, &stubEmbedder{}, offlineLoader(), dir)

	count, err := indexer.IndexLocalDocs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	sources := make(map[string]bool)
	for _, doc := range st.docs {
		assert.Equal(t, models.ServiceLocal, doc.Service)
		sources[filepath.Base(doc.SourceURL)] = true
	}
	assert.True(t, sources["notes.md"])
	assert.True(t, sources["readme.txt"])
	assert.False(t, sources["ignored.json"])
}

func TestIndexLocalDocsNoDirConfigured(t *testing.T) {
	indexer := NewIndexingService(newMemStore(), &stubEmbedder{}, offlineLoader(), "")

	count, err := indexer.IndexLocalDocs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAskReturnsFallbackWhenStoreEmpty(t *testing.T) {
	st := newMemStore()
	rag := NewRAGService(st, &stubEmbedder{}, nil, "gemini-2.5-flash")

	resp, err := rag.Ask(context.Background(), "What is a retriever?", models.FilterAll)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Answer, "I couldn't find relevant information"))
	assert.Empty(t, resp.Sources)
	assert.GreaterOrEqual(t, resp.ProcessingTime, 0.0)
}

func TestAskMapsFilterToServiceQuery(t *testing.T) {
	st := newMemStore()
	rag := NewRAGService(st, &stubEmbedder{}, nil, "gemini-2.5-flash")

	_, err := rag.Ask(context.Background(), "anything", models.FilterLangSmith)
	require.NoError(t, err)
	assert.Equal(t, string(models.FilterLangSmith), st.lastService)
	assert.Equal(t, retrievalK, st.lastQueryK)

	_, err = rag.Ask(context.Background(), "anything", models.FilterAll)
	require.NoError(t, err)
	assert.Equal(t, "", st.lastService)
}

func TestAskPropagatesEmbeddingError(t *testing.T) {
	rag := NewRAGService(newMemStore(), &stubEmbedder{fail: true}, nil, "gemini-2.5-flash")

	_, err := rag.Ask(context.Background(), "anything", models.FilterAll)
	require.Error(t, err)
}

func TestReadyFlag(t *testing.T) {
	rag := NewRAGService(newMemStore(), &stubEmbedder{}, nil, "gemini-2.5-flash")
	assert.False(t, rag.Ready())
	rag.MarkReady()
	assert.True(t, rag.Ready())
}
