package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/philippgille/chromem-go"
)

// ChromemStore keeps the vectors in-process with chromem-go, persisted under a
// local directory. It is the default when no Chroma server is configured.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewChromemStore opens (or creates) a persistent embedded store at path.
// The embedding function is only used if a document arrives without a
// precomputed embedding.
func NewChromemStore(path, collectionName string, embed chromem.EmbeddingFunc) (*ChromemStore, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded vector store at %s: %w", path, err)
	}
	collection, err := db.GetOrCreateCollection(collectionName, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection %q: %w", collectionName, err)
	}
	return &ChromemStore{db: db, collection: collection}, nil
}

func (s *ChromemStore) Add(ctx context.Context, docs []Document) error {
	for _, doc := range docs {
		err := s.collection.AddDocument(ctx, chromem.Document{
			ID:        doc.ID,
			Content:   doc.Content,
			Embedding: doc.Embedding,
			Metadata: map[string]string{
				"title":   doc.Title,
				"source":  doc.SourceURL,
				"service": doc.Service,
				"chunk":   strconv.Itoa(doc.Chunk),
			},
		})
		if err != nil {
			return fmt.Errorf("failed to add chunk %s: %w", doc.ID, err)
		}
	}
	return nil
}

func (s *ChromemStore) Query(ctx context.Context, embedding []float32, k int, service string) ([]Document, error) {
	// chromem rejects result counts above the collection size.
	if count := s.collection.Count(); count < k {
		k = count
	}
	if k == 0 {
		return nil, nil
	}

	var where map[string]string
	if service != "" {
		where = map[string]string{"service": service}
	}

	// A where filter can shrink the candidate set below k, which chromem
	// rejects. Step k down until the query goes through.
	var results []chromem.Result
	var err error
	for attemptK := k; attemptK > 0; attemptK-- {
		results, err = s.collection.QueryEmbedding(ctx, embedding, attemptK, where, nil)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query embedded store: %w", err)
	}

	docs := make([]Document, 0, len(results))
	for _, res := range results {
		chunk, _ := strconv.Atoi(res.Metadata["chunk"])
		docs = append(docs, Document{
			ID:        res.ID,
			Content:   res.Content,
			Title:     res.Metadata["title"],
			SourceURL: res.Metadata["source"],
			Service:   res.Metadata["service"],
			Chunk:     chunk,
		})
	}
	return docs, nil
}

func (s *ChromemStore) Count(ctx context.Context) (int, error) {
	return s.collection.Count(), nil
}

func (s *ChromemStore) DeleteService(ctx context.Context, service string) error {
	err := s.collection.Delete(ctx, map[string]string{"service": service}, nil)
	if err != nil {
		return fmt.Errorf("failed to delete chunks for service %q: %w", service, err)
	}
	return nil
}

func (s *ChromemStore) DeleteSource(ctx context.Context, source string) error {
	err := s.collection.Delete(ctx, map[string]string{"source": source}, nil)
	if err != nil {
		return fmt.Errorf("failed to delete chunks for source %q: %w", source, err)
	}
	return nil
}

func (s *ChromemStore) Close() error {
	return nil
}
