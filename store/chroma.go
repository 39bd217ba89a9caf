package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"
)

// ChromaStore talks to a running Chroma server over HTTP using the v2 API.
type ChromaStore struct {
	client     chromago.Client
	collection chromago.Collection
}

// NewChromaStore connects to the Chroma server at baseURL and gets or creates
// the named collection.
func NewChromaStore(ctx context.Context, baseURL, collectionName string) (*ChromaStore, error) {
	client, err := chromago.NewHTTPClient(chromago.WithBaseURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create chroma client: %w", err)
	}

	collection, err := client.GetOrCreateCollection(
		ctx,
		collectionName,
		chromago.WithCollectionMetadataCreate(
			chromago.NewMetadata(
				chromago.NewStringAttribute("description", "LangChain documentation chunks"),
				chromago.NewStringAttribute("created_by", "rag_service"),
			),
		),
	)
	if err != nil {
		closeErr := client.Close()
		if closeErr != nil {
			log.Printf("Warning: failed to close chroma client: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to get or create collection %q: %w", collectionName, err)
	}

	return &ChromaStore{client: client, collection: collection}, nil
}

func (s *ChromaStore) Add(ctx context.Context, docs []Document) error {
	for _, doc := range docs {
		metadata := chromago.NewDocumentMetadata(
			chromago.NewStringAttribute("title", doc.Title),
			chromago.NewStringAttribute("source", doc.SourceURL),
			chromago.NewStringAttribute("service", doc.Service),
			chromago.NewIntAttribute("chunk", int64(doc.Chunk)),
		)
		err := s.collection.Add(ctx,
			chromago.WithIDs(chromago.DocumentID(doc.ID)),
			chromago.WithTexts(doc.Content),
			chromago.WithEmbeddings(embeddings.NewEmbeddingFromFloat32(doc.Embedding)),
			chromago.WithMetadatas(metadata),
		)
		if err != nil {
			return fmt.Errorf("failed to add chunk %s to chromadb: %w", doc.ID, err)
		}
	}
	return nil
}

func (s *ChromaStore) Query(ctx context.Context, embedding []float32, k int, service string) ([]Document, error) {
	opts := []chromago.CollectionQueryOption{
		chromago.WithQueryEmbeddings(embeddings.NewEmbeddingFromFloat32(embedding)),
		chromago.WithNResults(k),
	}
	if service != "" {
		opts = append(opts, chromago.WithWhereQuery(chromago.EqString("service", service)))
	}

	results, err := s.collection.Query(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chromadb: %w", err)
	}

	var docs []Document
	documentGroups := results.GetDocumentsGroups()
	metadataGroups := results.GetMetadatasGroups()
	if len(documentGroups) == 0 {
		return docs, nil
	}

	for i, doc := range documentGroups[0] {
		if doc.ContentString() == "" {
			continue
		}
		out := Document{Content: doc.ContentString()}
		if len(metadataGroups) > 0 && i < len(metadataGroups[0]) {
			applyMetadata(&out, metadataGroups[0][i])
		}
		docs = append(docs, out)
	}
	return docs, nil
}

func (s *ChromaStore) Count(ctx context.Context) (int, error) {
	count, err := s.collection.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count items in collection: %w", err)
	}
	return int(count), nil
}

func (s *ChromaStore) DeleteService(ctx context.Context, service string) error {
	where := chromago.EqString("service", service)
	if err := s.collection.Delete(ctx, chromago.WithWhereDelete(where)); err != nil {
		return fmt.Errorf("failed to delete chunks for service %q: %w", service, err)
	}
	return nil
}

func (s *ChromaStore) DeleteSource(ctx context.Context, source string) error {
	where := chromago.EqString("source", source)
	if err := s.collection.Delete(ctx, chromago.WithWhereDelete(where)); err != nil {
		return fmt.Errorf("failed to delete chunks for source %q: %w", source, err)
	}
	return nil
}

func (s *ChromaStore) Close() error {
	return s.client.Close()
}

// applyMetadata copies the fields we store out of a chroma DocumentMetadata.
// The DocumentMetadata struct has no public accessor for the full value set,
// so it goes through a JSON round-trip.
func applyMetadata(doc *Document, metadata chromago.DocumentMetadata) {
	if metadata == nil {
		return
	}
	jsonBytes, err := json.Marshal(metadata)
	if err != nil {
		log.Printf("WARN: could not marshal metadata for document: %v", err)
		return
	}
	var metaMap map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &metaMap); err != nil {
		log.Printf("WARN: could not unmarshal metadata for document: %v", err)
		return
	}
	if v, ok := metaMap["title"].(string); ok {
		doc.Title = v
	}
	if v, ok := metaMap["source"].(string); ok {
		doc.SourceURL = v
	}
	if v, ok := metaMap["service"].(string); ok {
		doc.Service = v
	}
	if v, ok := metaMap["chunk"].(float64); ok {
		doc.Chunk = int(v)
	}
}
