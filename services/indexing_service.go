package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/langdocs/assistant/models"
	"github.com/langdocs/assistant/store"
)

// embedBatchSize bounds how many chunks go into one embedding request.
const embedBatchSize = 16

// IndexingService loads, chunks, embeds, and stores documentation.
type IndexingService struct {
	store    store.VectorStore
	embedder Embedder
	loader   *DocumentLoader
	localDir string
}

// NewIndexingService creates an indexing service. localDir may be empty, in
// which case no local files are indexed.
func NewIndexingService(st store.VectorStore, embedder Embedder, loader *DocumentLoader, localDir string) *IndexingService {
	return &IndexingService{
		store:    st,
		embedder: embedder,
		loader:   loader,
		localDir: localDir,
	}
}

// IndexServices re-indexes the online documentation for the named services.
// An empty list means all of them. Existing chunks for each service are
// replaced. Returns the number of chunks indexed and the services covered.
func (s *IndexingService) IndexServices(ctx context.Context, services []string) (int, []string, error) {
	if len(services) == 0 {
		services = models.AllServices()
	}
	for _, service := range services {
		if !models.KnownService(service) {
			return 0, nil, fmt.Errorf("unknown service %q", service)
		}
	}

	chunks, err := s.loader.LoadAndSplit(ctx, services)
	if err != nil {
		return 0, nil, err
	}
	if len(chunks) == 0 {
		log.Println("INDEXER: Web loading yielded nothing, falling back to the sample corpus.")
		chunks, err = s.loader.Split(SampleDocuments(services))
		if err != nil {
			return 0, nil, err
		}
	}

	for _, service := range services {
		if err := s.store.DeleteService(ctx, service); err != nil {
			log.Printf("INDEXER WARN: Could not clear service %q: %v", service, err)
		}
	}

	if err := s.embedAndStore(ctx, chunks); err != nil {
		return 0, nil, err
	}

	log.Printf("INDEXER: Indexed %d chunks for services %v", len(chunks), services)
	return len(chunks), services, nil
}

// IndexLocalDocs scans the local docs directory and indexes every supported
// file under the "local" service tag.
func (s *IndexingService) IndexLocalDocs(ctx context.Context) (int, error) {
	if s.localDir == "" {
		return 0, nil
	}

	if err := s.store.DeleteService(ctx, models.ServiceLocal); err != nil {
		log.Printf("INDEXER WARN: Could not clear local docs: %v", err)
	}

	total := 0
	err := filepath.Walk(s.localDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !IsSupportedFile(path) {
			return nil
		}
		n, err := s.indexFile(ctx, path)
		if err != nil {
			log.Printf("INDEXER ERROR: Failed to index %s: %v", path, err)
			return nil
		}
		total += n
		return nil
	})
	if err != nil {
		return total, fmt.Errorf("error walking %s: %w", s.localDir, err)
	}

	log.Printf("INDEXER: Indexed %d chunks from local docs in %s", total, s.localDir)
	return total, nil
}

// WatchLocalDocs watches the local docs directory and keeps the index in sync
// with file changes. Blocks until ctx is cancelled.
func (s *IndexingService) WatchLocalDocs(ctx context.Context) {
	if s.localDir == "" {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("WATCHER ERROR: Failed to create file watcher: %v", err)
		return
	}
	defer watcher.Close()

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !IsSupportedFile(event.Name) {
					continue
				}

				// Editors often write via a temp file and rename, so Create
				// and Write are handled the same way.
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					log.Printf("WATCHER: File modified/created: %s. Re-indexing...", event.Name)
					if err := s.store.DeleteSource(ctx, event.Name); err != nil {
						log.Printf("WATCHER WARN: Could not clear old chunks for %s: %v", event.Name, err)
					}
					if _, err := s.indexFile(ctx, event.Name); err != nil {
						log.Printf("WATCHER ERROR: Failed to index %s: %v", event.Name, err)
					}
				} else if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					log.Printf("WATCHER: File removed/renamed: %s. Removing from index...", event.Name)
					if err := s.store.DeleteSource(ctx, event.Name); err != nil {
						log.Printf("WATCHER ERROR: Failed to delete chunks for %s: %v", event.Name, err)
					}
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("WATCHER ERROR: %v", err)
			case <-ctx.Done():
				log.Println("WATCHER: Context cancelled, shutting down watcher.")
				return
			}
		}
	}()

	log.Printf("WATCHER: Watching directory: %s", s.localDir)
	if err := watcher.Add(s.localDir); err != nil {
		log.Printf("WATCHER ERROR: Failed to add path to watcher: %v", err)
	}

	<-ctx.Done()
}

// indexFile extracts, chunks, embeds, and stores a single local file.
func (s *IndexingService) indexFile(ctx context.Context, path string) (int, error) {
	content, err := ExtractTextFromFile(path)
	if err != nil {
		return 0, err
	}

	chunks, err := s.loader.Split([]store.Document{{
		Content:   content,
		Title:     filepath.Base(path),
		SourceURL: path,
		Service:   models.ServiceLocal,
	}})
	if err != nil {
		return 0, err
	}

	if err := s.embedAndStore(ctx, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// embedAndStore assigns IDs, computes embeddings in batches, and writes the
// chunks to the vector store.
func (s *IndexingService) embedAndStore(ctx context.Context, chunks []store.Document) error {
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("could not embed chunks %d-%d: %w", start, end, err)
		}

		for i := range batch {
			batch[i].ID = fmt.Sprintf("%s-chunk%d", uuid.New().String(), batch[i].Chunk)
			batch[i].Embedding = vectors[i]
		}

		if err := s.store.Add(ctx, batch); err != nil {
			return fmt.Errorf("failed to store chunks %d-%d: %w", start, end, err)
		}
	}
	return nil
}
