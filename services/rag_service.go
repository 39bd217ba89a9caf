package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"google.golang.org/genai"

	"github.com/langdocs/assistant/models"
	"github.com/langdocs/assistant/store"
)

// retrievalK is how many chunks are pulled from the vector store per question.
const retrievalK = 5

// maxSources caps the citations attached to an answer.
const maxSources = 5

// previewLength bounds the content preview on each citation.
const previewLength = 200

const noResultsAnswer = "I couldn't find relevant information in the documentation. " +
	"Please try rephrasing your question or check the official documentation directly."

// RAGService answers documentation questions with retrieval-augmented
// generation.
type RAGService interface {
	Ask(ctx context.Context, question string, filter models.ServiceFilter) (*models.ChatResponse, error)
	Ready() bool
	MarkReady()
	DocumentCount(ctx context.Context) (int, error)
}

// ragServiceImpl holds the dependencies the pipeline needs.
type ragServiceImpl struct {
	store        store.VectorStore
	embedder     Embedder
	geminiClient *genai.Client
	chatModel    string
	ready        atomic.Bool
}

// NewRAGService creates the RAG pipeline service.
func NewRAGService(st store.VectorStore, embedder Embedder, geminiClient *genai.Client, chatModel string) RAGService {
	return &ragServiceImpl{
		store:        st,
		embedder:     embedder,
		geminiClient: geminiClient,
		chatModel:    chatModel,
	}
}

// Ready reports whether the initial indexing pass has completed.
func (r *ragServiceImpl) Ready() bool {
	return r.ready.Load()
}

// MarkReady records that the vector store holds a usable index.
func (r *ragServiceImpl) MarkReady() {
	r.ready.Store(true)
}

// DocumentCount reports how many chunks are in the vector store.
func (r *ragServiceImpl) DocumentCount(ctx context.Context) (int, error) {
	return r.store.Count(ctx)
}

// Ask runs the full pipeline: embed the question, retrieve the closest
// chunks, prompt the model with them, and assemble the cited answer.
func (r *ragServiceImpl) Ask(ctx context.Context, question string, filter models.ServiceFilter) (*models.ChatResponse, error) {
	start := time.Now()
	log.Printf("SERVICE: Question: %q (filter: %s)", question, filter)

	queryEmbedding, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	service := ""
	if filter != models.FilterAll && filter != "" {
		service = string(filter)
	}

	docs, err := r.store.Query(ctx, queryEmbedding, retrievalK, service)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve documents: %w", err)
	}
	log.Printf("SERVICE: Retrieved %d chunks", len(docs))

	if len(docs) == 0 {
		return &models.ChatResponse{
			Answer:         noResultsAnswer,
			Sources:        []models.Source{},
			ProcessingTime: roundSeconds(time.Since(start)),
		}, nil
	}

	answer, err := r.generateAnswer(ctx, question, docs)
	if err != nil {
		return nil, fmt.Errorf("could not generate answer: %w", err)
	}

	return &models.ChatResponse{
		Answer:         answer,
		Sources:        buildSources(docs),
		ProcessingTime: roundSeconds(time.Since(start)),
	}, nil
}

// generateAnswer prompts Gemini with the retrieved context.
func (r *ragServiceImpl) generateAnswer(ctx context.Context, question string, docs []store.Document) (string, error) {
	prompt := fmt.Sprintf("Context:\n%s\n\nQuestion: %s\n\nAnswer:", formatContext(docs), question)

	result, err := r.geminiClient.Models.GenerateContent(ctx, r.chatModel, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0.1),
		SystemInstruction: GetSystemPrompt(),
	})
	if err != nil {
		return "", fmt.Errorf("gemini api call failed: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "I'm sorry, I couldn't generate a response.", nil
	}

	var responseText strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		if p.Text != "" {
			responseText.WriteString(p.Text)
		}
	}
	if responseText.Len() == 0 {
		return "I'm sorry, I couldn't generate a response.", nil
	}
	return responseText.String(), nil
}

// formatContext joins the retrieved chunks into the prompt context block.
func formatContext(docs []store.Document) string {
	blocks := make([]string, 0, len(docs))
	for _, doc := range docs {
		title := doc.Title
		if title == "" {
			title = "Unknown"
		}
		blocks = append(blocks, fmt.Sprintf("Source: %s\n%s", title, doc.Content))
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

// buildSources turns retrieved chunks into citations, deduplicated by URL and
// capped at maxSources.
func buildSources(docs []store.Document) []models.Source {
	sources := make([]models.Source, 0, maxSources)
	seen := make(map[string]bool)

	for _, doc := range docs {
		if seen[doc.SourceURL] {
			continue
		}
		seen[doc.SourceURL] = true

		title := doc.Title
		if title == "" {
			title = "Documentation"
		}
		service := doc.Service
		if service == "" {
			service = models.ServiceLangChain
		}

		sources = append(sources, models.Source{
			Title:          title,
			URL:            doc.SourceURL,
			ContentPreview: preview(doc.Content),
			Service:        service,
		})
		if len(sources) == maxSources {
			break
		}
	}
	return sources
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) > previewLength {
		return string(runes[:previewLength]) + "..."
	}
	return content
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
