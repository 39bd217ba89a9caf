package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tmc/langchaingo/textsplitter"

	"github.com/langdocs/assistant/models"
	"github.com/langdocs/assistant/store"
)

// docPage is one documentation page to fetch and index.
type docPage struct {
	URL   string
	Title string
}

// Per-service page catalogs. These are the key pages of each documentation set.
var docCatalog = map[string][]docPage{
	models.ServiceLangChain: {
		{"https://python.langchain.com/docs/get_started/introduction", "LangChain Introduction"},
		{"https://python.langchain.com/docs/get_started/quickstart", "LangChain Quickstart"},
		{"https://python.langchain.com/docs/modules/model_io/", "Model I/O"},
		{"https://python.langchain.com/docs/modules/chains/", "Chains"},
		{"https://python.langchain.com/docs/modules/agents/", "Agents"},
		{"https://python.langchain.com/docs/modules/memory/", "Memory"},
		{"https://python.langchain.com/docs/expression_language/", "LCEL"},
		{"https://python.langchain.com/docs/expression_language/get_started", "LCEL Quickstart"},
		{"https://python.langchain.com/docs/modules/data_connection/", "Data Connection"},
		{"https://python.langchain.com/docs/integrations/llms/openai", "OpenAI Integration"},
		{"https://python.langchain.com/docs/integrations/chat/openai", "OpenAI Chat"},
		{"https://python.langchain.com/docs/integrations/vectorstores/chroma", "Chroma Integration"},
	},
	models.ServiceLangGraph: {
		{"https://langchain-ai.github.io/langgraph/", "LangGraph Introduction"},
		{"https://langchain-ai.github.io/langgraph/tutorials/introduction/", "LangGraph Tutorial"},
		{"https://langchain-ai.github.io/langgraph/concepts/", "LangGraph Concepts"},
		{"https://langchain-ai.github.io/langgraph/how-tos/", "LangGraph How-To Guides"},
		{"https://langchain-ai.github.io/langgraph/concepts/low_level/", "Low Level Concepts"},
		{"https://langchain-ai.github.io/langgraph/concepts/agentic_concepts/", "Agentic Concepts"},
	},
	models.ServiceLangSmith: {
		{"https://docs.smith.langchain.com/", "LangSmith Introduction"},
		{"https://docs.smith.langchain.com/tracing", "LangSmith Tracing"},
		{"https://docs.smith.langchain.com/evaluation", "LangSmith Evaluation"},
		{"https://docs.smith.langchain.com/prompts", "LangSmith Prompts"},
		{"https://docs.smith.langchain.com/observability", "LangSmith Observability"},
	},
}

// ServiceCatalog describes the documentation services the API knows about.
func ServiceCatalog() []models.ServiceInfo {
	return []models.ServiceInfo{
		{
			Name:        "LangChain",
			ID:          models.ServiceLangChain,
			Description: "Core LangChain framework for building LLM applications",
			DocsURL:     "https://python.langchain.com/docs",
		},
		{
			Name:        "LangGraph",
			ID:          models.ServiceLangGraph,
			Description: "Library for building stateful, multi-actor LLM applications",
			DocsURL:     "https://langchain-ai.github.io/langgraph",
		},
		{
			Name:        "LangSmith",
			ID:          models.ServiceLangSmith,
			Description: "Platform for debugging, testing, and monitoring LLM applications",
			DocsURL:     "https://docs.smith.langchain.com",
		},
	}
}

// DocumentLoader fetches documentation pages and splits them into chunks.
type DocumentLoader struct {
	httpClient *http.Client
	splitter   textsplitter.RecursiveCharacter
}

// NewDocumentLoader creates a loader using the given HTTP client and chunking
// parameters.
func NewDocumentLoader(httpClient *http.Client, chunkSize, chunkOverlap int) *DocumentLoader {
	return &DocumentLoader{
		httpClient: httpClient,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
			textsplitter.WithSeparators([]string{"\n\n", "\n", ". ", " ", ""}),
		),
	}
}

// LoadDocuments fetches the catalog pages for the given services. Pages that
// fail to fetch or yield no content are logged and skipped.
func (l *DocumentLoader) LoadDocuments(ctx context.Context, services []string) []store.Document {
	if len(services) == 0 {
		services = models.AllServices()
	}

	var docs []store.Document
	for _, service := range services {
		for _, page := range docCatalog[service] {
			log.Printf("LOADER: Loading %s (%s)", page.Title, page.URL)
			content, err := l.fetchPage(ctx, page.URL)
			if err != nil {
				log.Printf("LOADER WARN: Failed to fetch %s: %v", page.URL, err)
				continue
			}
			if content == "" {
				continue
			}
			docs = append(docs, store.Document{
				Content:   content,
				Title:     page.Title,
				SourceURL: page.URL,
				Service:   service,
			})
			log.Printf("LOADER: Loaded %d characters", len(content))
		}
	}

	log.Printf("LOADER: Loaded %d documents total", len(docs))
	return docs
}

// Split breaks full documents into overlapping chunks, carrying the source
// metadata onto every chunk.
func (l *DocumentLoader) Split(docs []store.Document) ([]store.Document, error) {
	var chunks []store.Document
	for _, doc := range docs {
		parts, err := l.splitter.SplitText(doc.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to split document %q: %w", doc.Title, err)
		}
		for i, part := range parts {
			chunk := doc
			chunk.Content = part
			chunk.Chunk = i
			chunks = append(chunks, chunk)
		}
	}
	log.Printf("LOADER: Split %d documents into %d chunks", len(docs), len(chunks))
	return chunks, nil
}

// LoadAndSplit fetches and chunks documentation in one step.
func (l *DocumentLoader) LoadAndSplit(ctx context.Context, services []string) ([]store.Document, error) {
	return l.Split(l.LoadDocuments(ctx, services))
}

func (l *DocumentLoader) fetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; LangDocsRAGBot/1.0)")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return extractContent(resp.Body)
}

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// extractContent pulls the readable text out of a documentation page,
// dropping navigation chrome and preferring the main content area.
func extractContent(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	doc.Find("script, style, nav, footer, header, aside").Remove()

	sel := doc.Find("main")
	if sel.Length() == 0 {
		sel = doc.Find("article")
	}
	if sel.Length() == 0 {
		sel = doc.Find("body")
	}

	text := strings.TrimSpace(sel.Text())
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return text, nil
}
