package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langdocs/assistant/store"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Chains | LangChain</title><style>body { color: red; }</style></head>
<body>
<nav><a href="/">Home</a><a href="/docs">Docs</a></nav>
<header>LangChain Docs</header>
<main>
<h1>Chains</h1>
<p>Chains are sequences of calls to an LLM or a tool.</p>
<script>trackPageView();</script>
</main>
<footer>Copyright</footer>
</body>
</html>`

func TestExtractContentPrefersMain(t *testing.T) {
	content, err := extractContent(strings.NewReader(samplePage))
	require.NoError(t, err)

	assert.Contains(t, content, "Chains")
	assert.Contains(t, content, "sequences of calls")
	assert.NotContains(t, content, "trackPageView")
	assert.NotContains(t, content, "color: red")
	assert.NotContains(t, content, "Copyright")
	assert.NotContains(t, content, "Home")
}

func TestExtractContentFallsBackToBody(t *testing.T) {
	page := `<html><body><p>plain page without main or article</p></body></html>`
	content, err := extractContent(strings.NewReader(page))
	require.NoError(t, err)

	assert.Contains(t, content, "plain page without main or article")
}

func TestExtractContentCollapsesBlankLines(t *testing.T) {
	page := "<html><body><main>first\n\n\n\n\nsecond</main></body></html>"
	content, err := extractContent(strings.NewReader(page))
	require.NoError(t, err)

	assert.NotContains(t, content, "\n\n\n")
}

func TestSplitCarriesMetadataOntoChunks(t *testing.T) {
	loader := NewDocumentLoader(nil, 50, 10)

	chunks, err := loader.Split([]store.Document{{
		Content:   strings.Repeat("All work and no play makes a dull assistant. ", 10),
		Title:     "Proverbs",
		SourceURL: "https://example.com/proverbs",
		Service:   "langchain",
	}})
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		assert.Equal(t, "Proverbs", chunk.Title)
		assert.Equal(t, "https://example.com/proverbs", chunk.SourceURL)
		assert.Equal(t, "langchain", chunk.Service)
		assert.Equal(t, i, chunk.Chunk)
	}
}

func TestSplitShortDocumentStaysWhole(t *testing.T) {
	loader := NewDocumentLoader(nil, 1000, 200)

	chunks, err := loader.Split([]store.Document{{
		Content: "A single short document.",
		Title:   "Short",
	}})
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Equal(t, "A single short document.", chunks[0].Content)
	assert.Equal(t, 0, chunks[0].Chunk)
}

func TestDocCatalogCoversAllServices(t *testing.T) {
	for _, service := range []string{"langchain", "langgraph", "langsmith"} {
		pages := docCatalog[service]
		require.NotEmpty(t, pages, service)
		for _, page := range pages {
			assert.True(t, strings.HasPrefix(page.URL, "https://"), page.URL)
			assert.NotEmpty(t, page.Title)
		}
	}
}
